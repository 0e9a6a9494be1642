package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tableside/internal/cache"
	"tableside/internal/domain"
)

const sessionTTL = 24 * time.Hour

// ErrInvalidCredentials is deliberately uniform: callers cannot tell an
// unknown restaurant from a wrong username or password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialSource is the slice of the details store auth needs.
type CredentialSource interface {
	Credentials(ctx context.Context, restaurantID string) (username, passwordHash string, err error)
}

type ServiceInterface interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a bearer token to the restaurant it belongs to.
	Authenticate(ctx context.Context, token string) (restaurantID string, err error)
}

type Service struct {
	creds    CredentialSource
	sessions cache.Cache
}

func NewService(creds CredentialSource, sessions cache.Cache) *Service {
	return &Service{creds: creds, sessions: sessions}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	if req.RestaurantID == "" || req.Username == "" || req.Password == "" {
		return domain.LoginResponse{}, domain.Invalid("login", "restaurant_id, username and password are required")
	}

	username, hash, err := s.creds.Credentials(ctx, req.RestaurantID)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return domain.LoginResponse{}, ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}
	if username != req.Username {
		return domain.LoginResponse{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		return domain.LoginResponse{}, ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.sessions.Set(ctx, s.sessionKey(token), req.RestaurantID, sessionTTL); err != nil {
		return domain.LoginResponse{}, err
	}
	return domain.LoginResponse{Username: username, Token: token}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Del(ctx, s.sessionKey(token))
}

func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidCredentials
	}
	restaurantID, err := s.sessions.Get(ctx, s.sessionKey(token))
	if err != nil {
		return "", err
	}
	if restaurantID == "" {
		return "", ErrInvalidCredentials
	}
	return restaurantID, nil
}

func (s *Service) sessionKey(token string) string {
	return s.sessions.GenerateKey("session", token)
}
