package details

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"tableside/internal/domain"
)

// New restaurants start with a default admin credential the owner is
// expected to change on first login.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "password"
)

type ServiceInterface interface {
	Create(ctx context.Context, req domain.UpsertDetailRequest) (domain.RestaurantDetail, error)
	Update(ctx context.Context, restaurantID string, req domain.UpsertDetailRequest) (domain.RestaurantDetail, error)
	Get(ctx context.Context, restaurantID string) (domain.RestaurantDetail, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req domain.UpsertDetailRequest) (domain.RestaurantDetail, error) {
	if req.RestaurantID == "" {
		return domain.RestaurantDetail{}, domain.Invalid("restaurant_id", "required")
	}
	if req.Name == "" || req.Address == "" {
		return domain.RestaurantDetail{}, domain.Invalid("detail", "name and address are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.RestaurantDetail{}, err
	}
	d := domain.RestaurantDetail{
		RestaurantID:      req.RestaurantID,
		Name:              req.Name,
		Address:           req.Address,
		AdminUsername:     defaultAdminUsername,
		AdminPasswordHash: string(hash),
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.Image != nil {
		d.Image = *req.Image
	}
	if req.Offer != nil {
		d.Offer = *req.Offer
	}

	if err := s.repo.Insert(ctx, d); err != nil {
		return domain.RestaurantDetail{}, err
	}
	return d, nil
}

// Update applies only the fields present in the request; a supplied password
// is re-hashed before it is stored.
func (s *Service) Update(ctx context.Context, restaurantID string, req domain.UpsertDetailRequest) (domain.RestaurantDetail, error) {
	d, err := s.repo.Get(ctx, restaurantID)
	if err != nil {
		return domain.RestaurantDetail{}, err
	}
	if req.Name != "" {
		d.Name = req.Name
	}
	if req.Address != "" {
		d.Address = req.Address
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.Image != nil {
		d.Image = *req.Image
	}
	if req.Offer != nil {
		d.Offer = *req.Offer
	}
	if req.Username != nil && *req.Username != "" {
		d.AdminUsername = *req.Username
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.RestaurantDetail{}, err
		}
		d.AdminPasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return domain.RestaurantDetail{}, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, restaurantID string) (domain.RestaurantDetail, error) {
	if restaurantID == "" {
		return domain.RestaurantDetail{}, domain.Invalid("restaurant_id", "required")
	}
	return s.repo.Get(ctx, restaurantID)
}
