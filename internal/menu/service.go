package menu

import (
	"context"

	"github.com/google/uuid"

	"tableside/internal/domain"
)

type ServiceInterface interface {
	Add(ctx context.Context, restaurantID string, req domain.UpsertMenuItemRequest) (domain.MenuItem, error)
	Update(ctx context.Context, restaurantID, itemID string, req domain.UpsertMenuItemRequest) (domain.MenuItem, error)
	Delete(ctx context.Context, restaurantID, itemID string) error
	List(ctx context.Context, restaurantID string) ([]domain.MenuItem, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(ctx context.Context, restaurantID string, req domain.UpsertMenuItemRequest) (domain.MenuItem, error) {
	if restaurantID == "" {
		return domain.MenuItem{}, domain.Invalid("restaurant_id", "required")
	}
	if req.Type == "" || req.Name == "" || req.Price == nil {
		return domain.MenuItem{}, domain.Invalid("item", "type, item and price are required")
	}
	if *req.Price < 0 {
		return domain.MenuItem{}, domain.Invalid("price", "must not be negative")
	}

	item := domain.MenuItem{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		Type:         req.Type,
		Name:         req.Name,
		Price:        *req.Price,
	}
	if req.Pic != nil {
		item.Pic = *req.Pic
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return domain.MenuItem{}, err
	}
	return item, nil
}

// Update applies only the fields present in the request.
func (s *Service) Update(ctx context.Context, restaurantID, itemID string, req domain.UpsertMenuItemRequest) (domain.MenuItem, error) {
	item, err := s.repo.Get(ctx, restaurantID, itemID)
	if err != nil {
		return domain.MenuItem{}, err
	}
	if req.Type != "" {
		item.Type = req.Type
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return domain.MenuItem{}, domain.Invalid("price", "must not be negative")
		}
		item.Price = *req.Price
	}
	if req.Pic != nil {
		item.Pic = *req.Pic
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return domain.MenuItem{}, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, restaurantID, itemID string) error {
	return s.repo.Delete(ctx, restaurantID, itemID)
}

func (s *Service) List(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	if restaurantID == "" {
		return nil, domain.Invalid("restaurant_id", "required")
	}
	return s.repo.List(ctx, restaurantID)
}
