package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"tableside/internal/cache"
	"tableside/internal/common/logger"
	"tableside/internal/domain"
)

// cacheTTL bounds dashboard staleness. Writes never invalidate the cache;
// the window math re-runs at most once per TTL per restaurant.
const cacheTTL = 30 * time.Second

// OrderLister is the read-side slice of the order service the dashboard
// consumes.
type OrderLister interface {
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Order, error)
}

type ServiceInterface interface {
	Earnings(ctx context.Context, restaurantID string) (Earnings, error)
}

type Service struct {
	orders OrderLister
	cache  cache.Cache
	lg     *logger.Logger
	now    func() time.Time
}

func NewService(orders OrderLister, c cache.Cache, lg *logger.Logger) *Service {
	return &Service{orders: orders, cache: c, lg: lg, now: time.Now}
}

func (s *Service) Earnings(ctx context.Context, restaurantID string) (Earnings, error) {
	if restaurantID == "" {
		return Earnings{}, domain.Invalid("restaurant_id", "required")
	}

	key := s.cache.GenerateKey("dashboard", restaurantID)
	if cached, err := s.cache.Get(ctx, key); err != nil {
		s.lg.Error("dashboard_cache_read_failed", err, "restaurant_id", restaurantID)
	} else if cached != "" {
		var e Earnings
		if err := json.Unmarshal([]byte(cached), &e); err == nil {
			return e, nil
		}
	}

	orders, err := s.orders.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return Earnings{}, err
	}
	e := Aggregate(orders, s.now())

	if body, err := json.Marshal(e); err == nil {
		if err := s.cache.Set(ctx, key, body, cacheTTL); err != nil {
			s.lg.Error("dashboard_cache_write_failed", err, "restaurant_id", restaurantID)
		}
	}
	return e, nil
}
