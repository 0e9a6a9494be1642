package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tableside/internal/common/logger"
	"tableside/internal/domain"
	"tableside/internal/notifier"
	"tableside/internal/order/repository"
)

type Interface interface {
	Create(ctx context.Context, restaurantID string, req domain.CreateOrderRequest) (domain.Order, error)
	CallStaff(ctx context.Context, restaurantID string, req domain.CallStaffRequest) (domain.Order, error)
	Transition(ctx context.Context, orderID string, status string) error
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Order, error)
}

// Service is the only writer of order state. Each committed write is
// followed by exactly one snapshot publish; failed writes never publish.
type Service struct {
	repo repository.Orders
	pub  notifier.Notifier
	lg   *logger.Logger

	now   func() time.Time
	newID func() string
}

func New(repo repository.Orders, pub notifier.Notifier, lg *logger.Logger) *Service {
	return &Service{
		repo:  repo,
		pub:   pub,
		lg:    lg,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func (s *Service) Create(ctx context.Context, restaurantID string, req domain.CreateOrderRequest) (domain.Order, error) {
	if restaurantID == "" {
		return domain.Order{}, domain.Invalid("restaurant_id", "required")
	}
	if req.TableID == "" {
		return domain.Order{}, domain.Invalid("table_id", "required")
	}
	if len(req.Items) == 0 {
		return domain.Order{}, domain.Invalid("items", "at least one item is required")
	}

	items := make([]domain.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Name == "" {
			return domain.Order{}, domain.Invalid("items.name", "required")
		}
		if it.Quantity < 1 {
			return domain.Order{}, domain.Invalid("items.quantity", "must be a positive integer")
		}
		if it.Price < 0 {
			return domain.Order{}, domain.Invalid("items.price", "must not be negative")
		}
		items = append(items, domain.LineItem{Name: it.Name, UnitPrice: it.Price, Quantity: it.Quantity})
	}

	subtotal := domain.SubtotalOf(items)
	if req.Subtotal != nil {
		if *req.Subtotal < 0 {
			return domain.Order{}, domain.Invalid("subtotal", "must not be negative")
		}
		subtotal = *req.Subtotal
	}

	o := domain.Order{
		ID:           s.newID(),
		RestaurantID: restaurantID,
		TableID:      req.TableID,
		Items:        items,
		Subtotal:     subtotal,
		Status:       domain.StatusPending,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Insert(ctx, o); err != nil {
		return domain.Order{}, err
	}
	s.lg.Info("order_created",
		"restaurant_id", restaurantID, "order_id", o.ID,
		"table_id", o.TableID, "subtotal", o.Subtotal)

	s.publishSnapshot(ctx, restaurantID)
	return o, nil
}

// CallStaff records a zero-cost, single-line-item order encoding a staff
// request, so it rides the same store and snapshot pipeline as real orders.
func (s *Service) CallStaff(ctx context.Context, restaurantID string, req domain.CallStaffRequest) (domain.Order, error) {
	name := "Call staff"
	if req.Note != "" {
		name = "Call staff: " + req.Note
	}
	zero := 0.0
	return s.Create(ctx, restaurantID, domain.CreateOrderRequest{
		TableID:  req.TableID,
		Items:    []domain.CreateOrderItem{{Name: name, Price: 0, Quantity: 1}},
		Subtotal: &zero,
	})
}

func (s *Service) Transition(ctx context.Context, orderID string, status string) error {
	next := domain.OrderStatus(status)
	if !next.Valid() {
		return domain.Invalid("status", "must be one of pending, completed, cancelled")
	}

	restaurantID, err := s.repo.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return err
	}
	s.lg.Info("order_status_updated",
		"restaurant_id", restaurantID, "order_id", orderID, "status", status)

	s.publishSnapshot(ctx, restaurantID)
	return nil
}

func (s *Service) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	if restaurantID == "" {
		return nil, domain.Invalid("restaurant_id", "required")
	}
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

// publishSnapshot re-reads the restaurant's full order list and hands it to
// the notifier. Runs strictly after the store acknowledged the write.
// Failures here never fail the triggering write.
func (s *Service) publishSnapshot(ctx context.Context, restaurantID string) {
	orders, err := s.repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		s.lg.Error("snapshot_read_failed", err, "restaurant_id", restaurantID)
		return
	}
	if err := s.pub.PublishSnapshot(ctx, restaurantID, orders); err != nil {
		s.lg.Error("snapshot_publish_failed", err, "restaurant_id", restaurantID)
		return
	}
	s.lg.Debug("snapshot_published", "restaurant_id", restaurantID, "orders", len(orders))
}
