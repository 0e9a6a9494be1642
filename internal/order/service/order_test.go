package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"tableside/internal/common/logger"
	"tableside/internal/domain"
)

type memRepo struct {
	mu     sync.Mutex
	orders []domain.Order

	failInsert bool
}

func (m *memRepo) Insert(_ context.Context, o domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failInsert {
		return &domain.PersistenceError{Op: "insert order", Err: errors.New("store down")}
	}
	m.orders = append(m.orders, o)
	return nil
}

func (m *memRepo) UpdateStatus(_ context.Context, orderID string, status domain.OrderStatus) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == orderID {
			m.orders[i].Status = status
			return m.orders[i].RestaurantID, nil
		}
	}
	return "", domain.NotFound("order", orderID)
}

func (m *memRepo) ListByRestaurant(_ context.Context, restaurantID string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Order
	for _, o := range m.orders {
		if o.RestaurantID == restaurantID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type publishCall struct {
	restaurantID string
	orders       []domain.Order
}

type memNotifier struct {
	mu    sync.Mutex
	calls []publishCall
}

func (n *memNotifier) PublishSnapshot(_ context.Context, restaurantID string, orders []domain.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, publishCall{restaurantID: restaurantID, orders: orders})
	return nil
}

func (n *memNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func (n *memNotifier) last() publishCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[len(n.calls)-1]
}

func newTestService(repo *memRepo, pub *memNotifier) *Service {
	return New(repo, pub, logger.New("test"))
}

func TestCreateComputesSubtotal(t *testing.T) {
	repo := &memRepo{}
	pub := &memNotifier{}
	svc := newTestService(repo, pub)

	o, err := svc.Create(context.Background(), "r1", domain.CreateOrderRequest{
		TableID: "5",
		Items: []domain.CreateOrderItem{
			{Name: "Tea", Price: 50, Quantity: 2},
			{Name: "Coffee", Price: 75, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if o.Subtotal != 175 {
		t.Errorf("subtotal = %v, want 175", o.Subtotal)
	}
	if o.Status != domain.StatusPending {
		t.Errorf("status = %q, want pending", o.Status)
	}
	if o.ID == "" {
		t.Error("order id not assigned")
	}
	if o.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestCreateExplicitSubtotalOverride(t *testing.T) {
	repo := &memRepo{}
	pub := &memNotifier{}
	svc := newTestService(repo, pub)

	zero := 0.0
	o, err := svc.Create(context.Background(), "r1", domain.CreateOrderRequest{
		TableID:  "3",
		Items:    []domain.CreateOrderItem{{Name: "Tea", Price: 50, Quantity: 1}},
		Subtotal: &zero,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if o.Subtotal != 0 {
		t.Errorf("subtotal = %v, want explicit 0", o.Subtotal)
	}
}

func TestCreateValidation(t *testing.T) {
	cases := []struct {
		name string
		rest string
		req  domain.CreateOrderRequest
	}{
		{"empty table", "r1", domain.CreateOrderRequest{TableID: "", Items: []domain.CreateOrderItem{{Name: "Tea", Price: 1, Quantity: 1}}}},
		{"no items", "r1", domain.CreateOrderRequest{TableID: "5"}},
		{"zero quantity", "r1", domain.CreateOrderRequest{TableID: "5", Items: []domain.CreateOrderItem{{Name: "Tea", Price: 1, Quantity: 0}}}},
		{"negative price", "r1", domain.CreateOrderRequest{TableID: "5", Items: []domain.CreateOrderItem{{Name: "Tea", Price: -1, Quantity: 1}}}},
		{"unnamed item", "r1", domain.CreateOrderRequest{TableID: "5", Items: []domain.CreateOrderItem{{Price: 1, Quantity: 1}}}},
		{"empty restaurant", "", domain.CreateOrderRequest{TableID: "5", Items: []domain.CreateOrderItem{{Name: "Tea", Price: 1, Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &memRepo{}
			pub := &memNotifier{}
			svc := newTestService(repo, pub)

			_, err := svc.Create(context.Background(), tc.rest, tc.req)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if len(repo.orders) != 0 {
				t.Error("order was persisted despite validation failure")
			}
			if pub.count() != 0 {
				t.Error("notification fired despite validation failure")
			}
		})
	}
}

func TestCreatePublishesFullSnapshotAfterCommit(t *testing.T) {
	repo := &memRepo{}
	pub := &memNotifier{}
	svc := newTestService(repo, pub)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), "r1", domain.CreateOrderRequest{
			TableID: "1",
			Items:   []domain.CreateOrderItem{{Name: "Tea", Price: 10, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if pub.count() != 3 {
		t.Fatalf("publish count = %d, want 3 (one per committed write)", pub.count())
	}
	last := pub.last()
	if last.restaurantID != "r1" {
		t.Errorf("published restaurant = %q, want r1", last.restaurantID)
	}
	if len(last.orders) != 3 {
		t.Errorf("last snapshot carries %d orders, want full list of 3", len(last.orders))
	}
}

func TestCreatePersistenceFailureDoesNotPublish(t *testing.T) {
	repo := &memRepo{failInsert: true}
	pub := &memNotifier{}
	svc := newTestService(repo, pub)

	_, err := svc.Create(context.Background(), "r1", domain.CreateOrderRequest{
		TableID: "5",
		Items:   []domain.CreateOrderItem{{Name: "Tea", Price: 50, Quantity: 2}},
	})
	var pe *domain.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want PersistenceError", err)
	}
	if pub.count() != 0 {
		t.Error("notification fired despite failed write")
	}
}

func TestConcurrentCreates(t *testing.T) {
	repo := &memRepo{}
	pub := &memNotifier{}
	svc := newTestService(repo, pub)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), "r1", domain.CreateOrderRequest{
				TableID: strconv.Itoa(i),
				Items:   []domain.CreateOrderItem{{Name: "Tea", Price: 10, Quantity: 1}},
			})
			if err != nil {
				t.Errorf("Create: %v", err)
			}
		}(i)
	}
	wg.Wait()

	orders, _ := repo.ListByRestaurant(context.Background(), "r1")
	if len(orders) != n {
		t.Fatalf("persisted %d orders, want %d", len(orders), n)
	}
	seen := make(map[string]bool, n)
	for _, o := range orders {
		if seen[o.ID] {
			t.Fatalf("duplicate order id %s", o.ID)
		}
		seen[o.ID] = true
	}
	if pub.count() != n {
		t.Errorf("publish count = %d, want %d", pub.count(), n)
	}
}

func TestTransition(t *testing.T) {
	repo := &memRepo{}
	pub := &memNotifier{}
	svc := newTestService(repo, pub)

	o, err := svc.Create(context.Background(), "r1", domain.CreateOrderRequest{
		TableID: "5",
		Items:   []domain.CreateOrderItem{{Name: "Tea", Price: 50, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Transition(context.Background(), o.ID, "completed"); err != nil {
		t.Fatalf("Transition: %v", err)
	}

	orders, _ := svc.ListByRestaurant(context.Background(), "r1")
	if len(orders) != 1 {
		t.Fatalf("read-all returned %d orders, want 1", len(orders))
	}
	got := orders[0]
	if got.Status != domain.StatusCompleted {
		t.Errorf("status = %q, want completed", got.Status)
	}
	if got.Subtotal != 100 {
		t.Errorf("subtotal = %v, want unchanged 100", got.Subtotal)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Errorf("line items changed by transition: %+v", got.Items)
	}
	// one publish for the create, one for the transition
	if pub.count() != 2 {
		t.Errorf("publish count = %d, want 2", pub.count())
	}
}

func TestTransitionRejectsInvalidStatus(t *testing.T) {
	repo := &memRepo{}
	pub := &memNotifier{}
	svc := newTestService(repo, pub)

	err := svc.Transition(context.Background(), "whatever", "in-progress")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if pub.count() != 0 {
		t.Error("notification fired for rejected transition")
	}
}

func TestTransitionUnknownOrder(t *testing.T) {
	repo := &memRepo{}
	pub := &memNotifier{}
	svc := newTestService(repo, pub)

	err := svc.Transition(context.Background(), "missing", "completed")
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if pub.count() != 0 {
		t.Error("notification fired for failed transition")
	}
}

func TestConcurrentTransitionsLastWriteWins(t *testing.T) {
	repo := &memRepo{}
	pub := &memNotifier{}
	svc := newTestService(repo, pub)

	o, err := svc.Create(context.Background(), "r1", domain.CreateOrderRequest{
		TableID: "5",
		Items:   []domain.CreateOrderItem{{Name: "Tea", Price: 50, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var wg sync.WaitGroup
	for _, status := range []string{"completed", "cancelled"} {
		wg.Add(1)
		go func(st string) {
			defer wg.Done()
			if err := svc.Transition(context.Background(), o.ID, st); err != nil {
				t.Errorf("Transition(%s): %v", st, err)
			}
		}(status)
	}
	wg.Wait()

	orders, _ := repo.ListByRestaurant(context.Background(), "r1")
	final := orders[0].Status
	if final != domain.StatusCompleted && final != domain.StatusCancelled {
		t.Errorf("final status = %q, want exactly one of the requested values", final)
	}
}

func TestCallStaff(t *testing.T) {
	repo := &memRepo{}
	pub := &memNotifier{}
	svc := newTestService(repo, pub)

	o, err := svc.CallStaff(context.Background(), "r1", domain.CallStaffRequest{TableID: "7", Note: "water"})
	if err != nil {
		t.Fatalf("CallStaff: %v", err)
	}
	if o.Subtotal != 0 {
		t.Errorf("subtotal = %v, want 0", o.Subtotal)
	}
	if len(o.Items) != 1 || o.Items[0].Quantity != 1 || o.Items[0].UnitPrice != 0 {
		t.Errorf("items = %+v, want single zero-priced item", o.Items)
	}
	if o.Status != domain.StatusPending {
		t.Errorf("status = %q, want pending", o.Status)
	}
	if pub.count() != 1 {
		t.Errorf("publish count = %d, want 1", pub.count())
	}
}

func TestCreatedAtOrderingInReadAll(t *testing.T) {
	repo := &memRepo{}
	pub := &memNotifier{}
	svc := newTestService(repo, pub)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	step := 0
	svc.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), "r1", domain.CreateOrderRequest{
			TableID: strconv.Itoa(i),
			Items:   []domain.CreateOrderItem{{Name: "Tea", Price: 10, Quantity: 1}},
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	orders, _ := svc.ListByRestaurant(context.Background(), "r1")
	for i := 1; i < len(orders); i++ {
		if orders[i].CreatedAt.Before(orders[i-1].CreatedAt) {
			t.Fatalf("orders out of creation order at index %d", i)
		}
	}
	if orders[0].TableID != "0" || orders[2].TableID != "2" {
		t.Errorf("unexpected order sequence: %v, %v", orders[0].TableID, orders[2].TableID)
	}
}
