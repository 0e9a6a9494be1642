package reconcile

import (
	"reflect"
	"testing"

	"tableside/internal/domain"
)

func order(id string, items ...domain.LineItem) domain.Order {
	return domain.Order{ID: id, Items: items}
}

func item(name string, qty int) domain.LineItem {
	return domain.LineItem{Name: name, Quantity: qty}
}

func TestFirstSnapshotFlagsEverything(t *testing.T) {
	tr := NewTracker()
	got := tr.Apply("r1", []domain.Order{
		order("1", item("Tea", 1)),
		order("2", item("Coffee", 2)),
	})
	if !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("flagged = %v, want [1 2]", got)
	}
}

func TestNewOrderAndIncreasedQuantityFlagged(t *testing.T) {
	tr := NewTracker()
	tr.Apply("r1", []domain.Order{
		order("1", item("Tea", 1)),
	})
	got := tr.Apply("r1", []domain.Order{
		order("1", item("Tea", 2)),
		order("2", item("Coffee", 1)),
	})
	if !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("flagged = %v, want [1 2]", got)
	}
}

func TestUnchangedAndDecreasedNotFlagged(t *testing.T) {
	tr := NewTracker()
	tr.Apply("r1", []domain.Order{
		order("1", item("Tea", 3)),
		order("2", item("Coffee", 2)),
	})
	got := tr.Apply("r1", []domain.Order{
		order("1", item("Tea", 3)),
		order("2", item("Coffee", 1)),
	})
	if got != nil {
		t.Errorf("flagged = %v, want none", got)
	}
}

func TestPreviousSnapshotReplacedUnconditionally(t *testing.T) {
	tr := NewTracker()
	tr.Apply("r1", []domain.Order{order("1", item("Tea", 1))})

	// No new activity in this snapshot, but it must still become the new
	// baseline.
	if got := tr.Apply("r1", []domain.Order{order("1", item("Tea", 1))}); got != nil {
		t.Fatalf("flagged = %v, want none", got)
	}
	if got := tr.Apply("r1", []domain.Order{order("1", item("Tea", 1))}); got != nil {
		t.Errorf("repeat of identical snapshot flagged %v", got)
	}

	// An increase relative to the latest baseline is detected once.
	if got := tr.Apply("r1", []domain.Order{order("1", item("Tea", 2))}); !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("flagged = %v, want [1]", got)
	}
	if got := tr.Apply("r1", []domain.Order{order("1", item("Tea", 2))}); got != nil {
		t.Errorf("same quantity flagged again: %v", got)
	}
}

func TestNewLineItemNameCountsAsIncrease(t *testing.T) {
	tr := NewTracker()
	tr.Apply("r1", []domain.Order{order("1", item("Tea", 1))})
	got := tr.Apply("r1", []domain.Order{order("1", item("Tea", 1), item("Coffee", 1))})
	if !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("flagged = %v, want [1]", got)
	}
}

func TestDuplicateItemNamesSumQuantities(t *testing.T) {
	tr := NewTracker()
	tr.Apply("r1", []domain.Order{order("1", item("Tea", 1), item("Tea", 1))})
	// 1+1 previously vs 2 now: no change.
	if got := tr.Apply("r1", []domain.Order{order("1", item("Tea", 2))}); got != nil {
		t.Errorf("flagged = %v, want none", got)
	}
}

func TestTrackersAreScopedPerRestaurant(t *testing.T) {
	tr := NewTracker()
	tr.Apply("A", []domain.Order{order("1", item("Tea", 1))})

	// Restaurant B has no baseline, so its first snapshot flags everything
	// even though restaurant A already saw an order with the same id.
	if got := tr.Apply("B", []domain.Order{order("1", item("Tea", 1))}); !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("flagged = %v, want [1]", got)
	}
}

func TestResetDropsBaseline(t *testing.T) {
	tr := NewTracker()
	tr.Apply("r1", []domain.Order{order("1", item("Tea", 1))})
	tr.Reset("r1")

	if got := tr.Apply("r1", []domain.Order{order("1", item("Tea", 1))}); !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("flagged = %v after reset, want [1]", got)
	}
}
