// Package reconcile implements the dashboard-side contract for turning
// consecutive snapshots into "new activity" signals (audible alerts).
package reconcile

import (
	"sync"

	"tableside/internal/domain"
)

// Tracker keeps the previous snapshot per restaurant. The reference is
// replaced wholesale and unconditionally on every Apply, so the next
// comparison is always against the most recent prior state. Its lifetime is
// tied to the dashboard connection: Reset on unmount or disconnect.
type Tracker struct {
	mu   sync.Mutex
	prev map[string]map[string]map[string]int // restaurant -> order id -> item name -> quantity
}

func NewTracker() *Tracker {
	return &Tracker{prev: make(map[string]map[string]map[string]int)}
}

// Apply compares orders against the previous snapshot for restaurantID and
// returns the ids with new activity: orders absent from the previous
// snapshot, and orders where any line item's quantity strictly increased.
// Quantities never decrease through this channel, but order identity may
// appear at any time, so both checks run independently.
func (t *Tracker) Apply(restaurantID string, orders []domain.Order) []string {
	next := index(orders)

	t.mu.Lock()
	prev := t.prev[restaurantID]
	t.prev[restaurantID] = next
	t.mu.Unlock()

	var flagged []string
	for _, o := range orders {
		before, seen := prev[o.ID]
		if !seen {
			flagged = append(flagged, o.ID)
			continue
		}
		for name, qty := range next[o.ID] {
			if qty > before[name] {
				flagged = append(flagged, o.ID)
				break
			}
		}
	}
	return flagged
}

// Reset drops the cached snapshot for one restaurant.
func (t *Tracker) Reset(restaurantID string) {
	t.mu.Lock()
	delete(t.prev, restaurantID)
	t.mu.Unlock()
}

// index maps order id to per-item-name quantity, summing duplicate names.
func index(orders []domain.Order) map[string]map[string]int {
	out := make(map[string]map[string]int, len(orders))
	for _, o := range orders {
		items := make(map[string]int, len(o.Items))
		for _, it := range o.Items {
			items[it.Name] += it.Quantity
		}
		out[o.ID] = items
	}
	return out
}
