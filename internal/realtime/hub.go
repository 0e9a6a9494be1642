// Package realtime fans snapshot messages out to connected admin dashboards.
package realtime

import (
	"errors"
	"sync"

	"tableside/internal/common/logger"
	"tableside/internal/domain"
)

var errSlowSubscriber = errors.New("subscriber buffer full")

// subscriberBuffer bounds per-connection backlog. A subscriber that cannot
// keep up loses deliveries instead of blocking the broadcast; the next
// snapshot it does receive carries full state.
const subscriberBuffer = 8

type Subscriber struct {
	RestaurantID string
	ch           chan domain.SnapshotMessage
}

// C yields snapshots for this subscriber. Closed on Unsubscribe.
func (s *Subscriber) C() <-chan domain.SnapshotMessage { return s.ch }

// Hub maps restaurant ids to their live subscribers. Broadcast delivers only
// to the matching restaurant's set: a connection for restaurant A never sees
// restaurant B's publishes.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscriber]struct{}
	lg   *logger.Logger
}

func NewHub(lg *logger.Logger) *Hub {
	return &Hub{subs: make(map[string]map[*Subscriber]struct{}), lg: lg}
}

func (h *Hub) Subscribe(restaurantID string) *Subscriber {
	sub := &Subscriber{
		RestaurantID: restaurantID,
		ch:           make(chan domain.SnapshotMessage, subscriberBuffer),
	}
	h.mu.Lock()
	set, ok := h.subs[restaurantID]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.subs[restaurantID] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()

	h.lg.Debug("subscriber_registered", "restaurant_id", restaurantID)
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[sub.RestaurantID]
	if !ok {
		return
	}
	if _, member := set[sub]; !member {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.RestaurantID)
	}
	close(sub.ch)
}

// Broadcast hands msg to every subscriber of its restaurant. Non-blocking:
// a full subscriber channel drops this delivery for that subscriber only.
func (h *Hub) Broadcast(msg domain.SnapshotMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[msg.RestaurantID] {
		select {
		case sub.ch <- msg:
		default:
			h.lg.Error("delivery_dropped",
				&domain.ChannelDeliveryError{RestaurantID: msg.RestaurantID, Err: errSlowSubscriber},
				"restaurant_id", msg.RestaurantID)
		}
	}
}

// Subscribers reports the current subscriber count for one restaurant.
func (h *Hub) Subscribers(restaurantID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[restaurantID])
}
