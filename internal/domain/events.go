package domain

import "time"

// SnapshotMessage is the wire format published after every committed order
// write. It always carries the restaurant's complete order list: a subscriber
// that misses intermediate publishes converges on the next one it receives.
type SnapshotMessage struct {
	RestaurantID string    `json:"restaurant_id"`
	Orders       []Order   `json:"orders"`
	PublishedAt  time.Time `json:"published_at"`
}
