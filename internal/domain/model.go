package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// LineItem is immutable once its order is created; quantity or price changes
// require a new order.
type LineItem struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID           string      `json:"id"`
	RestaurantID string      `json:"restaurant_id"`
	TableID      string      `json:"table_id"`
	Items        []LineItem  `json:"items"`
	Subtotal     float64     `json:"subtotal"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// SubtotalOf sums unit price times quantity over items.
func SubtotalOf(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.UnitPrice * float64(it.Quantity)
	}
	return sum
}

type MenuItem struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurant_id"`
	Type         string  `json:"type"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Pic          string  `json:"pic,omitempty"`
}

// RestaurantDetail is the restaurant profile. The password hash never leaves
// the details/auth packages.
type RestaurantDetail struct {
	RestaurantID      string `json:"restaurant_id"`
	Name              string `json:"name"`
	Address           string `json:"address"`
	Description       string `json:"description,omitempty"`
	Image             string `json:"image,omitempty"`
	Offer             string `json:"offer,omitempty"`
	AdminUsername     string `json:"-"`
	AdminPasswordHash string `json:"-"`
}
