package domain

type CreateOrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type CreateOrderRequest struct {
	TableID string            `json:"table_id"`
	Items   []CreateOrderItem `json:"items"`
	// Subtotal overrides the computed sum when present (zero-cost service
	// requests set it to 0 explicitly).
	Subtotal *float64 `json:"subtotal,omitempty"`
}

type CreateOrderResponse struct {
	OrderID  string  `json:"order_id"`
	Status   string  `json:"status"`
	Subtotal float64 `json:"subtotal"`
}

type CallStaffRequest struct {
	TableID string `json:"table_id"`
	Note    string `json:"note,omitempty"`
}

type TransitionRequest struct {
	Status string `json:"status"`
}

type LoginRequest struct {
	RestaurantID string `json:"restaurant_id"`
	Username     string `json:"username"`
	Password     string `json:"password"`
}

type LoginResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

type UpsertMenuItemRequest struct {
	Type  string   `json:"type"`
	Name  string   `json:"item"`
	Price *float64 `json:"price"`
	Pic   *string  `json:"pic,omitempty"`
}

type UpsertDetailRequest struct {
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Description  *string `json:"description,omitempty"`
	Image        *string `json:"image,omitempty"`
	Offer        *string `json:"offer,omitempty"`
	Username     *string `json:"username,omitempty"`
	Password     *string `json:"password,omitempty"`
}
