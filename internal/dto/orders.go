package dto

// CreateOrderRequest represents the request payload for creating an order.
// Only product and amount are bindable from client input; the owner and
// creation time are set server-side.
type CreateOrderRequest struct {
	Product string `json:"product" validate:"required"`
	Amount  int    `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID           string `json:"id"`
	AuthorID     string `json:"author_id"`
	Product      string `json:"product"`
	Amount       int    `json:"amount"`
	CreationTime string `json:"creation_time"`
}
