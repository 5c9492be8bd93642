package httpx

type CreateOrderRequest struct {
	Items []CreateOrderItemDTO `json:"items"`
}

type CreateOrderItemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	Status      string              `json:"status"`
	TotalAmount float64             `json:"total_amount"`
	TotalItems  int                 `json:"total_items"`
	Paid        bool                `json:"paid"`
	Items       []OrderItemResponse `json:"items,omitempty"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderPageResponse struct {
	Data []OrderResponse `json:"data"`
	Meta PageMetaDTO     `json:"meta"`
}

type PageMetaDTO struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}
