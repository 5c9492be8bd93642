package entity

type CreateOrderItem struct {
	ProductID string
	Quantity  int
}

type OrderItem struct {
	ProductID string
	Name      string
	Quantity  int
	Price     float64
}

type Order struct {
	ID          string
	Status      string
	TotalAmount float64
	TotalItems  int
	Paid        bool
	Items       []OrderItem
	CreatedAt   string
	UpdatedAt   string
}

// ListQuery filters a page of orders. Zero page and limit use the service
// defaults; an empty status lists every order.
type ListQuery struct {
	Page   int
	Limit  int
	Status string
}

type PageMeta struct {
	Page       int
	Limit      int
	TotalPages int
	TotalItems int
}

type OrderPage struct {
	Data []Order
	Meta PageMeta
}
