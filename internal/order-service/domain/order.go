package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          string
	TotalAmount decimal.Decimal
	TotalItems  int
	Status      OrderStatus
	Paid        bool
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderItem struct {
	ID        string
	ProductID string
	// Name is filled at read time from the product catalog and never stored.
	Name     string
	Quantity int
	// Price is the unit price captured when the order was created.
	Price decimal.Decimal
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Product is a catalog entry as returned by the product service.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// ProductLookup is the catalog answer to a validation request.
type ProductLookup struct {
	Products []Product
	// Missing lists requested ids the catalog does not know.
	Missing []string
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusCancelled OrderStatus = "CANCELLED"
	StatusDelivered OrderStatus = "DELIVERED"
)

// Statuses lists every valid status in declaration order.
var Statuses = []OrderStatus{StatusPending, StatusCancelled, StatusDelivered}

func (s OrderStatus) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// NewOrder is the store input for a freshly priced order.
type NewOrder struct {
	TotalAmount decimal.Decimal
	TotalItems  int
	Items       []NewOrderItem
}

type NewOrderItem struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// MoneyScale is the number of decimal places prices and totals are stored
// with.
const MoneyScale = 2

// PriceItems snapshots catalog prices, rounded to MoneyScale, onto the
// requested items and derives the order totals. It fails with a
// MissingProductsError naming every product id absent from products.
func PriceItems(items []NewOrderItem, products []Product) (NewOrder, error) {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	order := NewOrder{TotalAmount: decimal.Zero, Items: make([]NewOrderItem, 0, len(items))}
	var missing []string
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			missing = append(missing, it.ProductID)
			continue
		}
		it.Price = p.Price.Round(MoneyScale)
		order.TotalAmount = order.TotalAmount.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		order.TotalItems += it.Quantity
		order.Items = append(order.Items, it)
	}
	if len(missing) > 0 {
		return NewOrder{}, &MissingProductsError{IDs: DistinctProductIDs(missing)}
	}
	return order, nil
}

// DistinctProductIDs returns ids without duplicates, keeping first-seen order.
func DistinctProductIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// AttachNames copies product names onto the order items. Items whose product
// is unknown keep an empty name; their product ids are returned.
func (o *Order) AttachNames(products []Product) []string {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	var unknown []string
	for i := range o.Items {
		name, ok := names[o.Items[i].ProductID]
		if !ok {
			unknown = append(unknown, o.Items[i].ProductID)
			continue
		}
		o.Items[i].Name = name
	}
	return unknown
}

// ProductIDs returns the distinct product ids referenced by the order items.
func (o *Order) ProductIDs() []string {
	ids := make([]string, len(o.Items))
	for i, it := range o.Items {
		ids[i] = it.ProductID
	}
	return DistinctProductIDs(ids)
}
