package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() []Product {
	return []Product{
		{ID: "P1", Name: "Keyboard", Price: decimal.NewFromInt(10)},
		{ID: "P2", Name: "Mouse", Price: decimal.NewFromInt(5)},
	}
}

func TestPriceItems(t *testing.T) {
	order, err := PriceItems([]NewOrderItem{
		{ProductID: "P1", Quantity: 2},
		{ProductID: "P2", Quantity: 1},
	}, catalog())
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(25)), "total %s", order.TotalAmount)
	assert.Equal(t, 3, order.TotalItems)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].Price.Equal(decimal.NewFromInt(10)))
	assert.True(t, order.Items[1].Price.Equal(decimal.NewFromInt(5)))
}

func TestPriceItems_IgnoresClientPrice(t *testing.T) {
	order, err := PriceItems([]NewOrderItem{
		{ProductID: "P1", Quantity: 1, Price: decimal.NewFromInt(1)},
	}, catalog())
	require.NoError(t, err)

	assert.True(t, order.Items[0].Price.Equal(decimal.NewFromInt(10)))
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(10)))
}

func TestPriceItems_Missing(t *testing.T) {
	_, err := PriceItems([]NewOrderItem{
		{ProductID: "P1", Quantity: 1},
		{ProductID: "P9", Quantity: 1},
		{ProductID: "P9", Quantity: 3},
		{ProductID: "P7", Quantity: 1},
	}, catalog())

	var missing *MissingProductsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"P9", "P7"}, missing.IDs)
	assert.Equal(t, "invalid product ids: P9, P7", err.Error())
}

func TestPriceItems_DecimalPrecision(t *testing.T) {
	order, err := PriceItems([]NewOrderItem{
		{ProductID: "P1", Quantity: 3},
	}, []Product{{ID: "P1", Price: decimal.RequireFromString("0.1")}})
	require.NoError(t, err)

	assert.Equal(t, "0.30", order.TotalAmount.StringFixed(2))
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("0.3")))
}

func TestPriceItems_RoundsToStoredScale(t *testing.T) {
	order, err := PriceItems([]NewOrderItem{
		{ProductID: "P1", Quantity: 3},
	}, []Product{{ID: "P1", Price: decimal.RequireFromString("19.999")}})
	require.NoError(t, err)

	assert.Equal(t, "20", order.Items[0].Price.String())
	assert.Equal(t, "60", order.TotalAmount.String())
}

func TestDistinctProductIDs(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, DistinctProductIDs([]string{"b", "a", "b", "c", "a"}))
	assert.Empty(t, DistinctProductIDs(nil))
}

func TestOrder_AttachNames(t *testing.T) {
	o := &Order{Items: []OrderItem{
		{ProductID: "P1", Quantity: 2},
		{ProductID: "GONE", Quantity: 1},
		{ProductID: "P2", Quantity: 1},
	}}

	unknown := o.AttachNames(catalog())

	assert.Equal(t, []string{"GONE"}, unknown)
	assert.Equal(t, "Keyboard", o.Items[0].Name)
	assert.Empty(t, o.Items[1].Name)
	assert.Equal(t, "Mouse", o.Items[2].Name)
}

func TestOrder_ProductIDs(t *testing.T) {
	o := &Order{Items: []OrderItem{{ProductID: "P2"}, {ProductID: "P1"}, {ProductID: "P2"}}}

	assert.Equal(t, []string{"P2", "P1"}, o.ProductIDs())
}

func TestOrderItem_Subtotal(t *testing.T) {
	it := OrderItem{Quantity: 4, Price: decimal.RequireFromString("2.25")}

	assert.True(t, it.Subtotal().Equal(decimal.NewFromInt(9)))
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("pending").Valid())
	assert.False(t, OrderStatus("SHIPPED").Valid())
}
