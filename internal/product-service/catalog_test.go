package productservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	productv1 "github.com/jcmexdev/orders-microservice/internal/rpc/product/v1"
)

func TestCatalog_ValidateProducts(t *testing.T) {
	c := NewCatalog(SeedProducts...)

	resp, err := c.ValidateProducts(context.Background(), &productv1.ValidateProductsRequest{
		Ids: []string{"prod_2", "nope", "prod_1", "prod_2"},
	})
	require.NoError(t, err)

	require.Len(t, resp.GetProducts(), 2)
	assert.Equal(t, "prod_2", resp.Products[0].Id)
	assert.Equal(t, "Wireless mouse", resp.Products[0].Name)
	assert.Equal(t, 25.50, resp.Products[0].Price)
	assert.Equal(t, "prod_1", resp.Products[1].Id)
	assert.Equal(t, []string{"nope"}, resp.GetMissingIds())
}

func TestCatalog_PutRemove(t *testing.T) {
	c := NewCatalog()
	c.Put(Product{ID: "P1", Name: "Pen", Price: 1.5})

	resp, err := c.ValidateProducts(context.Background(), &productv1.ValidateProductsRequest{Ids: []string{"P1"}})
	require.NoError(t, err)
	assert.Len(t, resp.Products, 1)
	assert.Empty(t, resp.MissingIds)

	c.Remove("P1")
	resp, err = c.ValidateProducts(context.Background(), &productv1.ValidateProductsRequest{Ids: []string{"P1"}})
	require.NoError(t, err)
	assert.Empty(t, resp.Products)
	assert.Equal(t, []string{"P1"}, resp.MissingIds)
}

func TestCatalog_RejectsEmptyRequest(t *testing.T) {
	_, err := NewCatalog().ValidateProducts(context.Background(), &productv1.ValidateProductsRequest{})

	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
