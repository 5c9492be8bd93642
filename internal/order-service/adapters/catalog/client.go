// Package catalog adapts the product.v1.Product gRPC client to
// ports.ProductValidator.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/orders-microservice/internal/order-service/domain"
	"github.com/jcmexdev/orders-microservice/internal/order-service/ports"
	productv1 "github.com/jcmexdev/orders-microservice/internal/rpc/product/v1"
)

var _ ports.ProductValidator = (*Client)(nil)

type Client struct {
	rpc     productv1.ProductClient
	timeout time.Duration
}

// NewClient wraps rpc; every call is bounded by timeout.
func NewClient(rpc productv1.ProductClient, timeout time.Duration) *Client {
	return &Client{rpc: rpc, timeout: timeout}
}

func (c *Client) ValidateProducts(ctx context.Context, ids []string) (*domain.ProductLookup, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.rpc.ValidateProducts(ctx, &productv1.ValidateProductsRequest{Ids: ids})
	if err != nil {
		return nil, fmt.Errorf("catalog: validate products: %w", err)
	}

	lookup := &domain.ProductLookup{
		Products: make([]domain.Product, 0, len(resp.GetProducts())),
		Missing:  resp.GetMissingIds(),
	}
	for _, p := range resp.GetProducts() {
		lookup.Products = append(lookup.Products, domain.Product{
			ID:    p.Id,
			Name:  p.Name,
			Price: decimal.NewFromFloat(p.Price),
		})
	}
	return lookup, nil
}
