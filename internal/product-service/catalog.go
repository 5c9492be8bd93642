// Package productservice is an in-memory product catalog that serves
// product.v1.Product for local runs and tests.
package productservice

import (
	"context"
	"log/slog"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	productv1 "github.com/jcmexdev/orders-microservice/internal/rpc/product/v1"
)

// MaxIDsPerRequest bounds a single validation request.
const MaxIDsPerRequest = 1000

type Product struct {
	ID    string
	Name  string
	Price float64
}

// SeedProducts is the catalog the dev server starts with.
var SeedProducts = []Product{
	{ID: "prod_1", Name: "Mechanical keyboard", Price: 89.90},
	{ID: "prod_2", Name: "Wireless mouse", Price: 25.50},
	{ID: "prod_3", Name: "USB-C hub", Price: 42.00},
	{ID: "prod_4", Name: "27in monitor", Price: 279.99},
	{ID: "prod_5", Name: "Laptop stand", Price: 31.25},
}

var _ productv1.ProductServer = (*Catalog)(nil)

type Catalog struct {
	productv1.UnimplementedProductServer

	mu       sync.RWMutex
	products map[string]Product
}

func NewCatalog(products ...Product) *Catalog {
	c := &Catalog{products: make(map[string]Product, len(products))}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

// Put adds or replaces a product.
func (c *Catalog) Put(p Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
}

// Remove deletes a product. Orders that reference it keep working.
func (c *Catalog) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.products, id)
}

// ValidateProducts returns the known products in request order and the ids
// it does not know. Duplicate ids are answered once.
func (c *Catalog) ValidateProducts(ctx context.Context, req *productv1.ValidateProductsRequest) (*productv1.ValidateProductsResponse, error) {
	ids := req.GetIds()
	if len(ids) == 0 {
		return nil, status.Error(codes.InvalidArgument, "ids must not be empty")
	}
	if len(ids) > MaxIDsPerRequest {
		return nil, status.Errorf(codes.InvalidArgument, "at most %d ids per request", MaxIDsPerRequest)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	resp := &productv1.ValidateProductsResponse{Products: make([]*productv1.ProductInfo, 0, len(ids))}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		p, ok := c.products[id]
		if !ok {
			resp.MissingIds = append(resp.MissingIds, id)
			continue
		}
		resp.Products = append(resp.Products, &productv1.ProductInfo{Id: p.ID, Name: p.Name, Price: p.Price})
	}

	if len(resp.MissingIds) > 0 {
		slog.WarnContext(ctx, "unknown products requested", "product_ids", resp.MissingIds)
	}
	return resp, nil
}
