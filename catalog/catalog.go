// Package catalog supplies the product records consumed read-only by the
// storefront handlers and by cart line construction.
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/proteuswear/storefront-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Catalog holds the product list. It starts from the seed collection and
// can be refreshed from Mongo when a catalog database is configured.
type Catalog struct {
	mu       sync.RWMutex
	products []models.Product
}

func New(products []models.Product) *Catalog {
	return &Catalog{products: products}
}

// NewSeeded builds a catalog from the built-in collection.
func NewSeeded() *Catalog {
	return New(seedProducts())
}

// All returns a copy of every product.
func (c *Catalog) All() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks a product up by id.
func (c *Catalog) Get(id int) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// ByCategory returns the products in the given category.
func (c *Catalog) ByCategory(category string) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// LoadFromMongo replaces the product list with the contents of the given
// collection. An empty collection leaves the current list in place so a
// fresh database does not wipe the seed catalog.
func (c *Catalog) LoadFromMongo(ctx context.Context, collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := collection.Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to query products: %w", err)
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return fmt.Errorf("failed to decode products: %w", err)
	}
	if len(products) == 0 {
		return nil
	}

	c.mu.Lock()
	c.products = products
	c.mu.Unlock()
	return nil
}
