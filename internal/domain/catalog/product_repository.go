package catalog

import "context"

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindAll returns every well-formed product in the collection
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID finds a product by its id
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindByCode finds a product by code, compared case-insensitively
	FindByCode(ctx context.Context, code string) (*Product, error)

	// Insert appends a new product and persists the collection
	Insert(ctx context.Context, product *Product) error

	// Update replaces the stored product with the same id
	Update(ctx context.Context, product *Product) error

	// Delete removes a product and returns the removed record
	Delete(ctx context.Context, id int64) (*Product, error)
}
