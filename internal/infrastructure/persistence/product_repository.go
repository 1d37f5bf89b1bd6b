package persistence

import (
	"context"
	"time"

	"github.com/mbsolutions/storefront/internal/domain/catalog"
	"github.com/mbsolutions/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// productRecord is the on-disk shape of a product. Required fields are
// pointers so entries written by older revisions of the admin panel can be
// detected and dropped instead of failing the whole collection.
type productRecord struct {
	ID          *int64           `json:"id"`
	Code        string           `json:"code"`
	Name        *string          `json:"name"`
	Category    catalog.Category `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Stock       int              `json:"stock"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   *time.Time       `json:"updatedAt,omitempty"`
}

func (r productRecord) wellFormed() bool {
	return r.ID != nil && r.Name != nil && r.Price != nil
}

func (r productRecord) toProduct() catalog.Product {
	return catalog.Product{
		ID:          *r.ID,
		Code:        r.Code,
		Name:        *r.Name,
		Category:    r.Category,
		Price:       *r.Price,
		Stock:       r.Stock,
		Description: r.Description,
		Image:       r.Image,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toRecord(p catalog.Product) productRecord {
	id, name, price := p.ID, p.Name, p.Price
	return productRecord{
		ID:          &id,
		Code:        p.Code,
		Name:        &name,
		Category:    p.Category,
		Price:       &price,
		Stock:       p.Stock,
		Description: p.Description,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FileProductRepository is a catalog.ProductRepository backed by a single
// JSON array file
type FileProductRepository struct {
	collection *Collection[productRecord]
}

var _ catalog.ProductRepository = (*FileProductRepository)(nil)

// NewFileProductRepository opens the product collection at path
func NewFileProductRepository(path string) (*FileProductRepository, error) {
	collection, err := NewCollection[productRecord](path)
	if err != nil {
		return nil, err
	}
	return &FileProductRepository{collection: collection}, nil
}

// FindAll returns every well-formed product; malformed entries are dropped
// silently rather than erroring the whole listing
func (r *FileProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	records, err := r.collection.Read()
	if err != nil {
		return nil, err
	}
	products := make([]catalog.Product, 0, len(records))
	for _, rec := range records {
		if rec.wellFormed() {
			products = append(products, rec.toProduct())
		}
	}
	return products, nil
}

// FindByID finds a product by id
func (r *FileProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	products, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

// FindByCode finds a product by code, compared case-insensitively
func (r *FileProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	products, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].CodeEquals(code) {
			return &products[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

// Insert appends the product and persists the collection. Ids are creation
// timestamps; when two creates land in the same millisecond the later one is
// bumped past the current maximum to keep ids unique and monotonic.
func (r *FileProductRepository) Insert(ctx context.Context, product *catalog.Product) error {
	return r.collection.Mutate(func(records []productRecord) ([]productRecord, error) {
		var maxID int64
		for _, rec := range records {
			if rec.ID != nil && *rec.ID > maxID {
				maxID = *rec.ID
			}
		}
		if product.ID <= maxID {
			product.ID = maxID + 1
		}
		return append(records, toRecord(*product)), nil
	})
}

// Update replaces the stored record with the same id
func (r *FileProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	return r.collection.Mutate(func(records []productRecord) ([]productRecord, error) {
		for i, rec := range records {
			if rec.ID != nil && *rec.ID == product.ID {
				records[i] = toRecord(*product)
				return records, nil
			}
		}
		return nil, shared.ErrNotFound
	})
}

// Delete removes the product and returns the removed record. Malformed
// entries are invisible here too: deleting their id reports not-found, the
// same answer the read paths give.
func (r *FileProductRepository) Delete(ctx context.Context, id int64) (*catalog.Product, error) {
	var removed *catalog.Product
	err := r.collection.Mutate(func(records []productRecord) ([]productRecord, error) {
		for i, rec := range records {
			if rec.wellFormed() && *rec.ID == id {
				product := rec.toProduct()
				removed = &product
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, shared.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
