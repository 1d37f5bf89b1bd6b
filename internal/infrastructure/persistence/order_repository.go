package persistence

import (
	"context"

	"github.com/mbsolutions/storefront/internal/domain/order"
)

// FileOrderRepository is the append-only order log backed by a single JSON
// array file. Orders are never mutated after being written.
type FileOrderRepository struct {
	collection *Collection[order.Order]
}

var _ order.Repository = (*FileOrderRepository)(nil)

// NewFileOrderRepository opens the order log at path
func NewFileOrderRepository(path string) (*FileOrderRepository, error) {
	collection, err := NewCollection[order.Order](path)
	if err != nil {
		return nil, err
	}
	return &FileOrderRepository{collection: collection}, nil
}

// Append adds the order to the log, bumping its id past the current maximum
// when two submissions land in the same millisecond
func (r *FileOrderRepository) Append(ctx context.Context, o *order.Order) error {
	return r.collection.Mutate(func(records []order.Order) ([]order.Order, error) {
		var maxID int64
		for _, rec := range records {
			if rec.ID > maxID {
				maxID = rec.ID
			}
		}
		if o.ID <= maxID {
			o.ID = maxID + 1
		}
		return append(records, *o), nil
	})
}

// FindAll returns every logged order, oldest first
func (r *FileOrderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	return r.collection.Read()
}
