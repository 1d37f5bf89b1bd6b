package catalog

import (
	"context"
	"errors"

	"github.com/mbsolutions/storefront/internal/domain/catalog"
	"github.com/mbsolutions/storefront/internal/domain/shared"
)

// ImageStore is the image pipeline port. Store converts an inbound payload
// into a stored reference and must never fail; it degrades to the
// placeholder instead.
type ImageStore interface {
	Store(input string, id int64) string
}

// ProductService handles catalog business operations
type ProductService struct {
	products catalog.ProductRepository
	images   ImageStore
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, images ImageStore) *ProductService {
	return &ProductService{
		products: products,
		images:   images,
	}
}

// List returns every well-formed product in the catalog
func (s *ProductService) List(ctx context.Context) ([]catalog.Product, error) {
	return s.products.FindAll(ctx)
}

// Get retrieves a product by id
func (s *ProductService) Get(ctx context.Context, id int64) (*catalog.Product, error) {
	return s.products.FindByID(ctx, id)
}

// Create validates and persists a new product. The image payload goes
// through the pipeline; the code must be unique case-insensitively.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*catalog.Product, error) {
	if req.Price == nil || req.Stock == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Price and stock are required")
	}

	if err := s.checkCodeConflict(ctx, req.Code, 0); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Code, req.Name, catalog.Category(req.Category), *req.Price, *req.Stock, req.Description)
	if err != nil {
		return nil, err
	}
	product.SetImage(s.images.Store(req.Image, product.ID))

	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update applies a partial update to an existing product. Validation runs
// only for the fields present in the request; an absent-field update still
// stamps updatedAt.
func (s *ProductService) Update(ctx context.Context, id int64, req UpdateProductRequest) (*catalog.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		if err := s.checkCodeConflict(ctx, *req.Code, id); err != nil {
			return nil, err
		}
		if err := product.SetCode(*req.Code); err != nil {
			return nil, err
		}
	}
	if req.Name != nil {
		if err := product.SetName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Category != nil {
		if err := product.SetCategory(catalog.Category(*req.Category)); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := product.SetDescription(*req.Description); err != nil {
			return nil, err
		}
	}
	if req.Image != nil {
		// The previous image file is not deleted; the leak is accepted
		product.SetImage(s.images.Store(*req.Image, product.ID))
	}
	product.Touch()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product and returns the removed record
func (s *ProductService) Delete(ctx context.Context, id int64) (*catalog.Product, error) {
	return s.products.Delete(ctx, id)
}

// checkCodeConflict rejects a code already taken by a different product,
// naming the conflicting record
func (s *ProductService) checkCodeConflict(ctx context.Context, code string, selfID int64) error {
	existing, err := s.products.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return shared.NewDomainErrorf("ALREADY_EXISTS",
		"Ya existe un producto con ese código: %s (id %d)", existing.Name, existing.ID)
}
