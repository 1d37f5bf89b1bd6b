package catalog

import "github.com/shopspring/decimal"

// CreateProductRequest carries a validated admin create submission.
// Price and Stock are pointers because zero is a legal value; presence is
// checked explicitly, never through falsiness.
type CreateProductRequest struct {
	Code        string
	Name        string
	Category    string
	Price       *decimal.Decimal
	Stock       *int
	Description string
	Image       string
}

// UpdateProductRequest carries a partial admin update; only non-nil fields
// are applied
type UpdateProductRequest struct {
	Code        *string
	Name        *string
	Category    *string
	Price       *decimal.Decimal
	Stock       *int
	Description *string
	Image       *string
}
