package catalog

import (
	"strings"
	"time"

	"github.com/mbsolutions/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

func init() {
	// The product file and the public API both carry prices as bare JSON
	// numbers, matching the historical on-disk format.
	decimal.MarshalJSONWithoutQuotes = true
}

// Category is the fixed set of storefront categories
type Category string

const (
	CategoryLaptops     Category = "laptops"
	CategoryDesktops    Category = "desktops"
	CategoryAccesorios  Category = "accesorios"
	CategoryComponentes Category = "componentes"
	CategoryConsumibles Category = "consumibles"
)

// PlaceholderImage is the relative path used when a product has no real image
const PlaceholderImage = "images/placeholder.jpg"

// Categories returns all valid categories in display order
func Categories() []Category {
	return []Category{
		CategoryLaptops,
		CategoryDesktops,
		CategoryAccesorios,
		CategoryComponentes,
		CategoryConsumibles,
	}
}

// IsValid reports whether c is one of the known categories
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryNames returns the category identifiers as strings, used for the
// allowed-values list on validation failures
func CategoryNames() []string {
	cats := Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return names
}

// Product represents one storefront catalog entry.
// The whole collection is persisted as a single JSON array; field names match
// the on-disk format the admin panel has always written.
type Product struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

// NewProduct creates a product with server-assigned id and creation stamp.
// The id doubles as the creation timestamp in milliseconds; uniqueness against
// the stored collection is enforced by the repository on insert.
func NewProduct(code, name string, category Category, price decimal.Decimal, stock int, description string) (*Product, error) {
	p := &Product{
		ID:        time.Now().UnixMilli(),
		Image:     PlaceholderImage,
		CreatedAt: time.Now(),
	}
	if err := p.SetCode(code); err != nil {
		return nil, err
	}
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	if err := p.SetCategory(category); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}
	if err := p.SetStock(stock); err != nil {
		return nil, err
	}
	if err := p.SetDescription(description); err != nil {
		return nil, err
	}
	return p, nil
}

// SetCode validates and sets the product code
func (p *Product) SetCode(code string) error {
	code = strings.TrimSpace(code)
	if len(code) < 1 || len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Code must be between 1 and 50 characters")
	}
	p.Code = code
	return nil
}

// SetName validates and sets the product name
func (p *Product) SetName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 1 || len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name must be between 1 and 200 characters")
	}
	p.Name = name
	return nil
}

// SetCategory validates and sets the category
func (p *Product) SetCategory(category Category) error {
	if !category.IsValid() {
		return shared.NewDomainErrorf("INVALID_CATEGORY",
			"Category must be one of: %s", strings.Join(CategoryNames(), ", "))
	}
	p.Category = category
	return nil
}

// SetPrice validates the price and stores it rounded to two decimals
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price must be a non-negative number")
	}
	p.Price = price.Round(2)
	return nil
}

// SetStock validates and sets the stock count
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock must be a non-negative integer")
	}
	p.Stock = stock
	return nil
}

// SetDescription validates and sets the description
func (p *Product) SetDescription(description string) error {
	description = strings.TrimSpace(description)
	if len(description) < 1 || len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description must be between 1 and 2000 characters")
	}
	p.Description = description
	return nil
}

// SetImage sets the stored image reference. Empty input falls back to the
// placeholder so the catalog never renders a broken path.
func (p *Product) SetImage(image string) {
	if image == "" {
		image = PlaceholderImage
	}
	p.Image = image
}

// Touch stamps the product as updated
func (p *Product) Touch() {
	now := time.Now()
	p.UpdatedAt = &now
}

// CodeEquals reports whether the product code matches other case-insensitively
func (p *Product) CodeEquals(other string) bool {
	return strings.EqualFold(p.Code, strings.TrimSpace(other))
}

// InStock reports whether the product can still be added to a cart
func (p *Product) InStock() bool {
	return p.Stock > 0
}
