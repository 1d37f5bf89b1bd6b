package client

import (
	"strconv"
	"strings"

	"github.com/mbsolutions/storefront/internal/domain/catalog"
)

// FilterAll is the synthetic filter id that shows the whole catalog
const FilterAll = "all"

var categoryLabels = map[catalog.Category]string{
	catalog.CategoryLaptops:     "Laptops",
	catalog.CategoryDesktops:    "Computadoras",
	catalog.CategoryAccesorios:  "Accesorios",
	catalog.CategoryComponentes: "Componentes",
	catalog.CategoryConsumibles: "Consumibles",
}

// CategoryLabel returns the display label for a category. Unknown categories
// fall back to their raw identifier.
func CategoryLabel(c catalog.Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Filter is one category button in the storefront grid
type Filter struct {
	ID    string
	Label string
}

// CategoryFilters builds the filter row: "Todos" first, then only the
// categories that actually have products, in display order
func CategoryFilters(products []catalog.Product) []Filter {
	filters := []Filter{{ID: FilterAll, Label: "Todos"}}
	for _, cat := range catalog.Categories() {
		for _, p := range products {
			if p.Category == cat {
				filters = append(filters, Filter{ID: string(cat), Label: CategoryLabel(cat)})
				break
			}
		}
	}
	return filters
}

// FilterByCategory returns the products matching the selected filter
func FilterByCategory(products []catalog.Product, filter string) []catalog.Product {
	if filter == FilterAll || filter == "" {
		return products
	}
	var filtered []catalog.Product
	for _, p := range products {
		if string(p.Category) == filter {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FindProduct locates a product by id for the detail view
func FindProduct(products []catalog.Product, id int64) (*catalog.Product, bool) {
	for i := range products {
		if products[i].ID == id {
			return &products[i], true
		}
	}
	return nil, false
}

// ImagePath returns the image to render for a product, falling back to the
// placeholder when the record has none
func ImagePath(p *catalog.Product) string {
	if p.Image == "" {
		return catalog.PlaceholderImage
	}
	return p.Image
}

// FormatPrice renders a price as colones, truncated to whole units with
// thousands separators: ₡1,250,000
func FormatPrice(p *catalog.Product) string {
	return "₡" + groupThousands(p.Price.IntPart())
}

// StockBadge returns the availability label shown on the product card
func StockBadge(p *catalog.Product) string {
	if p.InStock() {
		return "Disponible"
	}
	return "Agotado"
}

func groupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign = "-"
		digits = digits[1:]
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}
