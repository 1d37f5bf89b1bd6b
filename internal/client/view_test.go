package client

import (
	"testing"

	"github.com/mbsolutions/storefront/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewProduct(id int64, category catalog.Category, price int64, stock int) catalog.Product {
	return catalog.Product{
		ID:       id,
		Code:     "P-1",
		Name:     "Producto",
		Category: category,
		Price:    decimal.NewFromInt(price),
		Stock:    stock,
	}
}

func TestCategoryFilters(t *testing.T) {
	t.Run("empty catalog shows only Todos", func(t *testing.T) {
		filters := CategoryFilters(nil)
		require.Len(t, filters, 1)
		assert.Equal(t, Filter{ID: "all", Label: "Todos"}, filters[0])
	})

	t.Run("only categories with products appear, in display order", func(t *testing.T) {
		products := []catalog.Product{
			viewProduct(1, catalog.CategoryComponentes, 100, 1),
			viewProduct(2, catalog.CategoryLaptops, 100, 1),
			viewProduct(3, catalog.CategoryLaptops, 100, 1),
		}
		filters := CategoryFilters(products)
		require.Len(t, filters, 3)
		assert.Equal(t, "all", filters[0].ID)
		assert.Equal(t, Filter{ID: "laptops", Label: "Laptops"}, filters[1])
		assert.Equal(t, Filter{ID: "componentes", Label: "Componentes"}, filters[2])
	})
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Computadoras", CategoryLabel(catalog.CategoryDesktops))
	assert.Equal(t, "Consumibles", CategoryLabel(catalog.CategoryConsumibles))
	assert.Equal(t, "otros", CategoryLabel(catalog.Category("otros")), "unknown falls back to the raw id")
}

func TestFilterByCategory(t *testing.T) {
	products := []catalog.Product{
		viewProduct(1, catalog.CategoryLaptops, 100, 1),
		viewProduct(2, catalog.CategoryAccesorios, 100, 1),
	}

	assert.Len(t, FilterByCategory(products, "all"), 2)
	assert.Len(t, FilterByCategory(products, ""), 2)

	filtered := FilterByCategory(products, "laptops")
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(1), filtered[0].ID)

	assert.Empty(t, FilterByCategory(products, "consumibles"))
}

func TestFindProduct(t *testing.T) {
	products := []catalog.Product{
		viewProduct(1, catalog.CategoryLaptops, 100, 1),
		viewProduct(2, catalog.CategoryAccesorios, 100, 1),
	}

	p, ok := FindProduct(products, 2)
	require.True(t, ok)
	assert.Equal(t, int64(2), p.ID)

	_, ok = FindProduct(products, 99)
	assert.False(t, ok)
}

func TestImagePath(t *testing.T) {
	p := viewProduct(1, catalog.CategoryLaptops, 100, 1)
	assert.Equal(t, catalog.PlaceholderImage, ImagePath(&p))

	p.Image = "images/producto_1.jpg"
	assert.Equal(t, "images/producto_1.jpg", ImagePath(&p))
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price decimal.Decimal
		want  string
	}{
		{decimal.NewFromInt(0), "₡0"},
		{decimal.NewFromInt(950), "₡950"},
		{decimal.NewFromInt(8500), "₡8,500"},
		{decimal.NewFromInt(450000), "₡450,000"},
		{decimal.NewFromInt(1250000), "₡1,250,000"},
		// decimals are truncated, matching the historical rendering
		{decimal.NewFromFloat(8500.75), "₡8,500"},
	}
	for _, tc := range cases {
		p := catalog.Product{Price: tc.price}
		assert.Equal(t, tc.want, FormatPrice(&p), "price %s", tc.price)
	}
}

func TestStockBadge(t *testing.T) {
	available := viewProduct(1, catalog.CategoryLaptops, 100, 3)
	assert.Equal(t, "Disponible", StockBadge(&available))

	gone := viewProduct(2, catalog.CategoryLaptops, 100, 0)
	assert.Equal(t, "Agotado", StockBadge(&gone))
}
