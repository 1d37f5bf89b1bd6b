package cart

import (
	"fmt"
	"testing"

	"github.com/mbsolutions/storefront/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id int64, name string, price int64, stock int) catalog.Product {
	return catalog.Product{
		ID:       id,
		Code:     fmt.Sprintf("P-%d", id),
		Name:     name,
		Category: catalog.CategoryAccesorios,
		Price:    decimal.NewFromInt(price),
		Stock:    stock,
		Image:    catalog.PlaceholderImage,
	}
}

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	c, err := New(NewMemoryStorage())
	require.NoError(t, err)
	return c
}

func TestCart_Add(t *testing.T) {
	t.Run("adds a fresh line with quantity one", func(t *testing.T) {
		c := newTestCart(t)
		res, err := c.Add(testProduct(1, "Mouse", 8500, 3))
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Empty(t, res.Warning)

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].Quantity)
		assert.Equal(t, 3, lines[0].Stock)
	})

	t.Run("increments an existing line", func(t *testing.T) {
		c := newTestCart(t)
		p := testProduct(1, "Mouse", 8500, 3)
		_, err := c.Add(p)
		require.NoError(t, err)
		res, err := c.Add(p)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, 2, c.Count())
	})

	t.Run("refuses to exceed last-known stock", func(t *testing.T) {
		c := newTestCart(t)
		p := testProduct(1, "Mouse", 8500, 2)
		for i := 0; i < 2; i++ {
			res, err := c.Add(p)
			require.NoError(t, err)
			assert.True(t, res.Changed)
		}

		res, err := c.Add(p)
		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.Equal(t, "Solo hay 2 unidades disponibles de Mouse", res.Warning)
		assert.Equal(t, 2, c.Count())
	})

	t.Run("singular warning for one remaining unit", func(t *testing.T) {
		c := newTestCart(t)
		p := testProduct(1, "Mouse", 8500, 1)
		_, err := c.Add(p)
		require.NoError(t, err)
		res, err := c.Add(p)
		require.NoError(t, err)
		assert.Equal(t, "Solo hay 1 unidad disponible de Mouse", res.Warning)
	})

	t.Run("refuses a fresh out-of-stock product", func(t *testing.T) {
		c := newTestCart(t)
		res, err := c.Add(testProduct(1, "Teclado", 15000, 0))
		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.Equal(t, "Teclado está agotado", res.Warning)
		assert.Empty(t, c.Lines())
	})

	t.Run("refreshes stored stock from the incoming product", func(t *testing.T) {
		c := newTestCart(t)
		_, err := c.Add(testProduct(1, "Mouse", 8500, 1))
		require.NoError(t, err)

		// stock was restocked server-side since the first add
		res, err := c.Add(testProduct(1, "Mouse", 8500, 5))
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, 5, c.Lines()[0].Stock)
	})
}

func TestCart_SetQuantity(t *testing.T) {
	t.Run("sets quantity directly", func(t *testing.T) {
		c := newTestCart(t)
		_, err := c.Add(testProduct(1, "Mouse", 8500, 10))
		require.NoError(t, err)

		res, err := c.SetQuantity(1, 4)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, 4, c.Count())
	})

	t.Run("zero removes the line", func(t *testing.T) {
		c := newTestCart(t)
		_, err := c.Add(testProduct(1, "Mouse", 8500, 10))
		require.NoError(t, err)

		res, err := c.SetQuantity(1, 0)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Empty(t, c.Lines())
	})

	t.Run("clamps to last-known stock with warning", func(t *testing.T) {
		c := newTestCart(t)
		_, err := c.Add(testProduct(1, "Mouse", 8500, 3))
		require.NoError(t, err)

		res, err := c.SetQuantity(1, 10)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, "Máximo 3 unidades disponibles", res.Warning)
		assert.Equal(t, 3, c.Count())
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		c := newTestCart(t)
		res, err := c.SetQuantity(999, 2)
		require.NoError(t, err)
		assert.False(t, res.Changed)
	})
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := newTestCart(t)
	_, err := c.Add(testProduct(1, "Mouse", 8500, 5))
	require.NoError(t, err)
	_, err = c.Add(testProduct(2, "Teclado", 15000, 5))
	require.NoError(t, err)

	res, err := c.Remove(1)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, int64(2), c.Lines()[0].ID)

	res, err = c.Remove(999)
	require.NoError(t, err)
	assert.False(t, res.Changed)

	res, err = c.Clear()
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Empty(t, c.Lines())
	assert.Equal(t, 0, c.Count())
}

func TestCart_Totals(t *testing.T) {
	c := newTestCart(t)
	_, err := c.Add(testProduct(1, "Mouse", 8500, 5))
	require.NoError(t, err)
	_, err = c.Add(testProduct(2, "Teclado", 15000, 5))
	require.NoError(t, err)
	_, err = c.SetQuantity(1, 2)
	require.NoError(t, err)

	total := c.Total()
	assert.True(t, total.Equal(decimal.NewFromInt(32000)), "got %s", total)

	// tax is back-computed from the tax-inclusive total
	expectedTax := total.Sub(total.Div(decimal.NewFromFloat(1.13))).Round(2)
	assert.True(t, c.Tax().Equal(expectedTax), "got %s want %s", c.Tax(), expectedTax)
}

func TestCart_Persistence(t *testing.T) {
	storage := NewMemoryStorage()

	c, err := New(storage)
	require.NoError(t, err)
	_, err = c.Add(testProduct(1, "Mouse", 8500, 5))
	require.NoError(t, err)
	_, err = c.Add(testProduct(1, "Mouse", 8500, 5))
	require.NoError(t, err)

	// a second cart over the same storage sees the persisted state
	c2, err := New(storage)
	require.NoError(t, err)
	assert.Equal(t, 2, c2.Count())
	assert.True(t, c2.Total().Equal(decimal.NewFromInt(17000)))
}

func TestCart_Subscribe(t *testing.T) {
	c := newTestCart(t)

	var snapshots []Snapshot
	c.Subscribe(func(s Snapshot) {
		snapshots = append(snapshots, s)
	})
	require.Len(t, snapshots, 1, "subscriber starts with the current state")
	assert.Equal(t, 0, snapshots[0].Count)

	_, err := c.Add(testProduct(1, "Mouse", 8500, 5))
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, 1, snapshots[1].Count)
	assert.True(t, snapshots[1].Total.Equal(decimal.NewFromInt(8500)))

	// refused mutations do not notify
	_, err = c.Add(testProduct(2, "Agotado", 1000, 0))
	require.NoError(t, err)
	assert.Len(t, snapshots, 2)
}
