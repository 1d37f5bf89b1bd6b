// Package cart implements the client-side shopping cart as a typed ledger.
// State lives entirely on the client: stock checks use whatever stock value
// was last fetched with the product, never a server round-trip.
package cart

import (
	"fmt"
	"sync"

	"github.com/mbsolutions/storefront/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// taxRate is the tax factor already included in displayed prices. The tax
// shown at checkout is back-computed, never added on top.
var taxRate = decimal.NewFromFloat(1.13)

// Line is one cart row, keyed by product id
type Line struct {
	ID       int64           `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Stock    int             `json:"stock"`
	Quantity int             `json:"quantity"`
}

// Storage persists the whole cart on every successful mutation. It is the
// localStorage analogue; implementations must tolerate an empty store.
type Storage interface {
	Load() ([]Line, error)
	Save(lines []Line) error
}

// MemoryStorage is an in-process Storage, used when nothing needs to survive
// a restart and by tests.
type MemoryStorage struct {
	mu    sync.Mutex
	lines []Line
}

// NewMemoryStorage creates an empty MemoryStorage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load returns the stored cart
func (s *MemoryStorage) Load() ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out, nil
}

// Save replaces the stored cart
func (s *MemoryStorage) Save(lines []Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make([]Line, len(lines))
	copy(s.lines, lines)
	return nil
}

// Snapshot is the state handed to subscribers after each mutation
type Snapshot struct {
	Lines []Line
	Count int
	Total decimal.Decimal
}

// Result reports what a mutation did. Warning carries the user-facing message
// when a stock limit refused or clamped the change.
type Result struct {
	Changed bool
	Warning string
}

// Cart is the quantity ledger behind the storefront cart UI
type Cart struct {
	mu          sync.Mutex
	storage     Storage
	lines       []Line
	subscribers []func(Snapshot)
}

// New creates a cart backed by the given storage, loading any persisted state
func New(storage Storage) (*Cart, error) {
	lines, err := storage.Load()
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return &Cart{storage: storage, lines: lines}, nil
}

// Subscribe registers a callback invoked after every successful mutation,
// starting with the current state. The item-count badge hangs off this.
func (c *Cart) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	c.subscribers = append(c.subscribers, fn)
	snap := c.snapshotLocked()
	c.mu.Unlock()
	fn(snap)
}

// Add puts one unit of the product in the cart. An existing line increments
// unless it already holds the last-known stock; a fresh line is refused when
// the product is out of stock. The incoming product refreshes the stored
// stock value.
func (c *Cart) Add(p catalog.Product) (Result, error) {
	c.mu.Lock()

	for i := range c.lines {
		if c.lines[i].ID != p.ID {
			continue
		}
		available := p.Stock
		if c.lines[i].Quantity >= available {
			c.mu.Unlock()
			return Result{Warning: fmt.Sprintf("Solo hay %d %s de %s", available, unidades(available), p.Name)}, nil
		}
		c.lines[i].Quantity++
		c.lines[i].Stock = available
		return c.commitLocked()
	}

	if !p.InStock() {
		c.mu.Unlock()
		return Result{Warning: fmt.Sprintf("%s está agotado", p.Name)}, nil
	}
	c.lines = append(c.lines, Line{
		ID:       p.ID,
		Code:     p.Code,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Stock:    p.Stock,
		Quantity: 1,
	})
	return c.commitLocked()
}

// SetQuantity sets a line quantity directly. Zero or less removes the line;
// anything above the last-known stock clamps to it with a warning.
func (c *Cart) SetQuantity(id int64, quantity int) (Result, error) {
	c.mu.Lock()

	idx := -1
	for i := range c.lines {
		if c.lines[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return Result{}, nil
	}

	if quantity <= 0 {
		c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
		return c.commitLocked()
	}

	warning := ""
	if available := c.lines[idx].Stock; quantity > available {
		warning = fmt.Sprintf("Máximo %d %s", available, unidades(available))
		quantity = available
	}
	c.lines[idx].Quantity = quantity
	res, err := c.commitLocked()
	res.Warning = warning
	return res, err
}

// Remove drops the line for the given product id
func (c *Cart) Remove(id int64) (Result, error) {
	c.mu.Lock()
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return c.commitLocked()
		}
	}
	c.mu.Unlock()
	return Result{}, nil
}

// Clear empties the cart
func (c *Cart) Clear() (Result, error) {
	c.mu.Lock()
	c.lines = nil
	return c.commitLocked()
}

// Lines returns a copy of the current cart rows
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Count is the total unit count across all lines
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return countOf(c.lines)
}

// Total is the tax-inclusive sum of price*quantity over all lines
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalOf(c.lines)
}

// Tax is the tax portion already included in Total
func (c *Cart) Tax() decimal.Decimal {
	total := c.Total()
	return total.Sub(total.Div(taxRate)).Round(2)
}

// commitLocked persists the cart, releases the lock, and notifies
// subscribers. Callers must hold c.mu.
func (c *Cart) commitLocked() (Result, error) {
	if err := c.storage.Save(c.lines); err != nil {
		c.mu.Unlock()
		return Result{}, fmt.Errorf("save cart: %w", err)
	}
	snap := c.snapshotLocked()
	subs := make([]func(Snapshot), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return Result{Changed: true}, nil
}

func (c *Cart) snapshotLocked() Snapshot {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return Snapshot{
		Lines: lines,
		Count: countOf(lines),
		Total: totalOf(lines),
	}
}

func countOf(lines []Line) int {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

func totalOf(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func unidades(n int) string {
	if n == 1 {
		return "unidad disponible"
	}
	return "unidades disponibles"
}
