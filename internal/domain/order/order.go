package order

import (
	"regexp"
	"strings"
	"time"

	"github.com/mbsolutions/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order. Orders are append-only in this
// system, so every order stays pending; the enum exists for the stored format.
type Status string

const (
	StatusPending Status = "pendiente"
)

// emailPattern matches the loose "something@something.tld" check the
// storefront has always applied to checkout submissions.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Customer holds the checkout contact details
type Customer struct {
	Name    string `json:"nombre"`
	Email   string `json:"email"`
	Phone   string `json:"telefono,omitempty"`
	Address string `json:"direccion"`
	Notes   string `json:"notas,omitempty"`
}

// Line is one purchased product within an order
type Line struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Order is a submitted cart plus customer details, appended to the order log.
// Field names match the stored JSON format.
type Order struct {
	ID       int64           `json:"id"`
	Customer Customer        `json:"cliente"`
	Lines    []Line          `json:"productos"`
	Total    decimal.Decimal `json:"total"`
	Date     time.Time       `json:"fecha"`
	Status   Status          `json:"estado"`
}

// NewOrder validates a checkout submission and builds the pending order.
// The id doubles as the acceptance timestamp in milliseconds.
func NewOrder(customer Customer, lines []Line, total decimal.Decimal, date time.Time) (*Order, error) {
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order must contain at least one product")
	}
	for _, line := range lines {
		if err := validateLine(line); err != nil {
			return nil, err
		}
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Total must be a non-negative number")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Order{
		ID:       time.Now().UnixMilli(),
		Customer: customer,
		Lines:    lines,
		Total:    total.Round(2),
		Date:     date,
		Status:   StatusPending,
	}, nil
}

func validateCustomer(c Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer email is required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(c.Email)) {
		return shared.NewDomainError("INVALID_EMAIL", "Customer email is not a valid address")
	}
	return nil
}

func validateLine(line Line) error {
	if line.ProductID == 0 {
		return shared.NewDomainError("INVALID_LINE", "Order line is missing the product id")
	}
	if strings.TrimSpace(line.Name) == "" {
		return shared.NewDomainError("INVALID_LINE", "Order line is missing the product name")
	}
	if line.Price.IsNegative() {
		return shared.NewDomainError("INVALID_LINE", "Order line price must be non-negative")
	}
	if line.Quantity <= 0 {
		return shared.NewDomainError("INVALID_LINE", "Order line quantity must be greater than zero")
	}
	return nil
}
