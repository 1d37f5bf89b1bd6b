package order

import (
	"context"
	"time"

	"github.com/mbsolutions/storefront/internal/domain/order"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Notifier is the outbound notification port. Implementations send a summary
// of an accepted order somewhere; failures are logged by the service and
// never fail the submission — the order counts as accepted once it is on
// disk.
type Notifier interface {
	NotifyNewOrder(ctx context.Context, o *order.Order) error
}

// SubmitOrderRequest carries a checkout submission
type SubmitOrderRequest struct {
	Customer order.Customer
	Lines    []order.Line
	Total    decimal.Decimal
	Date     time.Time
}

// OrderService accepts checkout submissions
type OrderService struct {
	orders   order.Repository
	notifier Notifier
	logger   *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orders order.Repository, notifier Notifier, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit validates the submission, appends it to the order log as pending,
// and best-effort notifies the sales team. Product stock is untouched:
// orders are leads, not reservations.
func (s *OrderService) Submit(ctx context.Context, req SubmitOrderRequest) (*order.Order, error) {
	o, err := order.NewOrder(req.Customer, req.Lines, req.Total, req.Date)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Append(ctx, o); err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyNewOrder(ctx, o); err != nil {
		s.logger.Warn("order notification failed",
			zap.Int64("order_id", o.ID), zap.Error(err))
	}

	return o, nil
}
