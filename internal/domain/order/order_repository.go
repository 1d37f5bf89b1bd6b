package order

import "context"

// Repository defines the interface for the append-only order log
type Repository interface {
	// Append adds an accepted order to the log and persists it
	Append(ctx context.Context, order *Order) error

	// FindAll returns every logged order, oldest first
	FindAll(ctx context.Context) ([]Order, error)
}
