package order

import (
	"context"

	"storefront/internal/domain"
)

// Repository fetches orders with their items and payments.
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}
