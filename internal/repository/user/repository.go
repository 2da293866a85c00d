package user

import (
	"context"
	"time"

	"storefront/internal/domain"
)

// Repository reads users and opens erasure transactions.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListAddresses(ctx context.Context, userID int64) ([]domain.ShippingAddress, error)
	BeginErasure(ctx context.Context) (ErasureTx, error)
}

// ErasureTx scopes the cascading scrub writes to a single transaction.
// LockUser must be called first; it takes an exclusive row lock that is held
// until Commit or Rollback so that concurrent erasures of the same user
// serialize. The scrub writes must be applied in a fixed top-down order
// (user, shipping addresses, orders, payments) to keep lock acquisition
// deadlock-free. Rollback after Commit is a no-op.
type ErasureTx interface {
	LockUser(ctx context.Context, id int64) (*domain.User, error)
	ScrubUser(ctx context.Context, id int64, label, email string, when time.Time) error
	ScrubShippingAddresses(ctx context.Context, userID int64, label string) error
	ScrubOrders(ctx context.Context, userID int64, label, email string) error
	ScrubPayments(ctx context.Context, userID int64, label string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
