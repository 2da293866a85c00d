package user

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const userColumns = `
id, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(username, ''),
COALESCE(email, ''), password_hash, status, anonymized_time, anon_tag, created_at`

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) ListAddresses(ctx context.Context, userID int64) ([]domain.ShippingAddress, error) {
	const q = `
SELECT id, user_id, COALESCE(street, ''), city, zip, state, COALESCE(phone, '')
FROM shipping_addresses
WHERE user_id = $1
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []domain.ShippingAddress
	for rows.Next() {
		var a domain.ShippingAddress
		if err := rows.Scan(&a.ID, &a.UserID, &a.Street, &a.City, &a.Zip, &a.State, &a.Phone); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

// BeginErasure opens the transaction that carries one user's scrub cascade.
func (r *postgresRepo) BeginErasure(ctx context.Context) (ErasureTx, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	return &erasureTx{tx: tx, logger: r.logger}, nil
}

type erasureTx struct {
	tx     pgx.Tx
	logger *log.Logger
}

// LockUser reads the user row under an exclusive row lock held until the
// transaction ends. A concurrent erasure of the same user blocks here.
func (t *erasureTx) LockUser(ctx context.Context, id int64) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	return scanUser(t.tx.QueryRow(ctx, q, id))
}

func (t *erasureTx) ScrubUser(ctx context.Context, id int64, label, email string, when time.Time) error {
	const q = `
UPDATE users
SET first_name = $2,
    last_name = $2,
    username = $2,
    email = $3,
    anonymized_time = $4,
    anon_tag = $2,
    status = 'erased'
WHERE id = $1
`
	_, err := t.tx.Exec(ctx, q, id, label, email, when)
	return err
}

func (t *erasureTx) ScrubShippingAddresses(ctx context.Context, userID int64, label string) error {
	const q = `
UPDATE shipping_addresses
SET street = $2,
    phone = $2,
    city = NULL,
    state = NULL,
    zip = NULL
WHERE user_id = $1
`
	_, err := t.tx.Exec(ctx, q, userID, label)
	return err
}

func (t *erasureTx) ScrubOrders(ctx context.Context, userID int64, label, email string) error {
	const q = `
UPDATE orders
SET email_snapshot = $3,
    shipping_name = $2,
    shipping_address = $2,
    shipping_city = NULL,
    shipping_state = NULL,
    shipping_zip = NULL
WHERE user_id = $1
`
	_, err := t.tx.Exec(ctx, q, userID, label, email)
	return err
}

// ScrubPayments joins through orders; payments carry no direct user FK.
func (t *erasureTx) ScrubPayments(ctx context.Context, userID int64, label string) error {
	const q = `
UPDATE payments
SET billing_name = $2,
    billing_address = $2
WHERE order_id IN (SELECT id FROM orders WHERE user_id = $1)
`
	_, err := t.tx.Exec(ctx, q, userID, label)
	return err
}

func (t *erasureTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *erasureTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		t.logger.Printf("user repo: rollback erasure tx err=%v", err)
		return err
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Status,
		&u.AnonymizedTime,
		&u.AnonTag,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
