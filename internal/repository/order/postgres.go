package order

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	const q = `
SELECT id, user_id, COALESCE(email_snapshot, ''), COALESCE(shipping_name, ''),
       COALESCE(shipping_address, ''), shipping_city, shipping_state, shipping_zip,
       tax_cents, shipping_price_cents, total_cost_cents, is_paid, is_delivered,
       paid_at, delivered_at, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at, id
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.EmailSnapshot,
			&o.ShippingName,
			&o.ShippingAddress,
			&o.ShippingCity,
			&o.ShippingState,
			&o.ShippingZip,
			&o.TaxCents,
			&o.ShippingPriceCents,
			&o.TotalCostCents,
			&o.IsPaid,
			&o.IsDelivered,
			&o.PaidAt,
			&o.DeliveredAt,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.listItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items

		payments, err := r.listPayments(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Payments = payments
	}
	return orders, nil
}

func (r *postgresRepo) listItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	const q = `
SELECT id, order_id, product_id, name, quantity, unit_price_cents
FROM order_items
WHERE order_id = $1
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Quantity, &it.UnitPriceCents); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresRepo) listPayments(ctx context.Context, orderID int64) ([]domain.Payment, error) {
	const q = `
SELECT id, order_id, COALESCE(billing_name, ''), COALESCE(billing_address, ''),
       COALESCE(psp_ref, ''), COALESCE(last4, ''), amount_cents, created_at
FROM payments
WHERE order_id = $1
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.BillingName, &p.BillingAddress, &p.PSPRef, &p.Last4, &p.AmountCents, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
