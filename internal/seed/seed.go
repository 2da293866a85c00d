package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	SKU        string
	Name       string
	PriceCents int64
	Currency   string
}

// Apply inserts demo data for manual testing: a small catalog, one demo
// shopper with an address, and a paid order with an item and a payment.
// It is idempotent; rerunning it does not duplicate rows.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{SKU: "SKU-DEMO-TSHIRT", Name: "Demo T-Shirt", PriceCents: 1999, Currency: "USD"},
		{SKU: "SKU-DEMO-MUG", Name: "Demo Mug", PriceCents: 1299, Currency: "USD"},
	}
	productIDs := make(map[string]int64, len(products))
	for _, p := range products {
		id, err := upsertProduct(ctx, pool, p)
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", p.SKU, err)
		}
		productIDs[p.SKU] = id
	}

	userID, created, err := ensureDemoUser(ctx, pool)
	if err != nil {
		return fmt.Errorf("ensure demo user: %w", err)
	}
	if !created {
		return nil
	}

	if _, err := pool.Exec(ctx, `
INSERT INTO shipping_addresses (user_id, street, city, zip, state, phone)
VALUES ($1, '1 Demo Street', 'Demoville', '00001', 'CA', '555-0100')
`, userID); err != nil {
		return fmt.Errorf("insert demo address: %w", err)
	}

	var orderID int64
	err = pool.QueryRow(ctx, `
INSERT INTO orders (user_id, email_snapshot, shipping_name, shipping_address,
                    shipping_city, shipping_state, shipping_zip,
                    tax_cents, shipping_price_cents, total_cost_cents, is_paid, paid_at)
VALUES ($1, 'demo@example.com', 'Demo Shopper', '1 Demo Street', 'Demoville', 'CA', '00001',
        160, 499, 2658, TRUE, now())
RETURNING id
`, userID).Scan(&orderID)
	if err != nil {
		return fmt.Errorf("insert demo order: %w", err)
	}

	if _, err := pool.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, name, quantity, unit_price_cents)
VALUES ($1, $2, 'Demo T-Shirt', 1, 1999)
`, orderID, productIDs["SKU-DEMO-TSHIRT"]); err != nil {
		return fmt.Errorf("insert demo order item: %w", err)
	}

	if _, err := pool.Exec(ctx, `
INSERT INTO payments (order_id, billing_name, billing_address, psp_ref, last4, amount_cents)
VALUES ($1, 'Demo Shopper', '1 Demo Street, Demoville CA 00001', 'psp_demo_1', '4242', 2658)
`, orderID); err != nil {
		return fmt.Errorf("insert demo payment: %w", err)
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) (int64, error) {
	const q = `
INSERT INTO products (sku, name, price_cents, currency)
VALUES ($1, $2, $3, $4)
ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name, price_cents = EXCLUDED.price_cents
RETURNING id
`
	var id int64
	err := pool.QueryRow(ctx, q, p.SKU, p.Name, p.PriceCents, p.Currency).Scan(&id)
	return id, err
}

// ensureDemoUser inserts the demo shopper unless a row with the same
// username already exists. Returns whether a fresh row was created so the
// caller knows to seed the dependent records once.
func ensureDemoUser(ctx context.Context, pool *pgxpool.Pool) (int64, bool, error) {
	var id int64
	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE username = 'demo'`).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("DemoPass1"), bcrypt.DefaultCost)
	if err != nil {
		return 0, false, err
	}
	err = pool.QueryRow(ctx, `
INSERT INTO users (first_name, last_name, username, email, password_hash)
VALUES ('Demo', 'Shopper', 'demo', 'demo@example.com', $1)
RETURNING id
`, string(hashed)).Scan(&id)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
