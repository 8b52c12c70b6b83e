package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied at startup. Every statement is idempotent so restarting
// the server against an existing database is safe.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	role          TEXT NOT NULL,
	status        TEXT NOT NULL DEFAULT 'active',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS medicines (
	id                 UUID PRIMARY KEY,
	name               TEXT NOT NULL,
	category           TEXT NOT NULL DEFAULT '',
	batch_number       TEXT NOT NULL DEFAULT '',
	manufacturing_date DATE,
	expiry_date        DATE,
	received_date      DATE,
	buy_price          BIGINT NOT NULL DEFAULT 0,
	sell_price         BIGINT NOT NULL DEFAULT 0,
	minimum_stock      BIGINT NOT NULL DEFAULT 0,
	deleted            BOOLEAN NOT NULL DEFAULT FALSE,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_medicines_name ON medicines (lower(name)) WHERE NOT deleted;

CREATE TABLE IF NOT EXISTS stock_balances (
	medicine_id      UUID PRIMARY KEY REFERENCES medicines(id),
	current_quantity BIGINT NOT NULL DEFAULT 0 CHECK (current_quantity >= 0),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS stock_transactions (
	id             UUID PRIMARY KEY,
	medicine_id    UUID NOT NULL REFERENCES medicines(id),
	type           TEXT NOT NULL,
	quantity       BIGINT NOT NULL CHECK (quantity > 0),
	reason         TEXT NOT NULL DEFAULT '',
	reference_id   UUID,
	reference_type TEXT,
	performed_by   TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_stock_tx_medicine ON stock_transactions (medicine_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_stock_tx_reference ON stock_transactions (reference_id) WHERE reference_id IS NOT NULL;

CREATE TABLE IF NOT EXISTS bills (
	id               UUID PRIMARY KEY,
	bill_number      TEXT NOT NULL UNIQUE,
	customer_name    TEXT NOT NULL DEFAULT '',
	customer_phone   TEXT NOT NULL DEFAULT '',
	subtotal         BIGINT NOT NULL,
	discount_percent NUMERIC(5,2) NOT NULL DEFAULT 0,
	discount_amount  BIGINT NOT NULL DEFAULT 0,
	tax_percent      NUMERIC(5,2) NOT NULL DEFAULT 0,
	tax_amount       BIGINT NOT NULL DEFAULT 0,
	total            BIGINT NOT NULL,
	payment_mode     TEXT NOT NULL,
	amount_received  BIGINT NOT NULL DEFAULT 0,
	change_due       BIGINT NOT NULL DEFAULT 0,
	voided           BOOLEAN NOT NULL DEFAULT FALSE,
	void_reason      TEXT NOT NULL DEFAULT '',
	voided_by        TEXT NOT NULL DEFAULT '',
	voided_at        TIMESTAMPTZ,
	created_by       TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_bills_created_at ON bills (created_at DESC);

CREATE TABLE IF NOT EXISTS bill_items (
	id          UUID PRIMARY KEY,
	bill_id     UUID NOT NULL REFERENCES bills(id),
	medicine_id UUID NOT NULL REFERENCES medicines(id),
	quantity    BIGINT NOT NULL CHECK (quantity > 0),
	unit_price  BIGINT NOT NULL,
	line_total  BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bill_items_bill ON bill_items (bill_id);

CREATE TABLE IF NOT EXISTS suppliers (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	phone      TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	address    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS purchase_orders (
	id            UUID PRIMARY KEY,
	order_number  TEXT NOT NULL UNIQUE,
	supplier_id   UUID NOT NULL REFERENCES suppliers(id),
	status        TEXT NOT NULL DEFAULT 'pending',
	order_date    TIMESTAMPTZ NOT NULL DEFAULT now(),
	expected_date DATE,
	received_date DATE,
	total_amount  BIGINT NOT NULL DEFAULT 0,
	paid_amount   BIGINT NOT NULL DEFAULT 0,
	notes         TEXT NOT NULL DEFAULT '',
	created_by    TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_purchase_orders_status ON purchase_orders (status);

CREATE TABLE IF NOT EXISTS purchase_order_items (
	id                UUID PRIMARY KEY,
	order_id          UUID NOT NULL REFERENCES purchase_orders(id),
	medicine_id       UUID NOT NULL REFERENCES medicines(id),
	quantity_ordered  BIGINT NOT NULL CHECK (quantity_ordered > 0),
	quantity_received BIGINT NOT NULL DEFAULT 0,
	unit_price        BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_po_items_order ON purchase_order_items (order_id);
`

// Migrate applies the schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
