package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"pointofsale/internal/domain"
)

// EnsureSchema bootstraps every table the service owns. Statements are
// idempotent so restarts are safe.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			organization_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(12,2) NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			sort_order INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS product_options (
			id UUID PRIMARY KEY,
			product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			option_group TEXT NOT NULL,
			option_name TEXT NOT NULL,
			price_delta NUMERIC(12,2) NOT NULL DEFAULT 0,
			is_required BOOLEAN NOT NULL DEFAULT FALSE,
			sort_order INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS table_sessions (
			id UUID PRIMARY KEY,
			token TEXT NOT NULL UNIQUE,
			table_number INT NOT NULL,
			organization_id TEXT NOT NULL,
			branch_id TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			qr_code BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			closed_at TIMESTAMPTZ
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS table_sessions_one_active
			ON table_sessions (branch_id, table_number) WHERE is_active`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			organization_id TEXT NOT NULL,
			branch_id TEXT NOT NULL,
			table_id INT,
			qr_session_id UUID REFERENCES table_sessions(id),
			order_number INT NOT NULL,
			status TEXT NOT NULL,
			subtotal NUMERIC(12,2) NOT NULL,
			discount_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			tax NUMERIC(12,2) NOT NULL,
			tax_rate NUMERIC(6,4) NOT NULL,
			total_amount NUMERIC(12,2) NOT NULL,
			promotion_id UUID,
			created_by TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			paid_at TIMESTAMPTZ,
			UNIQUE (branch_id, order_number)
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id UUID NOT NULL,
			name TEXT NOT NULL,
			quantity INT NOT NULL,
			unit_price NUMERIC(12,2) NOT NULL,
			item_total NUMERIC(12,2) NOT NULL,
			selections JSONB NOT NULL DEFAULT '[]',
			item_status TEXT NOT NULL DEFAULT 'PENDING',
			added_by TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS promotions (
			id UUID PRIMARY KEY,
			organization_id TEXT NOT NULL,
			branch_id TEXT,
			code TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			discount_type TEXT NOT NULL,
			discount_value NUMERIC(12,2) NOT NULL,
			max_discount NUMERIC(12,2),
			min_order_total NUMERIC(12,2),
			valid_from TIMESTAMPTZ,
			valid_until TIMESTAMPTZ,
			max_usage_count INT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (organization_id, code)
		)`,
		`CREATE TABLE IF NOT EXISTS promotion_usage (
			id UUID PRIMARY KEY,
			promotion_id UUID NOT NULL REFERENCES promotions(id),
			order_id UUID NOT NULL REFERENCES orders(id),
			used_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (order_id)
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id),
			amount NUMERIC(12,2) NOT NULL,
			payment_method TEXT NOT NULL,
			status TEXT NOT NULL,
			idempotency_key TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// translateErr maps driver errors onto the domain taxonomy. Unique violations
// become ErrConflict so callers can treat duplicate sessions and idempotency
// races uniformly.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", domain.ErrConflict, pqErr.Constraint)
	}
	return err
}
