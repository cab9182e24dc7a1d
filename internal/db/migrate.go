package db

import (
	"context"
	"fmt"
)

// schema is applied in order on every start. Each statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         BIGSERIAL PRIMARY KEY,
		name       VARCHAR(100) NOT NULL,
		address    VARCHAR(100) NOT NULL,
		email      VARCHAR(100) NOT NULL,
		password   VARCHAR(200) NOT NULL,
		role       SMALLINT     NOT NULL CHECK (role IN (1, 2, 3)),
		created_at TIMESTAMPTZ  NOT NULL DEFAULT now(),
		UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(100)  NOT NULL,
		description VARCHAR(500)  NOT NULL,
		price       NUMERIC(10,2) NOT NULL CHECK (price > 0),
		category    VARCHAR(100)  NOT NULL,
		created_at  TIMESTAMPTZ   NOT NULL DEFAULT now(),
		UNIQUE (name)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id              BIGSERIAL PRIMARY KEY,
		product_name    VARCHAR(100)  NOT NULL,
		quantity        INTEGER       NOT NULL CHECK (quantity > 0),
		customer_id     BIGINT        NOT NULL,
		customer_name   VARCHAR(100)  NOT NULL,
		address         VARCHAR(100)  NOT NULL,
		unit_price      NUMERIC(10,2) NOT NULL CHECK (unit_price > 0),
		total           NUMERIC(12,2) NOT NULL,
		delivery_id     BIGINT        DEFAULT NULL,
		delivery_name   VARCHAR(100)  DEFAULT NULL,
		dispatch_status VARCHAR(20)   NOT NULL DEFAULT 'Not Picked Up'
			CHECK (dispatch_status IN ('Not Picked Up', 'Dispatched', 'Delivered')),
		delivered       BOOLEAN       NOT NULL DEFAULT FALSE,
		eta             VARCHAR(20)   NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ   NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ   NOT NULL DEFAULT now(),
		CHECK ((dispatch_status = 'Delivered') = delivered)
	)`,
	`CREATE INDEX IF NOT EXISTS orders_address_idx ON orders (address)`,
	`CREATE INDEX IF NOT EXISTS orders_customer_id_idx ON orders (customer_id)`,
	`CREATE TABLE IF NOT EXISTS order_history (
		id         BIGSERIAL PRIMARY KEY,
		order_id   BIGINT      NOT NULL REFERENCES orders (id),
		status     VARCHAR(20) NOT NULL,
		actor_id   BIGINT      DEFAULT NULL,
		changed_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS order_history_order_id_idx ON order_history (order_id)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id         UUID PRIMARY KEY,
		account_id BIGINT      NOT NULL REFERENCES users (id),
		created_at TIMESTAMPTZ NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sessions_expires_at_idx ON sessions (expires_at)`,
	`CREATE TABLE IF NOT EXISTS outbox_tasks (
		id           UUID PRIMARY KEY,
		status       VARCHAR(20)  NOT NULL,
		payload      JSONB        NOT NULL,
		topic        VARCHAR(200) NOT NULL,
		attempts     INTEGER      NOT NULL DEFAULT 0,
		last_error   TEXT         DEFAULT NULL,
		created_at   TIMESTAMPTZ  NOT NULL,
		updated_at   TIMESTAMPTZ  NOT NULL,
		completed_at TIMESTAMPTZ  DEFAULT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS outbox_tasks_status_idx ON outbox_tasks (status, updated_at)`,
}

// Migrate creates the tables the application needs. It is safe to run
// against an already migrated database.
func Migrate(ctx context.Context, database DB) error {
	for i, stmt := range schema {
		if _, err := database.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}
