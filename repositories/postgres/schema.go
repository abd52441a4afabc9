package postgres

import (
	// Go Internal Packages
	"context"
	"fmt"

	// Local Packages
	models "tx-guard/models"

	// External Packages
	"github.com/jackc/pgx/v5/pgxpool"
)

// value is an unconstrained numeric so the scale given by the caller is kept.
const schema = `
CREATE TABLE IF NOT EXISTS transaction_status (
	transaction_status_id INT PRIMARY KEY,
	code                  VARCHAR(32) NOT NULL UNIQUE,
	name                  VARCHAR(64) NOT NULL
);

CREATE TABLE IF NOT EXISTS transfer_type (
	transfer_type_id INT PRIMARY KEY,
	code             VARCHAR(32) NOT NULL UNIQUE,
	name             VARCHAR(64) NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	transaction_id             BIGSERIAL PRIMARY KEY,
	transaction_external_id    UUID        NOT NULL UNIQUE,
	account_external_id_debit  UUID        NOT NULL,
	account_external_id_credit UUID        NOT NULL,
	transfer_type_id           INT         NOT NULL REFERENCES transfer_type (transfer_type_id),
	transaction_status_id      INT         NOT NULL REFERENCES transaction_status (transaction_status_id),
	value                      NUMERIC     NOT NULL CHECK (value >= 0),
	created_at                 TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema creates the tables when missing and upserts the catalog.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, statuses []models.TransactionStatus, types []models.TransferType) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	for _, s := range statuses {
		_, err := pool.Exec(ctx,
			`INSERT INTO transaction_status (transaction_status_id, code, name) VALUES ($1, $2, $3)
			 ON CONFLICT (transaction_status_id) DO UPDATE SET code = EXCLUDED.code, name = EXCLUDED.name`,
			s.ID, s.Code, s.Name)
		if err != nil {
			return fmt.Errorf("failed to seed status %s: %w", s.Code, err)
		}
	}
	for _, tt := range types {
		_, err := pool.Exec(ctx,
			`INSERT INTO transfer_type (transfer_type_id, code, name) VALUES ($1, $2, $3)
			 ON CONFLICT (transfer_type_id) DO UPDATE SET code = EXCLUDED.code, name = EXCLUDED.name`,
			tt.ID, tt.Code, tt.Name)
		if err != nil {
			return fmt.Errorf("failed to seed transfer type %s: %w", tt.Code, err)
		}
	}
	return nil
}
