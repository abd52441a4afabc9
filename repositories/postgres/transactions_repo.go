package postgres

import (
	// Go Internal Packages
	"context"
	"errors"
	"fmt"
	"time"

	// Local Packages
	models "tx-guard/models"

	// External Packages
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TxRepository struct {
	db *pgxpool.Pool
}

func NewTxRepository(db *pgxpool.Pool) *TxRepository {
	return &TxRepository{db: db}
}

// Save inserts a transaction. Values travel as text so no digit or scale is
// lost to a float conversion.
func (r *TxRepository) Save(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	var createdAt time.Time
	err := r.db.QueryRow(ctx,
		`INSERT INTO transactions (transaction_external_id, account_external_id_debit, account_external_id_credit,
		                           transfer_type_id, transaction_status_id, value)
		 VALUES ($1, $2, $3, $4, $5, $6::text::numeric)
		 RETURNING created_at`,
		tx.ExternalID, tx.DebitAccountID, tx.CreditAccountID, tx.TransferTypeID, tx.StatusID, tx.Value.String(),
	).Scan(&createdAt)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to insert transaction: %w", err)
	}
	tx.CreatedAt = createdAt.UTC().Truncate(time.Millisecond)
	return tx, nil
}

func (r *TxRepository) FindByExternalID(ctx context.Context, externalID uuid.UUID) (models.Transaction, bool, error) {
	var (
		tx    models.Transaction
		value string
	)
	err := r.db.QueryRow(ctx,
		`SELECT transaction_external_id, account_external_id_debit, account_external_id_credit,
		        transfer_type_id, transaction_status_id, value::text, created_at
		 FROM transactions
		 WHERE transaction_external_id = $1`,
		externalID,
	).Scan(&tx.ExternalID, &tx.DebitAccountID, &tx.CreditAccountID, &tx.TransferTypeID, &tx.StatusID, &value, &tx.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Transaction{}, false, nil
	}
	if err != nil {
		return models.Transaction{}, false, fmt.Errorf("failed to find transaction: %w", err)
	}

	if tx.Value, err = models.ParseAmount(value); err != nil {
		return models.Transaction{}, false, err
	}
	tx.CreatedAt = tx.CreatedAt.UTC()
	return tx, true, nil
}

// UpdateStatus sets the status only on rows whose current status is in
// fromStatusIDs, returning the affected row count.
func (r *TxRepository) UpdateStatus(ctx context.Context, externalID uuid.UUID, statusID int, fromStatusIDs []int) (int64, error) {
	from := make([]int32, len(fromStatusIDs))
	for i, id := range fromStatusIDs {
		from[i] = int32(id)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE transactions SET transaction_status_id = $2
		 WHERE transaction_external_id = $1 AND transaction_status_id = ANY($3)`,
		externalID, statusID, from,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update transaction status: %w", err)
	}
	return tag.RowsAffected(), nil
}
