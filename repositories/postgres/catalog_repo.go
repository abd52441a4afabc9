package postgres

import (
	// Go Internal Packages
	"context"
	"errors"
	"fmt"

	// Local Packages
	models "tx-guard/models"

	// External Packages
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatusRepository struct {
	db *pgxpool.Pool
}

func NewStatusRepository(db *pgxpool.Pool) *StatusRepository {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) FindByCode(ctx context.Context, code string) (models.TransactionStatus, bool, error) {
	return r.findOne(ctx, `SELECT transaction_status_id, code, name FROM transaction_status WHERE code = $1`, code)
}

func (r *StatusRepository) FindByID(ctx context.Context, id int) (models.TransactionStatus, bool, error) {
	return r.findOne(ctx, `SELECT transaction_status_id, code, name FROM transaction_status WHERE transaction_status_id = $1`, id)
}

func (r *StatusRepository) FindAll(ctx context.Context) ([]models.TransactionStatus, error) {
	rows, err := r.db.Query(ctx, `SELECT transaction_status_id, code, name FROM transaction_status ORDER BY transaction_status_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	defer rows.Close()

	var statuses []models.TransactionStatus
	for rows.Next() {
		var s models.TransactionStatus
		if err := rows.Scan(&s.ID, &s.Code, &s.Name); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

func (r *StatusRepository) findOne(ctx context.Context, query string, arg any) (models.TransactionStatus, bool, error) {
	var s models.TransactionStatus
	err := r.db.QueryRow(ctx, query, arg).Scan(&s.ID, &s.Code, &s.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return s, false, nil
	}
	if err != nil {
		return s, false, fmt.Errorf("failed to read status: %w", err)
	}
	return s, true, nil
}

type TransferTypeRepository struct {
	db *pgxpool.Pool
}

func NewTransferTypeRepository(db *pgxpool.Pool) *TransferTypeRepository {
	return &TransferTypeRepository{db: db}
}

func (r *TransferTypeRepository) FindByID(ctx context.Context, id int) (models.TransferType, bool, error) {
	var tt models.TransferType
	err := r.db.QueryRow(ctx,
		`SELECT transfer_type_id, code, name FROM transfer_type WHERE transfer_type_id = $1`, id,
	).Scan(&tt.ID, &tt.Code, &tt.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return tt, false, nil
	}
	if err != nil {
		return tt, false, fmt.Errorf("failed to read transfer type: %w", err)
	}
	return tt, true, nil
}

func (r *TransferTypeRepository) FindAll(ctx context.Context) ([]models.TransferType, error) {
	rows, err := r.db.Query(ctx, `SELECT transfer_type_id, code, name FROM transfer_type ORDER BY transfer_type_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfer types: %w", err)
	}
	defer rows.Close()

	var types []models.TransferType
	for rows.Next() {
		var tt models.TransferType
		if err := rows.Scan(&tt.ID, &tt.Code, &tt.Name); err != nil {
			return nil, err
		}
		types = append(types, tt)
	}
	return types, rows.Err()
}
