// Package memory is an in-process store driver for local runs and tests.
package memory

import (
	// Go Internal Packages
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	// Local Packages
	models "tx-guard/models"

	// External Packages
	"github.com/google/uuid"
)

type TxRepository struct {
	mu  sync.RWMutex
	txs map[uuid.UUID]models.Transaction
}

func NewTxRepository() *TxRepository {
	return &TxRepository{txs: make(map[uuid.UUID]models.Transaction)}
}

func (r *TxRepository) Save(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.txs[tx.ExternalID]; exists {
		return models.Transaction{}, fmt.Errorf("transaction %s already exists", tx.ExternalID)
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	r.txs[tx.ExternalID] = tx
	return tx, nil
}

func (r *TxRepository) FindByExternalID(_ context.Context, externalID uuid.UUID) (models.Transaction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, ok := r.txs[externalID]
	return tx, ok, nil
}

// UpdateStatus sets the status only when the current one is in fromStatusIDs.
func (r *TxRepository) UpdateStatus(_ context.Context, externalID uuid.UUID, statusID int, fromStatusIDs []int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, ok := r.txs[externalID]
	if !ok || !slices.Contains(fromStatusIDs, tx.StatusID) {
		return 0, nil
	}
	tx.StatusID = statusID
	r.txs[externalID] = tx
	return 1, nil
}

func (r *TxRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.txs)
}

type StatusRepository struct {
	statuses []models.TransactionStatus
}

func NewStatusRepository(statuses []models.TransactionStatus) *StatusRepository {
	return &StatusRepository{statuses: slices.Clone(statuses)}
}

func (r *StatusRepository) FindByCode(_ context.Context, code string) (models.TransactionStatus, bool, error) {
	for _, s := range r.statuses {
		if s.Code == code {
			return s, true, nil
		}
	}
	return models.TransactionStatus{}, false, nil
}

func (r *StatusRepository) FindByID(_ context.Context, id int) (models.TransactionStatus, bool, error) {
	for _, s := range r.statuses {
		if s.ID == id {
			return s, true, nil
		}
	}
	return models.TransactionStatus{}, false, nil
}

func (r *StatusRepository) FindAll(_ context.Context) ([]models.TransactionStatus, error) {
	return slices.Clone(r.statuses), nil
}

type TransferTypeRepository struct {
	types []models.TransferType
}

func NewTransferTypeRepository(types []models.TransferType) *TransferTypeRepository {
	return &TransferTypeRepository{types: slices.Clone(types)}
}

func (r *TransferTypeRepository) FindByID(_ context.Context, id int) (models.TransferType, bool, error) {
	for _, tt := range r.types {
		if tt.ID == id {
			return tt, true, nil
		}
	}
	return models.TransferType{}, false, nil
}

func (r *TransferTypeRepository) FindAll(_ context.Context) ([]models.TransferType, error) {
	return slices.Clone(r.types), nil
}
