package transactions

import (
	// Go Internal Packages
	"context"
	"strconv"

	// Local Packages
	errors "tx-guard/errors"
	models "tx-guard/models"

	// External Packages
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Queries is the read side. Transactions and transfer types are served
// cache-aside; the status catalog is read straight from its repository.
type Queries struct {
	Logger     *zap.Logger
	TxRepo     TxRepository
	StatusRepo StatusRepository
	TypeRepo   TransferTypeRepository
	TxCache    TransactionCache
	TypeCache  TransferTypeCache
}

func NewQueries(logger *zap.Logger, txRepo TxRepository, statuses StatusRepository, types TransferTypeRepository,
	txCache TransactionCache, typeCache TransferTypeCache) *Queries {
	return &Queries{
		Logger:     logger,
		TxRepo:     txRepo,
		StatusRepo: statuses,
		TypeRepo:   types,
		TxCache:    txCache,
		TypeCache:  typeCache,
	}
}

// GetTransaction resolves a transaction and its reference data by external id.
func (q *Queries) GetTransaction(ctx context.Context, externalID string) (models.TransactionView, error) {
	id, err := uuid.Parse(externalID)
	if err != nil {
		return models.TransactionView{}, errors.ValidationErr(errors.CodeInvalidFormat, "transactionExternalId", "invalid UUID format")
	}

	tx, found, err := q.Transaction(ctx, id)
	if err != nil {
		return models.TransactionView{}, err
	}
	if !found {
		return models.TransactionView{}, errors.NotFoundErr(errors.CodeTransactionNotFound, "Transaction", externalID)
	}

	tt, found, err := q.TransferType(ctx, tx.TransferTypeID)
	if err != nil {
		return models.TransactionView{}, err
	}
	if !found {
		return models.TransactionView{}, errors.NotFoundErr(errors.CodeTransferTypeNotFound, "TransferType", strconv.Itoa(tx.TransferTypeID))
	}

	status, found, err := q.StatusByID(ctx, tx.StatusID)
	if err != nil {
		return models.TransactionView{}, err
	}
	if !found {
		return models.TransactionView{}, errors.NotFoundErr(errors.CodeTransactionStatusNotFound, "TransactionStatus", strconv.Itoa(tx.StatusID))
	}
	return models.NewTransactionView(tx, tt, status), nil
}

// Transaction reads through the cache. A store hit is cached with the TTL of
// its current status; store misses are not cached.
func (q *Queries) Transaction(ctx context.Context, externalID uuid.UUID) (models.Transaction, bool, error) {
	if tx, ok := q.TxCache.Get(ctx, externalID); ok {
		return tx, true, nil
	}

	q.Logger.Debug("transaction cache miss, reading store", zap.String("transaction_external_id", externalID.String()))
	tx, found, err := q.TxRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		return models.Transaction{}, false, errors.InternalErr("read transaction", err)
	}
	if !found {
		return models.Transaction{}, false, nil
	}

	status, ok, err := q.StatusRepo.FindByID(ctx, tx.StatusID)
	switch {
	case err != nil:
		q.Logger.Warn("cannot cache transaction, status lookup failed", zap.Int("status_id", tx.StatusID), zap.Error(err))
	case !ok:
		q.Logger.Warn("cannot cache transaction, status not found", zap.Int("status_id", tx.StatusID))
	default:
		if err = q.TxCache.Save(ctx, tx, status.Code); err != nil {
			q.Logger.Error("cannot cache transaction", zap.String("status", status.Code), zap.Error(err))
		}
	}
	return tx, true, nil
}

func (q *Queries) TransferType(ctx context.Context, id int) (models.TransferType, bool, error) {
	if tt, ok := q.TypeCache.Get(ctx, id); ok {
		return tt, true, nil
	}

	tt, found, err := q.TypeRepo.FindByID(ctx, id)
	if err != nil {
		return models.TransferType{}, false, errors.InternalErr("read transfer type", err)
	}
	if found {
		q.TypeCache.Save(ctx, tt)
	}
	return tt, found, nil
}

// TransferTypes returns the whole catalog, cached as a single collection.
func (q *Queries) TransferTypes(ctx context.Context) ([]models.TransferType, error) {
	if tts, ok := q.TypeCache.All(ctx); ok {
		return tts, nil
	}

	q.Logger.Info("transfer types cache miss, reading store")
	tts, err := q.TypeRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.InternalErr("read transfer types", err)
	}
	q.TypeCache.SaveAll(ctx, tts)
	return tts, nil
}

func (q *Queries) StatusByCode(ctx context.Context, code string) (models.TransactionStatus, bool, error) {
	status, found, err := q.StatusRepo.FindByCode(ctx, code)
	if err != nil {
		return status, false, errors.InternalErr("read transaction status", err)
	}
	return status, found, nil
}

func (q *Queries) StatusByID(ctx context.Context, id int) (models.TransactionStatus, bool, error) {
	status, found, err := q.StatusRepo.FindByID(ctx, id)
	if err != nil {
		return status, false, errors.InternalErr("read transaction status", err)
	}
	return status, found, nil
}

func (q *Queries) Statuses(ctx context.Context) ([]models.TransactionStatus, error) {
	statuses, err := q.StatusRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.InternalErr("read transaction statuses", err)
	}
	return statuses, nil
}
