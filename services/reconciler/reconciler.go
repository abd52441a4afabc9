// Package reconciler applies fraud verdicts to the transaction store and cache.
package reconciler

import (
	// Go Internal Packages
	"context"

	// Local Packages
	errors "tx-guard/errors"
	metrics "tx-guard/metrics"
	models "tx-guard/models"
	lifecycle "tx-guard/services/lifecycle"

	// External Packages
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Outcomes of a status updated event, also used as metric labels.
const (
	OutcomeApplied   = "applied"
	OutcomeNotFound  = "not_found"
	OutcomeDuplicate = "duplicate"
	OutcomeConflict  = "conflict"
	OutcomeIgnored   = "ignored"
)

type TxRepository interface {
	FindByExternalID(ctx context.Context, externalID uuid.UUID) (models.Transaction, bool, error)
	// UpdateStatus sets statusID only on a row whose status is one of
	// fromStatusIDs and returns the number of rows changed.
	UpdateStatus(ctx context.Context, externalID uuid.UUID, statusID int, fromStatusIDs []int) (int64, error)
}

type StatusRepository interface {
	FindByCode(ctx context.Context, code string) (models.TransactionStatus, bool, error)
	FindByID(ctx context.Context, id int) (models.TransactionStatus, bool, error)
}

type TransactionCache interface {
	UpdateStatus(ctx context.Context, externalID uuid.UUID, status models.TransactionStatus) error
}

type Reconciler struct {
	Logger   *zap.Logger
	TxRepo   TxRepository
	Statuses StatusRepository
	Cache    TransactionCache
}

func NewReconciler(logger *zap.Logger, txRepo TxRepository, statuses StatusRepository, cache TransactionCache) *Reconciler {
	return &Reconciler{Logger: logger, TxRepo: txRepo, Statuses: statuses, Cache: cache}
}

// Apply moves the transaction to the verdict's status. The store update only
// matches rows in a state the new status may be reached from, so redelivered
// and conflicting verdicts change nothing and are absorbed.
func (r *Reconciler) Apply(ctx context.Context, event models.TransactionStatusUpdatedEvent) error {
	payload := event.Payload
	externalID, err := uuid.Parse(payload.TransactionExternalID)
	if err != nil {
		return errors.E(errors.Invalid, "invalid transaction external id "+payload.TransactionExternalID, err)
	}
	logger := r.Logger.With(
		zap.String("transaction_external_id", payload.TransactionExternalID),
		zap.String("new_status", payload.NewStatus),
	)

	status, err := r.status(ctx, payload.NewStatus)
	if err != nil {
		return err
	}

	from, err := r.predecessorIDs(ctx, payload.NewStatus)
	if err != nil {
		return err
	}
	if len(from) == 0 {
		logger.Warn("status cannot be reached from any state, ignoring event")
		metrics.StatusUpdates.WithLabelValues(OutcomeIgnored).Inc()
		return nil
	}

	affected, err := r.TxRepo.UpdateStatus(ctx, externalID, status.ID, from)
	if err != nil {
		return errors.InternalErr("update transaction status", err)
	}
	if affected == 0 {
		outcome := r.explain(ctx, logger, externalID, status)
		metrics.StatusUpdates.WithLabelValues(outcome).Inc()
		return nil
	}

	if err = r.Cache.UpdateStatus(ctx, externalID, status); err != nil {
		// the store is already updated; the cache entry expires on its own
		logger.Error("cannot update cached transaction", zap.Error(err))
	}
	metrics.StatusUpdates.WithLabelValues(OutcomeApplied).Inc()
	logger.Info("transaction status updated", zap.String("previous_status", payload.PreviousStatus))
	return nil
}

func (r *Reconciler) status(ctx context.Context, code string) (models.TransactionStatus, error) {
	status, found, err := r.Statuses.FindByCode(ctx, code)
	if err != nil {
		return status, errors.InternalErr("read transaction status", err)
	}
	if !found {
		return status, errors.IllegalStateErr("transaction status not configured: " + code)
	}
	return status, nil
}

func (r *Reconciler) predecessorIDs(ctx context.Context, code string) ([]int, error) {
	var ids []int
	for _, from := range lifecycle.Predecessors(code) {
		status, err := r.status(ctx, from)
		if err != nil {
			return nil, err
		}
		ids = append(ids, status.ID)
	}
	return ids, nil
}

// explain tells apart the reasons an update matched no row. None is an error.
func (r *Reconciler) explain(ctx context.Context, logger *zap.Logger, externalID uuid.UUID, proposed models.TransactionStatus) string {
	tx, found, err := r.TxRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		logger.Warn("status update matched no transaction, lookup failed", zap.Error(err))
		return OutcomeNotFound
	}
	if !found {
		logger.Warn("status update for unknown transaction, ignoring")
		return OutcomeNotFound
	}
	if tx.StatusID == proposed.ID {
		logger.Info("status already applied, ignoring redelivered event")
		return OutcomeDuplicate
	}

	current := "unknown"
	if status, ok, _ := r.Statuses.FindByID(ctx, tx.StatusID); ok {
		current = status.Code
	}
	logger.Warn("conflicting verdict for finalized transaction, ignoring",
		zap.String("current_status", current),
		zap.Bool("allowed", lifecycle.CanTransition(current, proposed.Code)),
	)
	return OutcomeConflict
}
