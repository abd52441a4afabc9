// Package processors decodes broker records and hands them to the workflows.
package processors

import (
	// Go Internal Packages
	"context"
	"encoding/json"

	// Local Packages
	errors "tx-guard/errors"
	models "tx-guard/models"

	// External Packages
	"go.uber.org/zap"
)

type Validator interface {
	Validate(ctx context.Context, event models.TransactionCreatedEvent) error
}

type Reconciler interface {
	Apply(ctx context.Context, event models.TransactionStatusUpdatedEvent) error
}

// CreatedProcessor feeds transaction created events to the fraud validator.
type CreatedProcessor struct {
	Logger    *zap.Logger
	Validator Validator
}

func NewCreatedProcessor(logger *zap.Logger, validator Validator) *CreatedProcessor {
	return &CreatedProcessor{Logger: logger, Validator: validator}
}

func (p *CreatedProcessor) ProcessRecord(ctx context.Context, record models.Record) error {
	var event models.TransactionCreatedEvent
	if err := decode(p.Logger, record, &event); err != nil {
		return err
	}
	return p.Validator.Validate(ctx, event)
}

// StatusProcessor feeds status updated events to the reconciler.
type StatusProcessor struct {
	Logger     *zap.Logger
	Reconciler Reconciler
}

func NewStatusProcessor(logger *zap.Logger, reconciler Reconciler) *StatusProcessor {
	return &StatusProcessor{Logger: logger, Reconciler: reconciler}
}

func (p *StatusProcessor) ProcessRecord(ctx context.Context, record models.Record) error {
	var event models.TransactionStatusUpdatedEvent
	if err := decode(p.Logger, record, &event); err != nil {
		return err
	}
	return p.Reconciler.Apply(ctx, event)
}

func decode(logger *zap.Logger, record models.Record, v any) error {
	if err := json.Unmarshal(record.Value, v); err != nil {
		logger.Error("failed to unmarshal event",
			zap.String("topic", record.Topic),
			zap.String("key", string(record.Key)),
			zap.Error(err),
		)
		return errors.E(errors.Invalid, "malformed event on "+record.Topic, err)
	}
	return nil
}
