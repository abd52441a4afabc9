// Package antifraud screens created transactions and publishes a verdict.
package antifraud

import (
	// Go Internal Packages
	"context"
	"time"

	// Local Packages
	errors "tx-guard/errors"
	helpers "tx-guard/helpers"
	metrics "tx-guard/metrics"
	models "tx-guard/models"
	rules "tx-guard/services/rules"

	// External Packages
	"go.uber.org/zap"
)

type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type Config struct {
	Topic         string
	Source        string
	SchemaVersion string
}

type Validator struct {
	Logger    *zap.Logger
	Engine    *rules.Engine
	Publisher EventPublisher
	Config    Config
	Now       func() time.Time
}

func NewValidator(logger *zap.Logger, engine *rules.Engine, publisher EventPublisher, conf Config) *Validator {
	return &Validator{Logger: logger, Engine: engine, Publisher: publisher, Config: conf, Now: time.Now}
}

// Validate runs the rule engine on a created transaction and publishes the
// resulting status update. An unparsable amount or a publish failure is
// returned so the message is redelivered.
func (v *Validator) Validate(ctx context.Context, event models.TransactionCreatedEvent) error {
	payload := event.Payload
	amount, err := models.ParseAmount(payload.Value)
	if err != nil {
		return errors.E(errors.Invalid, "transaction "+payload.TransactionExternalID+" has an invalid amount", err)
	}

	verdict := v.Engine.Validate(amount.Decimal)
	ruleCode, _ := verdict.RuleCode()
	metrics.Verdicts.WithLabelValues(verdict.Status(), ruleCode).Inc()

	now := v.Now()
	out := models.TransactionStatusUpdatedEvent{
		Metadata: models.NewEventMetadata(models.EventTypeTransactionStatusUpdated, v.Config.Source,
			v.Config.SchemaVersion, event.Metadata.CorrelationID, now),
		Payload: models.TransactionStatusUpdatedPayload{
			TransactionExternalID: payload.TransactionExternalID,
			PreviousStatus:        models.StatusPending,
			NewStatus:             verdict.Status(),
			Value:                 amount.String(),
			ValidationResult:      verdict.Result(),
			ProcessedAt:           helpers.FormatTimestamp(now),
		},
	}

	if err = v.Publisher.Publish(ctx, v.Config.Topic, payload.TransactionExternalID, out); err != nil {
		return errors.InternalErr("publish status updated event", err)
	}

	v.Logger.Info("transaction screened",
		zap.String("transaction_external_id", payload.TransactionExternalID),
		zap.String("value", amount.String()),
		zap.String("status", verdict.Status()),
		zap.String("rule_code", ruleCode),
	)
	return nil
}
