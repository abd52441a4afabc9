package transactions

import (
	// Go Internal Packages
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	// Local Packages
	errors "tx-guard/errors"
	helpers "tx-guard/helpers"
	metrics "tx-guard/metrics"
	models "tx-guard/models"

	// External Packages
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreateTransactionInput struct {
	DebitAccountExternalID  string `json:"accountExternalIdDebit"`
	CreditAccountExternalID string `json:"accountExternalIdCredit"`
	TransferTypeID          int    `json:"transferTypeId"`
	Value                   string `json:"value"`
}

// RequestMetadata is passed through from the caller untouched. Only the
// request id is used, as the correlation id of the emitted event.
type RequestMetadata struct {
	Authorization string
	RequestID     string
	RequestDate   string
}

type EventsConfig struct {
	Topic         string
	Source        string
	SchemaVersion string
}

type Creator struct {
	Logger    *zap.Logger
	Queries   *Queries
	TxRepo    TxRepository
	TxCache   TransactionCache
	Publisher EventPublisher
	Events    EventsConfig
	Now       func() time.Time
}

func NewCreator(logger *zap.Logger, queries *Queries, publisher EventPublisher, events EventsConfig) *Creator {
	return &Creator{
		Logger:    logger,
		Queries:   queries,
		TxRepo:    queries.TxRepo,
		TxCache:   queries.TxCache,
		Publisher: publisher,
		Events:    events,
		Now:       time.Now,
	}
}

// Create validates the input, persists a PENDING transaction, caches it and
// emits the created event. Store, cache and broker writes are not atomic: a
// failure after the store write leaves the transaction PENDING.
func (c *Creator) Create(ctx context.Context, input CreateTransactionInput, meta RequestMetadata) (models.TransactionView, error) {
	value, err := parseValue(input.Value)
	if err != nil {
		return models.TransactionView{}, err
	}

	tt, found, err := c.Queries.TransferType(ctx, input.TransferTypeID)
	if err != nil {
		return models.TransactionView{}, err
	}
	if !found {
		return models.TransactionView{}, errors.NotFoundErr(errors.CodeTransferTypeNotFound, "TransferType", strconv.Itoa(input.TransferTypeID))
	}

	pending, found, err := c.Queries.StatusByCode(ctx, models.StatusPending)
	if err != nil {
		return models.TransactionView{}, err
	}
	if !found {
		return models.TransactionView{}, errors.BusinessErr(errors.CodeConfiguration, "status PENDING is not configured")
	}

	debit, err := parseAccountID("accountExternalIdDebit", input.DebitAccountExternalID)
	if err != nil {
		return models.TransactionView{}, err
	}
	credit, err := parseAccountID("accountExternalIdCredit", input.CreditAccountExternalID)
	if err != nil {
		return models.TransactionView{}, err
	}

	tx, err := c.TxRepo.Save(ctx, models.Transaction{
		ExternalID:      uuid.New(),
		DebitAccountID:  debit,
		CreditAccountID: credit,
		TransferTypeID:  tt.ID,
		StatusID:        pending.ID,
		Value:           value,
	})
	if err != nil {
		return models.TransactionView{}, errors.InternalErr("save transaction", err)
	}
	metrics.TransactionsCreated.Inc()

	logger := c.Logger.With(zap.String("transaction_external_id", tx.ExternalID.String()))
	logger.Info("transaction created", zap.String("value", tx.Value.String()), zap.Int("transfer_type_id", tt.ID))

	if err = c.TxCache.Save(ctx, tx, pending.Code); err != nil {
		logger.Error("cannot cache created transaction", zap.Error(err))
	}

	event := c.createdEvent(tx, pending.Code, meta)
	if err = c.Publisher.Publish(ctx, c.Events.Topic, tx.ExternalID.String(), event); err != nil {
		logger.Error("created event not published, transaction left PENDING", zap.Error(err))
		return models.TransactionView{}, errors.InternalErr("publish transaction created event", err)
	}
	logger.Debug("created event published", zap.String("event_id", event.Metadata.EventID))

	return models.NewTransactionView(tx, tt, pending), nil
}

func (c *Creator) createdEvent(tx models.Transaction, status string, meta RequestMetadata) models.TransactionCreatedEvent {
	var correlationID *string
	if meta.RequestID != "" {
		id := meta.RequestID
		correlationID = &id
	}
	return models.TransactionCreatedEvent{
		Metadata: models.NewEventMetadata(models.EventTypeTransactionCreated, c.Events.Source, c.Events.SchemaVersion, correlationID, c.Now()),
		Payload: models.TransactionCreatedPayload{
			TransactionExternalID:   tx.ExternalID.String(),
			AccountExternalIDDebit:  tx.DebitAccountID.String(),
			AccountExternalIDCredit: tx.CreditAccountID.String(),
			TransferTypeID:          tx.TransferTypeID,
			Value:                   tx.Value.String(),
			Status:                  status,
			CreatedAt:               helpers.FormatTimestamp(tx.CreatedAt),
		},
	}
}

func parseValue(raw string) (models.Amount, error) {
	if strings.TrimSpace(raw) == "" {
		return models.Amount{}, errors.EmptyParamErr("value")
	}
	value, err := models.ParseAmount(strings.TrimSpace(raw))
	if errors.Is(err, models.ErrAmountOutOfRange) {
		return models.Amount{}, errors.ValidationErr(errors.CodeInvalidFormat, "value",
			fmt.Sprintf("value must have at most %d integer digits and %d decimal places", models.MaxAmountIntegerDigits, models.MaxAmountScale))
	}
	if err != nil {
		return models.Amount{}, errors.ValidationErr(errors.CodeInvalidFormat, "value", "value must be a decimal number")
	}
	if value.LessThan(decimal.Zero) {
		return models.Amount{}, errors.ValidationErr(errors.CodeAmountBelowMinimum, "value", "value must be greater than or equal to 0")
	}
	return value, nil
}

func parseAccountID(field, raw string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, errors.EmptyParamErr(field)
	}
	// uuid.Parse also takes the urn, braced and undashed forms
	if len(raw) != 36 {
		return uuid.Nil, errors.ValidationErr(errors.CodeInvalidFormat, field, "invalid UUID format")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.ValidationErr(errors.CodeInvalidFormat, field, "invalid UUID format")
	}
	return id, nil
}
