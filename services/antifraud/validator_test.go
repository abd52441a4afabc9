package antifraud

import (
	// Go Internal Packages
	"context"
	"testing"
	"time"

	// Local Packages
	errors "tx-guard/errors"
	models "tx-guard/models"
	rules "tx-guard/services/rules"

	// External Packages
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturePublisher struct {
	topic string
	key   string
	event models.TransactionStatusUpdatedEvent
	calls int
	err   error
}

func (p *capturePublisher) Publish(_ context.Context, topic, key string, value any) error {
	p.calls++
	if p.err != nil {
		return p.err
	}
	p.topic, p.key = topic, key
	p.event = value.(models.TransactionStatusUpdatedEvent)
	return nil
}

func newValidator(publisher EventPublisher) *Validator {
	v := NewValidator(zap.NewNop(), rules.NewDefaultEngine(decimal.NewFromInt(1000)), publisher, Config{
		Topic:         "transaction-status-updated",
		Source:        "ms-anti-fraud",
		SchemaVersion: "1.0.0",
	})
	v.Now = func() time.Time { return time.Date(2024, 5, 1, 10, 30, 1, 500_000_000, time.UTC) }
	return v
}

func createdEvent(value string, correlationID *string) models.TransactionCreatedEvent {
	return models.TransactionCreatedEvent{
		Metadata: models.NewEventMetadata(models.EventTypeTransactionCreated, "ms-transaction", "1.0.0", correlationID, time.Now()),
		Payload: models.TransactionCreatedPayload{
			TransactionExternalID:   uuid.NewString(),
			AccountExternalIDDebit:  uuid.NewString(),
			AccountExternalIDCredit: uuid.NewString(),
			TransferTypeID:          1,
			Value:                   value,
			Status:                  models.StatusPending,
		},
	}
}

func TestVerdicts(t *testing.T) {
	cases := []struct {
		value    string
		status   string
		ruleCode *string
	}{
		{"500", models.StatusApproved, nil},
		{"1000", models.StatusApproved, nil},
		{"1000.00", models.StatusApproved, nil},
		{"1000.01", models.StatusRejected, ptr(rules.RuleMaxAmountExceeded)},
		{"1500.00", models.StatusRejected, ptr(rules.RuleMaxAmountExceeded)},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			publisher := &capturePublisher{}
			in := createdEvent(tc.value, nil)

			require.NoError(t, newValidator(publisher).Validate(context.Background(), in))

			out := publisher.event
			assert.Equal(t, "transaction-status-updated", publisher.topic)
			assert.Equal(t, in.Payload.TransactionExternalID, publisher.key)
			assert.Equal(t, models.StatusPending, out.Payload.PreviousStatus)
			assert.Equal(t, tc.status, out.Payload.NewStatus)
			assert.Equal(t, tc.value, out.Payload.Value)
			assert.Equal(t, tc.status == models.StatusApproved, out.Payload.ValidationResult.IsValid)
			assert.Equal(t, tc.ruleCode, out.Payload.ValidationResult.RuleCode)
		})
	}
}

func TestEnvelopeIsFreshAndCorrelated(t *testing.T) {
	publisher := &capturePublisher{}
	in := createdEvent("10", ptr("req-7"))

	require.NoError(t, newValidator(publisher).Validate(context.Background(), in))

	meta := publisher.event.Metadata
	assert.NotEqual(t, in.Metadata.EventID, meta.EventID)
	assert.Equal(t, models.EventTypeTransactionStatusUpdated, meta.EventType)
	assert.Equal(t, "ms-anti-fraud", meta.Source)
	assert.Equal(t, "2024-05-01T10:30:01.500Z", meta.EventTimestamp)
	assert.Equal(t, meta.EventTimestamp, publisher.event.Payload.ProcessedAt)
	require.NotNil(t, meta.CorrelationID)
	assert.Equal(t, "req-7", *meta.CorrelationID)
}

func TestInvalidAmountIsReturned(t *testing.T) {
	publisher := &capturePublisher{}

	for _, value := range []string{"one thousand", "1e-50000000", "1e50000000"} {
		err := newValidator(publisher).Validate(context.Background(), createdEvent(value, nil))

		require.Error(t, err, value)
		assert.Equal(t, errors.Invalid, errors.KindOf(err), value)
	}
	assert.Equal(t, 0, publisher.calls)
}

func TestPublishFailureIsReturned(t *testing.T) {
	publisher := &capturePublisher{err: errors.New("leader not available")}

	err := newValidator(publisher).Validate(context.Background(), createdEvent("10", nil))

	require.Error(t, err)
	assert.Equal(t, errors.Internal, errors.KindOf(err))
}

func ptr(s string) *string {
	return &s
}
