package transactions

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"strings"
	"testing"

	// Local Packages
	errors "tx-guard/errors"
	models "tx-guard/models"

	// External Packages
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() CreateTransactionInput {
	return CreateTransactionInput{
		DebitAccountExternalID:  uuid.NewString(),
		CreditAccountExternalID: uuid.NewString(),
		TransferTypeID:          1,
		Value:                   "1234567.89",
	}
}

func TestCreatePersistsCachesAndPublishes(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, models.DefaultStatuses)
	input := validInput()

	view, err := e.Creator.Create(ctx, input, RequestMetadata{RequestID: "req-42"})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, view.Status.Code)
	assert.Equal(t, "IMMEDIATE", view.TransferType.Code)
	assert.Equal(t, "1234567.89", view.Value.String())
	assert.False(t, view.CreatedAt.IsZero())

	stored, found, err := e.TxRepo.FindByExternalID(ctx, view.ExternalID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, stored.StatusID)

	ttl, ok := e.Store.TTL("transaction:" + view.ExternalID.String())
	require.True(t, ok)
	assert.Equal(t, testTTL.Pending, ttl)

	require.Len(t, e.Publisher.Messages, 1)
	msg := e.Publisher.Messages[0]
	assert.Equal(t, "transaction-created", msg.Topic)
	assert.Equal(t, view.ExternalID.String(), msg.Key)

	var event models.TransactionCreatedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, models.EventTypeTransactionCreated, event.Metadata.EventType)
	assert.Equal(t, "ms-transaction", event.Metadata.Source)
	assert.Equal(t, "1.0.0", event.Metadata.SchemaVersion)
	assert.Equal(t, "2024-05-01T10:30:00.000Z", event.Metadata.EventTimestamp)
	require.NotNil(t, event.Metadata.CorrelationID)
	assert.Equal(t, "req-42", *event.Metadata.CorrelationID)
	assert.Equal(t, "1234567.89", event.Payload.Value)
	assert.Equal(t, models.StatusPending, event.Payload.Status)
	assert.Equal(t, input.DebitAccountExternalID, event.Payload.AccountExternalIDDebit)
	assert.Equal(t, input.CreditAccountExternalID, event.Payload.AccountExternalIDCredit)
}

func TestCreateWithoutRequestIDHasNoCorrelation(t *testing.T) {
	e := newEnv(t, models.DefaultStatuses)

	_, err := e.Creator.Create(context.Background(), validInput(), RequestMetadata{})
	require.NoError(t, err)

	var event models.TransactionCreatedEvent
	require.NoError(t, json.Unmarshal(e.Publisher.Messages[0].Value, &event))
	assert.Nil(t, event.Metadata.CorrelationID)
}

func TestCreateZeroValueIsAllowed(t *testing.T) {
	e := newEnv(t, models.DefaultStatuses)
	input := validInput()
	input.Value = "0"

	_, err := e.Creator.Create(context.Background(), input, RequestMetadata{})
	assert.NoError(t, err)
}

func TestCreateRejectsInputBeforeAnySideEffect(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*CreateTransactionInput)
		kind  errors.Kind
		code  errors.Code
		field string
	}{
		{"negative value", func(in *CreateTransactionInput) { in.Value = "-5" }, errors.Invalid, errors.CodeAmountBelowMinimum, "value"},
		{"blank value", func(in *CreateTransactionInput) { in.Value = "  " }, errors.Invalid, errors.CodeValidation, "value"},
		{"garbage value", func(in *CreateTransactionInput) { in.Value = "12,50" }, errors.Invalid, errors.CodeInvalidFormat, "value"},
		{"unknown transfer type", func(in *CreateTransactionInput) { in.TransferTypeID = 99 }, errors.NotFound, errors.CodeTransferTypeNotFound, ""},
		{"missing debit account", func(in *CreateTransactionInput) { in.DebitAccountExternalID = "" }, errors.Invalid, errors.CodeValidation, "accountExternalIdDebit"},
		{"malformed credit account", func(in *CreateTransactionInput) { in.CreditAccountExternalID = "not-a-uuid" }, errors.Invalid, errors.CodeInvalidFormat, "accountExternalIdCredit"},
		{"tiny exponent value", func(in *CreateTransactionInput) { in.Value = "1e-50000000" }, errors.Invalid, errors.CodeInvalidFormat, "value"},
		{"huge exponent value", func(in *CreateTransactionInput) { in.Value = "1e50000000" }, errors.Invalid, errors.CodeInvalidFormat, "value"},
		{"too many decimal places", func(in *CreateTransactionInput) { in.Value = "0.1234567890123456789" }, errors.Invalid, errors.CodeInvalidFormat, "value"},
		{"too many integer digits", func(in *CreateTransactionInput) { in.Value = "12345678901234567" }, errors.Invalid, errors.CodeInvalidFormat, "value"},
		{"overlong value text", func(in *CreateTransactionInput) { in.Value = "1" + strings.Repeat("0", 80) + "e-80" }, errors.Invalid, errors.CodeInvalidFormat, "value"},
		{"braced debit account", func(in *CreateTransactionInput) { in.DebitAccountExternalID = "{" + in.DebitAccountExternalID + "}" }, errors.Invalid, errors.CodeInvalidFormat, "accountExternalIdDebit"},
		{"urn debit account", func(in *CreateTransactionInput) { in.DebitAccountExternalID = "urn:uuid:" + in.DebitAccountExternalID }, errors.Invalid, errors.CodeInvalidFormat, "accountExternalIdDebit"},
		{"undashed credit account", func(in *CreateTransactionInput) {
			in.CreditAccountExternalID = strings.ReplaceAll(in.CreditAccountExternalID, "-", "")
		}, errors.Invalid, errors.CodeInvalidFormat, "accountExternalIdCredit"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t, models.DefaultStatuses)
			input := validInput()
			tc.edit(&input)

			_, err := e.Creator.Create(context.Background(), input, RequestMetadata{})

			require.Error(t, err)
			assert.Equal(t, tc.kind, errors.KindOf(err))
			assert.Equal(t, tc.code, errors.CodeOf(err))
			assert.Equal(t, tc.field, errors.FieldOf(err))
			assert.Equal(t, 0, e.TxRepo.Len())
			assert.Empty(t, e.Publisher.Messages)
		})
	}
}

func TestCreateAcceptsValueAtBounds(t *testing.T) {
	for _, value := range []string{"9999999999999999.999999999999999999", "0.000000000000000001", "1e15"} {
		t.Run(value, func(t *testing.T) {
			e := newEnv(t, models.DefaultStatuses)
			input := validInput()
			input.Value = value

			view, err := e.Creator.Create(context.Background(), input, RequestMetadata{})

			require.NoError(t, err)
			assert.True(t, view.Value.Equal(decimal.RequireFromString(value)))
			assert.Equal(t, 1, e.TxRepo.Len())
		})
	}
}

func TestNegativeValueTouchesNothing(t *testing.T) {
	e := newEnv(t, models.DefaultStatuses)
	input := validInput()
	input.Value = "-5"

	_, err := e.Creator.Create(context.Background(), input, RequestMetadata{})

	assert.Equal(t, errors.CodeAmountBelowMinimum, errors.CodeOf(err))
	assert.Equal(t, 0, e.Store.Gets)
	assert.Equal(t, 0, e.Store.Sets)
	assert.Equal(t, 0, e.TxRepo.Len())
	assert.Empty(t, e.Publisher.Messages)
}

func TestCreateWithoutPendingStatusIsConfigurationError(t *testing.T) {
	e := newEnv(t, models.DefaultStatuses[1:])

	_, err := e.Creator.Create(context.Background(), validInput(), RequestMetadata{})

	require.Error(t, err)
	assert.Equal(t, errors.Business, errors.KindOf(err))
	assert.Equal(t, errors.CodeConfiguration, errors.CodeOf(err))
	assert.Equal(t, 0, e.TxRepo.Len())
}

func TestCreatePublishFailureIsSurfaced(t *testing.T) {
	e := newEnv(t, models.DefaultStatuses)
	e.Publisher.Err = errors.New("broker unavailable")

	_, err := e.Creator.Create(context.Background(), validInput(), RequestMetadata{})

	require.Error(t, err)
	assert.Equal(t, errors.Internal, errors.KindOf(err))
	// the row is already written and stays PENDING
	assert.Equal(t, 1, e.TxRepo.Len())
}

func TestCreateSurvivesCacheOutage(t *testing.T) {
	e := newEnv(t, models.DefaultStatuses)
	e.Store.GetErr = errors.New("i/o timeout")
	e.Store.SetErr = errors.New("connection refused")

	view, err := e.Creator.Create(context.Background(), validInput(), RequestMetadata{})

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, view.Status.Code)
	assert.Len(t, e.Publisher.Messages, 1)
}
