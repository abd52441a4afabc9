package models

import (
	// Go Internal Packages
	"time"

	// Local Packages
	helpers "tx-guard/helpers"

	// External Packages
	"github.com/google/uuid"
)

const (
	EventTypeTransactionCreated       = "TRANSACTION_CREATED"
	EventTypeTransactionStatusUpdated = "TRANSACTION_STATUS_UPDATED"
)

// EventMetadata is written once when an event is built. EventID is never
// reused, not even when the same event is sent again.
type EventMetadata struct {
	EventID        string  `json:"eventId"`
	EventType      string  `json:"eventType"`
	EventTimestamp string  `json:"eventTimestamp"`
	Source         string  `json:"source"`
	SchemaVersion  string  `json:"schemaVersion"`
	CorrelationID  *string `json:"correlationId"`
}

func NewEventMetadata(eventType, source, schemaVersion string, correlationID *string, now time.Time) EventMetadata {
	return EventMetadata{
		EventID:        uuid.NewString(),
		EventType:      eventType,
		EventTimestamp: helpers.FormatTimestamp(now),
		Source:         source,
		SchemaVersion:  schemaVersion,
		CorrelationID:  correlationID,
	}
}

type Envelope[T any] struct {
	Metadata EventMetadata `json:"metadata"`
	Payload  T             `json:"payload"`
}

type TransactionCreatedPayload struct {
	TransactionExternalID   string `json:"transactionExternalId"`
	AccountExternalIDDebit  string `json:"accountExternalIdDebit"`
	AccountExternalIDCredit string `json:"accountExternalIdCredit"`
	TransferTypeID          int    `json:"transferTypeId"`
	Value                   string `json:"value"`
	Status                  string `json:"status"`
	CreatedAt               string `json:"createdAt"`
}

type ValidationResult struct {
	IsValid  bool    `json:"isValid"`
	RuleCode *string `json:"ruleCode"`
}

type TransactionStatusUpdatedPayload struct {
	TransactionExternalID string           `json:"transactionExternalId"`
	PreviousStatus        string           `json:"previousStatus"`
	NewStatus             string           `json:"newStatus"`
	Value                 string           `json:"value"`
	ValidationResult      ValidationResult `json:"validationResult"`
	ProcessedAt           string           `json:"processedAt"`
}

type (
	TransactionCreatedEvent       = Envelope[TransactionCreatedPayload]
	TransactionStatusUpdatedEvent = Envelope[TransactionStatusUpdatedPayload]
)
