package models

import (
	// Go Internal Packages
	"time"

	// External Packages
	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Transaction is the system-of-record view of a transfer. Only StatusID
// changes after creation.
type Transaction struct {
	ExternalID      uuid.UUID `json:"transaction_external_id"`
	DebitAccountID  uuid.UUID `json:"account_external_id_debit"`
	CreditAccountID uuid.UUID `json:"account_external_id_credit"`
	TransferTypeID  int       `json:"transfer_type_id"`
	StatusID        int       `json:"transaction_status_id"`
	Value           Amount    `json:"value"`
	CreatedAt       time.Time `json:"created_at"`
}

type TransactionStatus struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type TransferType struct {
	ID   int    `json:"id" koanf:"id"`
	Code string `json:"code" koanf:"code"`
	Name string `json:"name" koanf:"name"`
}

// TransactionView is the read projection with its reference data embedded.
type TransactionView struct {
	ExternalID      uuid.UUID         `json:"transaction_external_id"`
	DebitAccountID  uuid.UUID         `json:"account_external_id_debit"`
	CreditAccountID uuid.UUID         `json:"account_external_id_credit"`
	TransferType    TransferType      `json:"transfer_type"`
	Status          TransactionStatus `json:"transaction_status"`
	Value           Amount            `json:"value"`
	CreatedAt       time.Time         `json:"created_at"`
}

func NewTransactionView(tx Transaction, tt TransferType, status TransactionStatus) TransactionView {
	return TransactionView{
		ExternalID:      tx.ExternalID,
		DebitAccountID:  tx.DebitAccountID,
		CreditAccountID: tx.CreditAccountID,
		TransferType:    tt,
		Status:          status,
		Value:           tx.Value,
		CreatedAt:       tx.CreatedAt,
	}
}

// DefaultStatuses is the status catalog every store is seeded with.
var DefaultStatuses = []TransactionStatus{
	{ID: 1, Code: StatusPending, Name: "Pending"},
	{ID: 2, Code: StatusApproved, Name: "Approved"},
	{ID: 3, Code: StatusRejected, Name: "Rejected"},
}
