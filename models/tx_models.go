package models

import (
	// Go Internal Packages
	"fmt"
	"time"

	// External Packages
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoTransaction is the document stored in the transactions collection.
// Value is a Decimal128 so the scale survives the round trip.
type MongoTransaction struct {
	ExternalID      string               `bson:"_id"`
	DebitAccountID  string               `bson:"account_external_id_debit"`
	CreditAccountID string               `bson:"account_external_id_credit"`
	TransferTypeID  int                  `bson:"transfer_type_id"`
	StatusID        int                  `bson:"transaction_status_id"`
	Value           primitive.Decimal128 `bson:"value"`
	CreatedAt       time.Time            `bson:"created_at"`
}

// MongoCatalogEntry is the document shape shared by the status and transfer
// type collections.
type MongoCatalogEntry struct {
	ID   int    `bson:"_id"`
	Code string `bson:"code"`
	Name string `bson:"name"`
}

func (t *Transaction) ToMongo() (MongoTransaction, error) {
	value, err := primitive.ParseDecimal128(t.Value.String())
	if err != nil {
		return MongoTransaction{}, fmt.Errorf("encode value %s: %w", t.Value, err)
	}
	return MongoTransaction{
		ExternalID:      t.ExternalID.String(),
		DebitAccountID:  t.DebitAccountID.String(),
		CreditAccountID: t.CreditAccountID.String(),
		TransferTypeID:  t.TransferTypeID,
		StatusID:        t.StatusID,
		Value:           value,
		CreatedAt:       t.CreatedAt,
	}, nil
}

func (m *MongoTransaction) Transform() (Transaction, error) {
	externalID, err := uuid.Parse(m.ExternalID)
	if err != nil {
		return Transaction{}, fmt.Errorf("decode _id: %w", err)
	}
	debit, err := uuid.Parse(m.DebitAccountID)
	if err != nil {
		return Transaction{}, fmt.Errorf("decode account_external_id_debit: %w", err)
	}
	credit, err := uuid.Parse(m.CreditAccountID)
	if err != nil {
		return Transaction{}, fmt.Errorf("decode account_external_id_credit: %w", err)
	}
	value, err := ParseAmount(m.Value.String())
	if err != nil {
		return Transaction{}, fmt.Errorf("decode value: %w", err)
	}
	return Transaction{
		ExternalID:      externalID,
		DebitAccountID:  debit,
		CreditAccountID: credit,
		TransferTypeID:  m.TransferTypeID,
		StatusID:        m.StatusID,
		Value:           value,
		CreatedAt:       m.CreatedAt.UTC(),
	}, nil
}
