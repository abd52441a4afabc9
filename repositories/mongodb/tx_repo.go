package mongodb

import (
	// Go Internal Packages
	"context"
	"errors"
	"fmt"

	// Local Packages
	models "tx-guard/models"

	// External Packages
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type TxRepository struct {
	Client     *mongo.Client
	Database   string
	Collection string
}

func NewTxRepository(client *mongo.Client, database string) *TxRepository {
	return &TxRepository{Client: client, Database: database, Collection: "transactions"}
}

func (r *TxRepository) collection() *mongo.Collection {
	return r.Client.Database(r.Database).Collection(r.Collection)
}

// Save inserts a new transaction keyed by its external id
func (r *TxRepository) Save(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now()
	}
	doc, err := tx.ToMongo()
	if err != nil {
		return models.Transaction{}, err
	}
	if _, err = r.collection().InsertOne(ctx, doc); err != nil {
		return models.Transaction{}, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return tx, nil
}

// FindByExternalID reads a single transaction, found is false when absent
func (r *TxRepository) FindByExternalID(ctx context.Context, externalID uuid.UUID) (models.Transaction, bool, error) {
	var doc models.MongoTransaction
	err := r.collection().FindOne(ctx, bson.M{"_id": externalID.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Transaction{}, false, nil
	}
	if err != nil {
		return models.Transaction{}, false, fmt.Errorf("failed to find transaction: %w", err)
	}
	tx, err := doc.Transform()
	if err != nil {
		return models.Transaction{}, false, err
	}
	return tx, true, nil
}

// UpdateStatus sets the status of a transaction whose current status is one
// of fromStatusIDs and returns the number of matched documents
func (r *TxRepository) UpdateStatus(ctx context.Context, externalID uuid.UUID, statusID int, fromStatusIDs []int) (int64, error) {
	filter := bson.M{
		"_id":                   externalID.String(),
		"transaction_status_id": bson.M{"$in": fromStatusIDs},
	}
	update := bson.M{"$set": bson.M{"transaction_status_id": statusID}}

	res, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to update transaction status: %w", err)
	}
	return res.MatchedCount, nil
}
