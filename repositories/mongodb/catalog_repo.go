package mongodb

import (
	// Go Internal Packages
	"context"
	"errors"
	"fmt"

	// Local Packages
	models "tx-guard/models"

	// External Packages
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	statusCollection       = "transaction_statuses"
	transferTypeCollection = "transfer_types"
)

type StatusRepository struct {
	Client   *mongo.Client
	Database string
}

func NewStatusRepository(client *mongo.Client, database string) *StatusRepository {
	return &StatusRepository{Client: client, Database: database}
}

func (r *StatusRepository) FindByCode(ctx context.Context, code string) (models.TransactionStatus, bool, error) {
	entry, found, err := findOne(ctx, r.Client.Database(r.Database).Collection(statusCollection), bson.M{"code": code})
	return models.TransactionStatus(entry), found, err
}

func (r *StatusRepository) FindByID(ctx context.Context, id int) (models.TransactionStatus, bool, error) {
	entry, found, err := findOne(ctx, r.Client.Database(r.Database).Collection(statusCollection), bson.M{"_id": id})
	return models.TransactionStatus(entry), found, err
}

func (r *StatusRepository) FindAll(ctx context.Context) ([]models.TransactionStatus, error) {
	entries, err := findAll(ctx, r.Client.Database(r.Database).Collection(statusCollection))
	if err != nil {
		return nil, err
	}
	statuses := make([]models.TransactionStatus, len(entries))
	for i, e := range entries {
		statuses[i] = models.TransactionStatus(e)
	}
	return statuses, nil
}

type TransferTypeRepository struct {
	Client   *mongo.Client
	Database string
}

func NewTransferTypeRepository(client *mongo.Client, database string) *TransferTypeRepository {
	return &TransferTypeRepository{Client: client, Database: database}
}

func (r *TransferTypeRepository) FindByID(ctx context.Context, id int) (models.TransferType, bool, error) {
	entry, found, err := findOne(ctx, r.Client.Database(r.Database).Collection(transferTypeCollection), bson.M{"_id": id})
	return models.TransferType(entry), found, err
}

func (r *TransferTypeRepository) FindAll(ctx context.Context) ([]models.TransferType, error) {
	entries, err := findAll(ctx, r.Client.Database(r.Database).Collection(transferTypeCollection))
	if err != nil {
		return nil, err
	}
	types := make([]models.TransferType, len(entries))
	for i, e := range entries {
		types[i] = models.TransferType(e)
	}
	return types, nil
}

// SeedCatalog upserts the reference data and the unique code indexes.
func SeedCatalog(ctx context.Context, client *mongo.Client, database string, statuses []models.TransactionStatus, types []models.TransferType) error {
	db := client.Database(database)
	unique := mongo.IndexModel{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)}
	upsert := options.Replace().SetUpsert(true)

	for _, name := range []string{statusCollection, transferTypeCollection} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, unique); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", name, err)
		}
	}
	for _, s := range statuses {
		doc := models.MongoCatalogEntry(s)
		if _, err := db.Collection(statusCollection).ReplaceOne(ctx, bson.M{"_id": s.ID}, doc, upsert); err != nil {
			return fmt.Errorf("failed to seed status %s: %w", s.Code, err)
		}
	}
	for _, tt := range types {
		doc := models.MongoCatalogEntry(tt)
		if _, err := db.Collection(transferTypeCollection).ReplaceOne(ctx, bson.M{"_id": tt.ID}, doc, upsert); err != nil {
			return fmt.Errorf("failed to seed transfer type %s: %w", tt.Code, err)
		}
	}
	return nil
}

func findOne(ctx context.Context, coll *mongo.Collection, filter bson.M) (models.MongoCatalogEntry, bool, error) {
	var entry models.MongoCatalogEntry
	err := coll.FindOne(ctx, filter).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entry, false, nil
	}
	if err != nil {
		return entry, false, fmt.Errorf("failed to read %s: %w", coll.Name(), err)
	}
	return entry, true, nil
}

func findAll(ctx context.Context, coll *mongo.Collection) ([]models.MongoCatalogEntry, error) {
	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", coll.Name(), err)
	}
	var entries []models.MongoCatalogEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return entries, nil
}
