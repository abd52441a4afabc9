package transactions

import (
	// Go Internal Packages
	"context"

	// Local Packages
	models "tx-guard/models"

	// External Packages
	"github.com/google/uuid"
)

type TxRepository interface {
	Save(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	FindByExternalID(ctx context.Context, externalID uuid.UUID) (models.Transaction, bool, error)
}

type StatusRepository interface {
	FindByCode(ctx context.Context, code string) (models.TransactionStatus, bool, error)
	FindByID(ctx context.Context, id int) (models.TransactionStatus, bool, error)
	FindAll(ctx context.Context) ([]models.TransactionStatus, error)
}

type TransferTypeRepository interface {
	FindByID(ctx context.Context, id int) (models.TransferType, bool, error)
	FindAll(ctx context.Context) ([]models.TransferType, error)
}

type TransactionCache interface {
	Get(ctx context.Context, externalID uuid.UUID) (models.Transaction, bool)
	Save(ctx context.Context, tx models.Transaction, statusCode string) error
}

type TransferTypeCache interface {
	Get(ctx context.Context, id int) (models.TransferType, bool)
	Save(ctx context.Context, tt models.TransferType)
	SaveAll(ctx context.Context, tts []models.TransferType)
	All(ctx context.Context) ([]models.TransferType, bool)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, value any) error
}
