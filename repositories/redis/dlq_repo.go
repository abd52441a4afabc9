package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"
	"time"

	// Local Packages
	models "tx-guard/models"

	// External Packages
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type deadLetter struct {
	models.Record
	Reason     string `json:"reason"`
	FailedAt   string `json:"failed_at"`
	Attempts   int    `json:"attempts"`
	ConsumerID string `json:"consumer"`
}

type DeadLetterQueue struct {
	client   *redis.Client
	logger   *zap.Logger
	listName string
	consumer string
}

func NewDeadLetterQueue(client *redis.Client, logger *zap.Logger, listName, consumer string) *DeadLetterQueue {
	return &DeadLetterQueue{client: client, logger: logger, listName: listName, consumer: consumer}
}

// Send appends the failed record to the dead letter list. Unlike a cache write
// this must succeed: the caller only commits the offset when it returns nil.
func (r *DeadLetterQueue) Send(ctx context.Context, record models.Record, attempts int, cause error) error {
	letter := deadLetter{
		Record:     record,
		Reason:     cause.Error(),
		FailedAt:   time.Now().UTC().Format(time.RFC3339Nano),
		Attempts:   attempts,
		ConsumerID: r.consumer,
	}
	jsonData, err := json.Marshal(letter)
	if err != nil {
		return fmt.Errorf("failed to marshal dead letter: %w", err)
	}

	if err = r.client.RPush(ctx, r.listName, jsonData).Err(); err != nil {
		return fmt.Errorf("failed to push dead letter to %s: %w", r.listName, err)
	}

	r.logger.Warn("record moved to dead letter list",
		zap.String("list", r.listName),
		zap.String("topic", record.Topic),
		zap.String("key", string(record.Key)),
		zap.Int64("offset", record.Offset),
		zap.Error(cause),
	)
	return nil
}
