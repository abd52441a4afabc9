package cache

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"
	"time"

	// Local Packages
	errors "tx-guard/errors"
	helpers "tx-guard/helpers"
	models "tx-guard/models"

	// External Packages
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionTTL holds one TTL per status. Terminal states usually live
// longer than PENDING.
type TransactionTTL struct {
	Pending  time.Duration
	Approved time.Duration
	Rejected time.Duration
}

// For returns the TTL for a status code. Unknown codes are an error, never a
// default.
func (t TransactionTTL) For(code string) (time.Duration, error) {
	switch code {
	case models.StatusPending:
		return t.Pending, nil
	case models.StatusApproved:
		return t.Approved, nil
	case models.StatusRejected:
		return t.Rejected, nil
	}
	return 0, errors.IllegalStateErr(fmt.Sprintf("no cache ttl for transaction status %q", code))
}

type transactionEntry struct {
	Transaction models.Transaction `json:"transaction"`
	StatusCode  string             `json:"status_code"`
}

type TransactionCache struct {
	store  Store
	prefix string
	ttl    TransactionTTL
	logger *zap.Logger
}

func NewTransactionCache(store Store, prefix string, ttl TransactionTTL, logger *zap.Logger) *TransactionCache {
	return &TransactionCache{store: store, prefix: prefix, ttl: ttl, logger: logger}
}

func (c *TransactionCache) key(externalID uuid.UUID) string {
	return helpers.BuildKey(c.prefix, externalID.String())
}

func (c *TransactionCache) Get(ctx context.Context, externalID uuid.UUID) (models.Transaction, bool) {
	entry, ok := c.entry(ctx, c.key(externalID))
	if !ok {
		return models.Transaction{}, false
	}
	return entry.Transaction, true
}

// Save caches tx with the TTL of statusCode.
func (c *TransactionCache) Save(ctx context.Context, tx models.Transaction, statusCode string) error {
	ttl, err := c.ttl.For(statusCode)
	if err != nil {
		return err
	}
	c.put(ctx, c.key(tx.ExternalID), transactionEntry{Transaction: tx, StatusCode: statusCode}, ttl)
	return nil
}

// UpdateStatus rewrites the cached status and refreshes the TTL for the new
// status. Absent entries are left alone; the next read repopulates them.
func (c *TransactionCache) UpdateStatus(ctx context.Context, externalID uuid.UUID, status models.TransactionStatus) error {
	ttl, err := c.ttl.For(status.Code)
	if err != nil {
		return err
	}

	key := c.key(externalID)
	entry, ok := c.entry(ctx, key)
	if !ok {
		c.logger.Info("transaction not cached, skipping status update", zap.String("key", key))
		return nil
	}

	entry.Transaction.StatusID = status.ID
	entry.StatusCode = status.Code
	c.put(ctx, key, entry, ttl)
	c.logger.Info("cached transaction status updated",
		zap.String("key", key), zap.String("status", status.Code), zap.Duration("ttl", ttl))
	return nil
}

func (c *TransactionCache) entry(ctx context.Context, key string) (transactionEntry, bool) {
	var entry transactionEntry
	data, ok := get(ctx, c.store, c.logger, "transaction", key)
	if !ok {
		return entry, false
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("corrupt cache entry, treating as miss", zap.String("key", key), zap.Error(err))
		return entry, false
	}
	return entry, true
}

func (c *TransactionCache) put(ctx context.Context, key string, entry transactionEntry, ttl time.Duration) {
	data, err := json.Marshal(entry)
	if err != nil {
		c.logger.Warn("cannot encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	set(ctx, c.store, c.logger, key, data, ttl)
}
