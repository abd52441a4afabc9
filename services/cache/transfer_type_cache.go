package cache

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"time"

	// Local Packages
	helpers "tx-guard/helpers"
	models "tx-guard/models"

	// External Packages
	"go.uber.org/zap"
)

const allKeySuffix = "all"

// TransferTypeCache caches the transfer type catalog per id and as a whole.
// The collection counts as cached only when non-empty, so an empty catalog
// always goes back to the store.
type TransferTypeCache struct {
	store  Store
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

func NewTransferTypeCache(store Store, prefix string, ttl time.Duration, logger *zap.Logger) *TransferTypeCache {
	return &TransferTypeCache{store: store, prefix: prefix, ttl: ttl, logger: logger}
}

func (c *TransferTypeCache) Get(ctx context.Context, id int) (models.TransferType, bool) {
	var tt models.TransferType
	key := helpers.BuildIntKey(c.prefix, id)
	data, ok := get(ctx, c.store, c.logger, "transfer_type", key)
	if !ok {
		return tt, false
	}
	if err := json.Unmarshal(data, &tt); err != nil {
		c.logger.Warn("corrupt cache entry, treating as miss", zap.String("key", key), zap.Error(err))
		return tt, false
	}
	return tt, true
}

func (c *TransferTypeCache) Save(ctx context.Context, tt models.TransferType) {
	data, err := json.Marshal(tt)
	if err != nil {
		c.logger.Warn("cannot encode transfer type", zap.Int("id", tt.ID), zap.Error(err))
		return
	}
	set(ctx, c.store, c.logger, helpers.BuildIntKey(c.prefix, tt.ID), data, c.ttl)
}

// SaveAll caches every transfer type individually and marks the collection
// as available.
func (c *TransferTypeCache) SaveAll(ctx context.Context, tts []models.TransferType) {
	for _, tt := range tts {
		c.Save(ctx, tt)
	}
	if len(tts) == 0 {
		return
	}
	data, err := json.Marshal(tts)
	if err != nil {
		c.logger.Warn("cannot encode transfer types", zap.Error(err))
		return
	}
	set(ctx, c.store, c.logger, helpers.BuildKey(c.prefix, allKeySuffix), data, c.ttl)
	c.logger.Info("cached transfer types", zap.Int("count", len(tts)))
}

func (c *TransferTypeCache) All(ctx context.Context) ([]models.TransferType, bool) {
	key := helpers.BuildKey(c.prefix, allKeySuffix)
	data, ok := get(ctx, c.store, c.logger, "transfer_types", key)
	if !ok {
		return nil, false
	}
	var tts []models.TransferType
	if err := json.Unmarshal(data, &tts); err != nil {
		c.logger.Warn("corrupt cache entry, treating as miss", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if len(tts) == 0 {
		return nil, false
	}
	return tts, true
}
