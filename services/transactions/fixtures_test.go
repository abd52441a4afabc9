package transactions

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	// Local Packages
	models "tx-guard/models"
	memory "tx-guard/repositories/memory"
	cache "tx-guard/services/cache"
	cachetest "tx-guard/services/cache/cachetest"

	// External Packages
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testTTL = cache.TransactionTTL{Pending: time.Minute, Approved: 24 * time.Hour, Rejected: 12 * time.Hour}

var testTransferTypes = []models.TransferType{
	{ID: 1, Code: "IMMEDIATE", Name: "Immediate transfer"},
	{ID: 2, Code: "SCHEDULED", Name: "Scheduled transfer"},
}

type published struct {
	Topic string
	Key   string
	Value []byte
}

type capturePublisher struct {
	mu       sync.Mutex
	Messages []published
	Err      error
}

func (p *capturePublisher) Publish(_ context.Context, topic, key string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	p.Messages = append(p.Messages, published{Topic: topic, Key: key, Value: data})
	return nil
}

type env struct {
	Store     *cachetest.Store
	TxRepo    *memory.TxRepository
	Publisher *capturePublisher
	Queries   *Queries
	Creator   *Creator
}

func newEnv(t *testing.T, statuses []models.TransactionStatus) *env {
	t.Helper()
	logger := zap.NewNop()
	store := cachetest.NewStore()
	txRepo := memory.NewTxRepository()
	publisher := &capturePublisher{}

	queries := NewQueries(logger, txRepo,
		memory.NewStatusRepository(statuses),
		memory.NewTransferTypeRepository(testTransferTypes),
		cache.NewTransactionCache(store, "transaction:", testTTL, logger),
		cache.NewTransferTypeCache(store, "transfer-type:", time.Hour, logger),
	)
	creator := NewCreator(logger, queries, publisher, EventsConfig{
		Topic:         "transaction-created",
		Source:        "ms-transaction",
		SchemaVersion: "1.0.0",
	})
	creator.Now = func() time.Time { return time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC) }

	require.NotNil(t, creator)
	return &env{Store: store, TxRepo: txRepo, Publisher: publisher, Queries: queries, Creator: creator}
}
