package kafka

import (
	// Go Internal Packages
	"context"
	"testing"

	// Local Packages
	apperrors "tx-guard/errors"
	models "tx-guard/models"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

type flakyProcessor struct {
	failures int
	err      error
	calls    int
}

func (p *flakyProcessor) ProcessRecord(_ context.Context, _ models.Record) error {
	p.calls++
	if p.calls <= p.failures {
		return p.err
	}
	return nil
}

type letter struct {
	record   models.Record
	attempts int
	cause    error
}

type fakeDLQ struct {
	letters []letter
	err     error
}

func (q *fakeDLQ) Send(_ context.Context, record models.Record, attempts int, cause error) error {
	if q.err != nil {
		return q.err
	}
	q.letters = append(q.letters, letter{record, attempts, cause})
	return nil
}

func newTestConsumer(processor Processor, dlq DeadLetterQueue, maxAttempts int) *Consumer {
	return &Consumer{
		Config:    &models.ConsumerConfig{Name: "test", MaxAttempts: maxAttempts},
		Processor: processor,
		DLQ:       dlq,
		Logger:    zap.NewNop(),
	}
}

var record = models.Record{Topic: "transaction-created", Key: []byte("k"), Value: []byte("{}"), Partition: 2, Offset: 41}

func TestDeliverSucceedsFirstTime(t *testing.T) {
	processor := &flakyProcessor{}
	dlq := &fakeDLQ{}

	require.NoError(t, newTestConsumer(processor, dlq, 3).deliver(context.Background(), record))

	assert.Equal(t, 1, processor.calls)
	assert.Empty(t, dlq.letters)
}

func TestDeliverRedeliversTransientFailures(t *testing.T) {
	processor := &flakyProcessor{failures: 2, err: apperrors.InternalErr("store down", nil)}
	dlq := &fakeDLQ{}

	require.NoError(t, newTestConsumer(processor, dlq, 3).deliver(context.Background(), record))

	assert.Equal(t, 3, processor.calls)
	assert.Empty(t, dlq.letters)
}

func TestDeliverDeadLettersAfterMaxAttempts(t *testing.T) {
	cause := apperrors.InternalErr("store down", nil)
	processor := &flakyProcessor{failures: 10, err: cause}
	dlq := &fakeDLQ{}

	require.NoError(t, newTestConsumer(processor, dlq, 3).deliver(context.Background(), record))

	assert.Equal(t, 3, processor.calls)
	require.Len(t, dlq.letters, 1)
	assert.Equal(t, record, dlq.letters[0].record)
	assert.Equal(t, 3, dlq.letters[0].attempts)
	assert.ErrorIs(t, dlq.letters[0].cause, cause)
}

func TestDeliverDoesNotRetryMalformedInput(t *testing.T) {
	for _, err := range []error{
		apperrors.E(apperrors.Invalid, "malformed event", nil),
		apperrors.IllegalStateErr("transaction status not configured: APPROVED"),
	} {
		processor := &flakyProcessor{failures: 10, err: err}
		dlq := &fakeDLQ{}

		require.NoError(t, newTestConsumer(processor, dlq, 5).deliver(context.Background(), record))

		assert.Equal(t, 1, processor.calls)
		require.Len(t, dlq.letters, 1)
		assert.Equal(t, 1, dlq.letters[0].attempts)
	}
}

func TestDeliverFailsWhenDeadLetterFails(t *testing.T) {
	processor := &flakyProcessor{failures: 10, err: apperrors.New("boom")}
	dlq := &fakeDLQ{err: apperrors.New("redis unavailable")}

	err := newTestConsumer(processor, dlq, 2).deliver(context.Background(), record)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction-created/2@41")
}

func TestDeliverAttemptsAtLeastOnce(t *testing.T) {
	processor := &flakyProcessor{}

	require.NoError(t, newTestConsumer(processor, &fakeDLQ{}, 0).deliver(context.Background(), record))

	assert.Equal(t, 1, processor.calls)
}

func TestToRecord(t *testing.T) {
	rec := &kgo.Record{Topic: "t", Key: []byte("k"), Value: []byte("v"), Partition: 4, Offset: 9}

	assert.Equal(t, models.Record{Topic: "t", Key: []byte("k"), Value: []byte("v"), Partition: 4, Offset: 9}, toRecord(rec))
}
