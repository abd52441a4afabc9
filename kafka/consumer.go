package kafka

import (
	// Go Internal Packages
	"context"
	"errors"
	"fmt"
	"sync"

	// Local Packages
	apperrors "tx-guard/errors"
	metrics "tx-guard/metrics"
	models "tx-guard/models"
	utils "tx-guard/utils"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

type Processor interface {
	ProcessRecord(ctx context.Context, record models.Record) error
}

type DeadLetterQueue interface {
	Send(ctx context.Context, record models.Record, attempts int, cause error) error
}

type topicPartition struct {
	topic     string
	partition int32
}

// partitionWorker processes the records of one partition in offset order.
type partitionWorker struct {
	topic     string
	partition int32
	records   chan kgo.FetchTopicPartition
	quit      chan struct{}
	done      chan struct{}
}

type Consumer struct {
	Client    *kgo.Client
	Config    *models.ConsumerConfig
	Processor Processor
	DLQ       DeadLetterQueue
	Logger    *zap.Logger

	ctx      context.Context
	workers  map[topicPartition]*partitionWorker
	failures chan error
}

// NewConsumer creates a group consumer that runs one goroutine per assigned
// partition. Offsets are marked once a record is processed or dead-lettered
// and committed in the background (PS: Must call Poll to start consuming).
func NewConsumer(conf *models.ConsumerConfig, processor Processor, dlq DeadLetterQueue, metrics *kprom.Metrics, logger *zap.Logger) (*Consumer, error) {
	c := &Consumer{
		Config:    conf,
		Processor: processor,
		DLQ:       dlq,
		Logger:    logger,
		ctx:       context.Background(),
		workers:   make(map[topicPartition]*partitionWorker),
		failures:  make(chan error, 1),
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(conf.Brokers...),
		kgo.ConsumerGroup(conf.Name),
		kgo.ConsumeTopics(conf.Topics...),
		kgo.WithHooks(metrics),
		kgo.OnPartitionsAssigned(c.assigned),
		kgo.OnPartitionsRevoked(c.revoked),
		kgo.OnPartitionsLost(c.lost),
		kgo.AutoCommitMarks(),
		kgo.BlockRebalanceOnPoll(), // assignment callbacks never run while records are being handed out
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	c.Client = client
	return c, nil
}

// Poll fetches records and hands every partition to its worker. It returns
// when ctx is canceled or a worker hits an error it cannot dead-letter; in
// the latter case the failing record is left uncommitted.
func (c *Consumer) Poll(ctx context.Context) error {
	defer c.Client.Close()
	c.ctx = ctx

	for {
		fetches := c.Client.PollRecords(ctx, c.Config.RecordsPerPoll)
		if fetches.IsClientClosed() {
			return errors.New("kafka client closed")
		}
		if errors.Is(fetches.Err0(), context.Canceled) {
			c.Logger.Warn("polling stopped: context canceled", zap.String("consumer", c.Config.Name))
			return nil
		}

		fetches.EachError(func(topic string, partition int32, err error) {
			c.Logger.Error("fetch error", zap.String("topic", topic), zap.Int32("partition", partition), zap.Error(err))
		})

		fetches.EachPartition(func(p kgo.FetchTopicPartition) {
			if len(p.Records) == 0 {
				return
			}
			w, ok := c.workers[topicPartition{p.Topic, p.Partition}]
			if !ok {
				return
			}
			select {
			case w.records <- p:
			case <-w.done:
			case <-ctx.Done():
			}
		})

		select {
		case err := <-c.failures:
			return err
		default:
		}
		c.Client.AllowRebalance()
	}
}

func (c *Consumer) assigned(_ context.Context, cl *kgo.Client, assigned map[string][]int32) {
	for topic, partitions := range assigned {
		c.Logger.Info("partitions assigned", zap.String("topic", topic), zap.String("partitions", utils.JoinInts(partitions, ",")))
		for _, partition := range partitions {
			w := &partitionWorker{
				topic:     topic,
				partition: partition,
				records:   make(chan kgo.FetchTopicPartition, c.Config.EachPartitionChanSize),
				quit:      make(chan struct{}),
				done:      make(chan struct{}),
			}
			c.workers[topicPartition{topic, partition}] = w
			go c.work(cl, w)
		}
	}
}

func (c *Consumer) revoked(ctx context.Context, cl *kgo.Client, revoked map[string][]int32) {
	c.stopWorkers(revoked)
	if err := cl.CommitMarkedOffsets(ctx); err != nil {
		c.Logger.Error("commit on revoke failed", zap.Error(err))
	}
}

func (c *Consumer) lost(_ context.Context, _ *kgo.Client, lost map[string][]int32) {
	c.stopWorkers(lost)
}

func (c *Consumer) stopWorkers(partitions map[string][]int32) {
	var wg sync.WaitGroup
	defer wg.Wait()

	for topic, ps := range partitions {
		c.Logger.Info("partitions released", zap.String("topic", topic), zap.String("partitions", utils.JoinInts(ps, ",")))
		for _, partition := range ps {
			tp := topicPartition{topic, partition}
			w, ok := c.workers[tp]
			if !ok {
				continue
			}
			delete(c.workers, tp)
			close(w.quit)

			wg.Add(1)
			go func() {
				<-w.done
				wg.Done()
			}()
		}
	}
}

func (c *Consumer) work(cl *kgo.Client, w *partitionWorker) {
	defer close(w.done)
	logger := c.Logger.With(zap.String("topic", w.topic), zap.Int32("partition", w.partition))

	for {
		select {
		case <-w.quit:
			return
		case p := <-w.records:
			for _, rec := range p.Records {
				if err := c.deliver(c.ctx, toRecord(rec)); err != nil {
					logger.Error("partition worker stopped", zap.Int64("offset", rec.Offset), zap.Error(err))
					c.fail(err)
					return
				}
				cl.MarkCommitRecords(rec)
			}
		}
	}
}

// deliver hands a record to the processor up to MaxAttempts times. Malformed
// input and illegal states are not retried. A record that keeps failing goes
// to the dead letter queue; only a failed dead letter write is returned.
func (c *Consumer) deliver(ctx context.Context, record models.Record) error {
	maxAttempts := max(c.Config.MaxAttempts, 1)

	var err error
	attempts := 0
	for attempts < maxAttempts {
		attempts++
		if err = c.Processor.ProcessRecord(ctx, record); err == nil {
			return nil
		}
		c.Logger.Warn("failed to process record",
			zap.String("topic", record.Topic),
			zap.String("key", string(record.Key)),
			zap.Int64("offset", record.Offset),
			zap.Int("attempt", attempts),
			zap.Error(err),
		)
		if !retryable(err) {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	if dlqErr := c.DLQ.Send(ctx, record, attempts, err); dlqErr != nil {
		return fmt.Errorf("record %s/%d@%d neither processed nor dead-lettered: %w", record.Topic, record.Partition, record.Offset, dlqErr)
	}
	metrics.DeadLettered.WithLabelValues(record.Topic).Inc()
	return nil
}

func (c *Consumer) fail(err error) {
	select {
	case c.failures <- err:
	default:
	}
}

func retryable(err error) bool {
	switch apperrors.KindOf(err) {
	case apperrors.Invalid, apperrors.IllegalState:
		return false
	}
	return true
}

func toRecord(rec *kgo.Record) models.Record {
	return models.Record{
		Key:       rec.Key,
		Value:     rec.Value,
		Topic:     rec.Topic,
		Partition: rec.Partition,
		Offset:    rec.Offset,
	}
}
