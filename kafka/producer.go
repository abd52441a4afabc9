package kafka

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

type Producer struct {
	Client *kgo.Client
	Logger *zap.Logger
}

func NewProducer(brokers []string, metrics *kprom.Metrics, logger *zap.Logger) (*Producer, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.WithHooks(metrics),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.AllowAutoTopicCreation(),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	return &Producer{Client: client, Logger: logger}, nil
}

// Publish JSON-encodes value and waits until the broker acknowledges it.
// Records sharing a key land on the same partition.
func (p *Producer) Publish(ctx context.Context, topic, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode event for %s: %w", topic, err)
	}

	record := &kgo.Record{Topic: topic, Key: []byte(key), Value: data}
	if err = p.Client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("failed to produce to %s: %w", topic, err)
	}
	p.Logger.Debug("record produced",
		zap.String("topic", topic), zap.String("key", key),
		zap.Int32("partition", record.Partition), zap.Int64("offset", record.Offset))
	return nil
}

func (p *Producer) Close() {
	p.Client.Close()
}
