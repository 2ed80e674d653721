package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaPublisher produces operational events to a single pre-provisioned
// topic. Production is fire-and-forget: a broker outage degrades audit, never
// payment traffic.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewKafkaPublisher connects to the given comma-separated broker list.
func NewKafkaPublisher(brokers, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(strings.Split(brokers, ",")...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, err
	}
	return &KafkaPublisher{client: client, topic: topic, logger: logger}, nil
}

// Emit serializes and produces the event asynchronously.
func (p *KafkaPublisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "marshal audit event", "error", err)
		return
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.Action),
		Value: payload,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Warn("audit event delivery failed",
				"action", event.Action,
				"error", err,
			)
		}
	})
}

// Close flushes buffered records and releases the client.
func (p *KafkaPublisher) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = p.client.Flush(ctx)
	p.client.Close()
}
