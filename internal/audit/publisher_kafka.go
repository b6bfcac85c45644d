package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// DefaultTopic is where auth events land unless configured otherwise.
const DefaultTopic = "leavehub.auth.events"

// KafkaPublisher produces audit events to a Kafka-compatible broker. Events
// are keyed by user ID so one user's history stays ordered within a
// partition.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher connects to the brokers and ensures the topic exists.
func NewKafkaPublisher(ctx context.Context, brokers []string, topic string) (*KafkaPublisher, error) {
	if topic == "" {
		topic = DefaultTopic
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	admin := kadm.NewClient(client)
	if _, err := admin.CreateTopic(ctx, 1, 1, nil, topic); err != nil {
		// Topic may already exist; only a connectivity failure is fatal.
		if err := client.Ping(ctx); err != nil {
			client.Close()
			return nil, fmt.Errorf("kafka unreachable: %w", err)
		}
	}

	return &KafkaPublisher{client: client, topic: topic}, nil
}

// Emit produces the event asynchronously. Delivery failures surface through
// the produce callback and are intentionally not propagated to the auth
// request path.
func (p *KafkaPublisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.UserID),
		Value: payload,
	}
	p.client.Produce(ctx, record, nil)
	return nil
}

// Flush drains pending produce buffers, for shutdown and tests.
func (p *KafkaPublisher) Flush(ctx context.Context) error {
	return p.client.Flush(ctx)
}

// Close flushes and releases the underlying client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}
