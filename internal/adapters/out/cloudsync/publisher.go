package cloudsync

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// SnapshotPublisher delivers assembled snapshots to the backup stream.
type SnapshotPublisher interface {
	Publish(ctx context.Context, snapshot Snapshot) error
	Close() error
}

// KafkaSnapshotPublisher publishes snapshots to a Kafka topic, keyed by
// tenant so one tenant's snapshots stay ordered within a partition.
type KafkaSnapshotPublisher struct {
	writer *kafka.Writer
}

// NewKafkaSnapshotPublisher creates a publisher against the given brokers.
func NewKafkaSnapshotPublisher(brokers []string, topic string) *KafkaSnapshotPublisher {
	return &KafkaSnapshotPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
	}
}

// Publish writes one snapshot message.
func (p *KafkaSnapshotPublisher) Publish(ctx context.Context, snapshot Snapshot) error {
	value, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(snapshot.TenantID),
		Value: value,
		Time:  snapshot.GeneratedAt,
	})
}

// Close flushes and closes the underlying writer.
func (p *KafkaSnapshotPublisher) Close() error {
	return p.writer.Close()
}
