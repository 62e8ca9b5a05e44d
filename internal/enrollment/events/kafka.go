package events

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"coursecloud/internal/enrollment/models"
)

// Producer is the subset of *kgo.Client used for publishing.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// KafkaPublisher writes enrolled events to a topic, keyed by enrollment ID
// so every event about one enrollment lands on the same partition.
type KafkaPublisher struct {
	producer Producer
	topic    string
}

// NewKafkaPublisher publishes to topic through producer.
func NewKafkaPublisher(producer Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishEnrolled(ctx context.Context, record *models.EnrollmentRecord) error {
	if record == nil {
		return fmt.Errorf("enrollment record is required")
	}
	event := NewEnrolledEvent(ctx, record)
	value, err := event.Marshal()
	if err != nil {
		return fmt.Errorf("marshal enrolled event: %w", err)
	}
	rec := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.ID),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "type", Value: []byte(EventTypeEnrolled)},
		},
	}
	if err := p.producer.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce enrolled event: %w", err)
	}
	return nil
}
