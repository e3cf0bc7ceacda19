package storage

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"pointofsale/internal/domain"
	"pointofsale/internal/service"
)

// KafkaPublisher fans mutations out to downstream consumers (kitchen board,
// notification channels). Messages are keyed by branch so per-branch ordering
// is preserved.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, _ := json.Marshal(event)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.BranchID),
		Value: payload,
	})
}

var _ service.EventPublisher = (*KafkaPublisher)(nil)
