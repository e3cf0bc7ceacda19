package notifier

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"pointofsale/internal/domain"
)

type Consumer struct {
	Reader *kafka.Reader
	Store  BoardStore
}

func NewConsumer(reader *kafka.Reader, store BoardStore) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting order board consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling event: %v", err)
			continue
		}
		c.Process(ctx, event)
	}
}

// Process keeps the live board consistent with order events. Terminal orders
// leave the board; paid orders also bump the daily counter.
func (c *Consumer) Process(ctx context.Context, event domain.Event) {
	switch event.Type {
	case domain.EventOrderCreated, domain.EventOrderUpdated, domain.EventOrderStatusUpdated:
		status, ok := event.Payload["status"].(string)
		if !ok {
			return
		}
		parsed, err := domain.ParseOrderStatus(status)
		if err != nil {
			log.Printf("Skipping event with unknown status %q", status)
			return
		}
		if parsed.Terminal() {
			if err := c.Store.RemoveOrder(ctx, event.BranchID, event.OrderID); err != nil {
				log.Printf("Error removing order %s from board: %v", event.OrderID, err)
			}
			return
		}
		if err := c.Store.SetOrderStatus(ctx, event.BranchID, event.OrderID, parsed); err != nil {
			log.Printf("Error updating board for order %s: %v", event.OrderID, err)
		}
	case domain.EventOrderPaid:
		if err := c.Store.RemoveOrder(ctx, event.BranchID, event.OrderID); err != nil {
			log.Printf("Error removing order %s from board: %v", event.OrderID, err)
		}
		if err := c.Store.CountPaid(ctx, event.BranchID); err != nil {
			log.Printf("Error counting paid order for branch %s: %v", event.BranchID, err)
		}
	}
}
