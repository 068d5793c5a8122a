// Package kafka publishes order-created events to a configured topic as an
// optional secondary notification sink.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/commercebot/shopkeeper/internal/ledger/domain"
)

type Notifier struct {
	log    *slog.Logger
	writer *kafka.Writer
}

func NewNotifier(log *slog.Logger, addr, topic string) *Notifier {
	return &Notifier{
		log: log,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(addr),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

type orderCreatedEvent struct {
	OrderID     string          `json:"order_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
	Profit      decimal.Decimal `json:"profit"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (n *Notifier) OrderCreated(ctx context.Context, o domain.Order) error {
	payload, err := json.Marshal(orderCreatedEvent{
		OrderID:     o.ID,
		ProductID:   o.ProductID,
		ProductName: o.ProductName,
		Quantity:    o.Quantity,
		Total:       o.Total,
		Profit:      o.Profit,
		CreatedBy:   o.CreatedBy,
		CreatedAt:   o.CreatedAt,
	})
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(o.ID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("OrderCreated")},
		},
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}
	n.log.Info("order event published", "order_id", o.ID, "topic", n.writer.Topic)
	return nil
}

func (n *Notifier) Close() error { return n.writer.Close() }
