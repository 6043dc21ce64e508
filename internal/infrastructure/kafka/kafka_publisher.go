package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/vendaro/storefront-service/internal/domain"
)

// DefaultKafkaPublisher delivers order events to the notification
// collaborator. Publishing is fire-and-forget from the caller's point of
// view: the order transaction has already committed by the time we get here.
type DefaultKafkaPublisher struct {
	writer *kafka.Writer
	topic  string
}

func NewDefaultKafkaPublisher(brokers []string, topic string) *DefaultKafkaPublisher {
	return &DefaultKafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		topic: topic,
	}
}

func (k *DefaultKafkaPublisher) Publish(msgs ...domain.Message) error {
	km := make([]kafka.Message, 0, len(msgs))
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  time.Now(),
			Topic: k.topic,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return k.writer.WriteMessages(ctx, km...)
}

func (k *DefaultKafkaPublisher) OrderCreated(snapshot domain.OrderSnapshot) error {
	event := OrderCreatedEvent{
		Type:     eventOrderCreated,
		Snapshot: snapshot,
	}
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.Publish(domain.Message{Key: []byte(snapshot.OrderNumber), Value: v})
}

func (k *DefaultKafkaPublisher) OrderStatusChanged(orderNumber string, status domain.OrderStatus) error {
	event := OrderStatusEvent{
		Type:        eventOrderStatusChanged,
		OrderNumber: orderNumber,
		Status:      string(status),
	}
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.Publish(domain.Message{Key: []byte(orderNumber), Value: v})
}

func (k *DefaultKafkaPublisher) Close() error {
	return k.writer.Close()
}
