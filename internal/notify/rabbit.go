package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
)

const (
	EventsExchange        = "storefront.events"
	OrderPlacedRoutingKey = "order.placed.v1"
	defaultProducer       = "storefront-go"
	publishTimeout        = 3 * time.Second
)

type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes OrderPlaced events to a topic exchange.
type RabbitPublisher struct {
	ch       amqpChannel
	producer string
	now      func() time.Time
}

func NewRabbitPublisher(conn *amqp.Connection, producer string) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	p, err := newRabbitPublisher(ch, producer)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	return p, nil
}

func newRabbitPublisher(ch amqpChannel, producer string) (*RabbitPublisher, error) {
	if err := ch.ExchangeDeclare(EventsExchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}
	if producer == "" {
		producer = defaultProducer
	}
	return &RabbitPublisher{ch: ch, producer: producer, now: time.Now}, nil
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitPublisher) Name() string { return "rabbitmq" }

func (p *RabbitPublisher) OrderPlaced(ctx context.Context, ev OrderPlaced) error {
	env := p.newOrderPlacedEvent(ctx, ev)
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced envelope: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		OrderPlacedRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     env.EventID,
			CorrelationId: env.CorrelationID,
			Timestamp:     env.OccurredAt,
			Body:          body,
		},
	)
}

func (p *RabbitPublisher) newOrderPlacedEvent(ctx context.Context, ev OrderPlaced) OrderPlacedEvent {
	return OrderPlacedEvent{
		EventEnvelope: EventEnvelope{
			EventName:     EventTypeOrderPlaced,
			EventVersion:  1,
			EventID:       uuid.NewString(),
			CorrelationID: middleware.GetCorrelationID(ctx),
			Producer:      p.producer,
			PartitionKey:  strconv.FormatInt(ev.CustomerID, 10),
			OccurredAt:    p.now().UTC(),
		},
		Payload: ev,
	}
}
