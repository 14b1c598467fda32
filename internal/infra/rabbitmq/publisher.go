package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"resume-intake/internal/domain"

	"github.com/streadway/amqp"
)

// ResumeUpdatesExchange is the topic exchange resume events are sent to.
const ResumeUpdatesExchange = "resume_updates"

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends ResumeProcessedEvent messages to RabbitMQ.
type Publisher struct {
	conn        *amqp.Connection
	openChannel func() (channel, error)
	logger      domain.Logger
}

// NewPublisher dials url and declares the durable resume_updates exchange.
func NewPublisher(url string, logger domain.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		ResumeUpdatesExchange, // name
		"topic",               // kind
		true,                  // durable
		false,                 // auto-deleted
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	p := &Publisher{conn: conn, logger: logger}
	p.openChannel = func() (channel, error) { return conn.Channel() }
	return p, nil
}

// PublishResumeProcessed implements domain.EventPublisher. Each publish uses
// its own short lived channel.
func (p *Publisher) PublishResumeProcessed(ctx context.Context, event *domain.ResumeProcessedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	ch, err := p.openChannel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	routingKey := RoutingKey(event.UserID)
	if err := ch.Publish(
		ResumeUpdatesExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			Type:         "resume.processed",
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Published resume event", "routing_key", routingKey, "event_id", event.EventID)
	return nil
}

// Close closes the broker connection.
func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

// RoutingKey returns the topic routing key for a user's resume events.
func RoutingKey(userID int64) string {
	return fmt.Sprintf("resume.%d", userID)
}

// NoopPublisher drops events. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishResumeProcessed(ctx context.Context, event *domain.ResumeProcessedEvent) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
