// Package events publishes resource-change notifications to a message
// broker so downstream consumers (search indexing, notifications) can react.
// Publishing is fire-and-forget: a broker failure is logged and never fails
// the originating request.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// Actions carried by resource-change events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event describes a single document change.
type Event struct {
	Resource   string    `json:"resource"`
	Action     string    `json:"action"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits resource-change events.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

// Publish discards the event.
func (NoopPublisher) Publish(context.Context, Event) {}

// AMQPPublisher emits events onto a durable RabbitMQ queue.
type AMQPPublisher struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string

	// the amqp channel is not safe for concurrent publishes
	mu sync.Mutex
}

// NewAMQPPublisher connects to the broker and declares the queue.
func NewAMQPPublisher(rabbitURL, queueName string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if queueName == "" {
		queueName = "resource_events"
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	logrus.WithField("queue", queueName).Info("resource-change publisher connected")
	return &AMQPPublisher{connection: conn, channel: ch, queueName: queueName}, nil
}

// Publish marshals and sends the event. Failures are logged, not returned;
// the document operation that triggered the event has already succeeded.
func (p *AMQPPublisher) Publish(_ context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Warn("failed to marshal resource-change event")
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.Publish(
		"",          // default exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   event.OccurredAt,
		},
	)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"resource": event.Resource,
			"action":   event.Action,
		}).Warn("failed to publish resource-change event")
	}
}

// Close tears down the channel and connection.
func (p *AMQPPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.connection.Close()
		return err
	}
	return p.connection.Close()
}
