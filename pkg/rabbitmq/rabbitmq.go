package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"

	"contacthub/internal/logger"
)

// DefaultQueue receives every contact lifecycle event.
const DefaultQueue = "contact_events"

// Event types published on the queue.
const (
	EventContactCreated = "contact.created"
	EventContactDeleted = "contact.deleted"
)

// ContactEvent is the JSON body of a published message.
type ContactEvent struct {
	Type       string    `json:"type"`
	ContactID  string    `json:"contactId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	// amqp.Channel is not safe for concurrent publishes.
	mu sync.Mutex
}

// NewClient connects to RabbitMQ, opens a channel and declares the event queue.
func NewClient(cfg Config) (*Client, error) {
	queue := cfg.Queue
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareQueue(ch, queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger.GetLogger().Infow("RabbitMQ client connected", "queue", queue)

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   queue,
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return q, fmt.Errorf("failed to declare %s: %w", name, err)
	}
	return q, nil
}

// Close closes the channel and the connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// PublishContactEvent publishes evt as a persistent JSON message on the event queue.
func (c *Client) PublishContactEvent(evt ContactEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", evt.Type, err)
	}

	c.mu.Lock()
	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         evt.Type,
			MessageId:    evt.ContactID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    evt.OccurredAt,
		})
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", evt.Type, err)
	}
	return nil
}

// ConsumeContactEvents registers a consumer on the event queue and hands each
// decoded event to handler from a background goroutine. Messages are acked when
// handler returns nil and requeued otherwise; undecodable messages are dropped.
// The goroutine exits when the channel is closed.
func (c *Client) ConsumeContactEvents(handler func(ContactEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	q, err := declareQueue(c.channel, c.queue)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		q.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		log := logger.GetLogger()
		for msg := range msgs {
			var evt ContactEvent
			if err := json.Unmarshal(msg.Body, &evt); err != nil {
				log.Warnw("Dropping undecodable contact event", "delivery_tag", msg.DeliveryTag, "error", err)
				if err := msg.Nack(false, false); err != nil {
					log.Errorw("Failed to nack message", "delivery_tag", msg.DeliveryTag, "error", err)
				}
				continue
			}
			if err := handler(evt); err != nil {
				log.Errorw("Error processing contact event", "delivery_tag", msg.DeliveryTag, "error", err)
				if err := msg.Nack(false, true); err != nil {
					log.Errorw("Failed to nack message", "delivery_tag", msg.DeliveryTag, "error", err)
				}
				continue
			}
			if err := msg.Ack(false); err != nil {
				log.Errorw("Failed to ack message", "delivery_tag", msg.DeliveryTag, "error", err)
			}
		}
	}()

	return nil
}
