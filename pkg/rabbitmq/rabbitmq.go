package rabbitmq

import (
	"encoding/json"
	"fmt"

	"catalog/pkg/logger"

	amqp "github.com/streadway/amqp"
)

const (
	// ProductEventsExchange is the fanout exchange product events are published to.
	ProductEventsExchange = "product.events"
	// ProductEventsQueue is the durable queue bound to ProductEventsExchange for downstream consumers.
	ProductEventsQueue = "product_events"
)

// channel is the subset of *amqp.Channel the client uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the product events topology.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger.Logger.Info().
		Str("exchange", ProductEventsExchange).
		Str("queue", ProductEventsQueue).
		Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func declareTopology(ch channel) error {
	err := ch.ExchangeDeclare(
		ProductEventsExchange, // name
		amqp.ExchangeFanout,   // kind
		true,                  // durable
		false,                 // auto-deleted
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", ProductEventsExchange, err)
	}

	_, err = ch.QueueDeclare(
		ProductEventsQueue, // name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", ProductEventsQueue, err)
	}

	if err := ch.QueueBind(ProductEventsQueue, "", ProductEventsExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind %s: %w", ProductEventsQueue, err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
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
	if len(errs) > 0 {
		return fmt.Errorf("errors during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishProductEvent publishes event as a persistent JSON message on the product events exchange.
func (c *Client) PublishProductEvent(event ProductEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal product event: %w", err)
	}

	err = c.channel.Publish(
		ProductEventsExchange, // exchange
		"",                    // routing key, ignored by fanout
		false,                 // mandatory
		false,                 // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.EventType,
			MessageId:    event.EventID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.Timestamp,
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// ConsumeProductEvents delivers decoded product events to handler in a background goroutine.
// Messages are acked when handler returns nil; undecodable messages are dropped, failed ones requeued.
func (c *Client) ConsumeProductEvents(handler func(ProductEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	// A private queue, so the service never competes with downstream consumers of ProductEventsQueue.
	queue, err := c.channel.QueueDeclare(
		"",    // name, generated by the server
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare consumer queue: %w", err)
	}
	if err := c.channel.QueueBind(queue.Name, "", ProductEventsExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind consumer queue: %w", err)
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack
		true,       // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			handleDelivery(msg, handler)
		}
	}()
	return nil
}

func handleDelivery(msg amqp.Delivery, handler func(ProductEvent) error) {
	event, err := DecodeProductEvent(msg.Body)
	if err != nil {
		logger.Logger.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("Dropping malformed product event")
		if nackErr := msg.Nack(false, false); nackErr != nil {
			logger.Logger.Error().Err(nackErr).Msg("Failed to nack message")
		}
		return
	}

	if err := handler(event); err != nil {
		logger.Logger.Error().Err(err).Str("event_id", event.EventID).Msg("Failed to process product event")
		if nackErr := msg.Nack(false, true); nackErr != nil {
			logger.Logger.Error().Err(nackErr).Msg("Failed to nack message")
		}
		return
	}

	if ackErr := msg.Ack(false); ackErr != nil {
		logger.Logger.Error().Err(ackErr).Msg("Failed to ack message")
	}
}

// LogProductEvent is the default consumer handler; it records received events.
func LogProductEvent(event ProductEvent) error {
	logger.Logger.Info().
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("product_id", event.ProductID).
		Time("timestamp", event.Timestamp).
		Msg("Received product event")
	return nil
}
