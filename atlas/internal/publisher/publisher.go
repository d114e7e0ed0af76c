// internal/publisher/publisher.go
package publisher

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Package publisher pushes allocation results to a RabbitMQ fanout
// exchange so downstream consumers (boards, archives) see each run.

// Publisher wraps an AMQP channel bound to one exchange.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// Dial connects to the broker and declares the fanout exchange.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"fanout", // kind
		false,    // durable
		false,    // delete when unused
		false,    // exclusive
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish sends one JSON payload to the exchange.
func (p *Publisher) Publish(body []byte) error {
	msg := amqp.Publishing{
		DeliveryMode: amqp.Transient,
		Timestamp:    time.Now(),
		ContentType:  "application/json",
		Body:         body,
	}
	if err := p.ch.Publish(p.exchange, "", false, false, msg); err != nil {
		return fmt.Errorf("publishing to %s: %w", p.exchange, err)
	}
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
