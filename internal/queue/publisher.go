package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher failures never fail the request that produced the event;
// callers log and move on.
type Publisher interface {
	PublishSafetyAlert(ctx context.Context, ev SafetyAlertEvent) error
	PublishPaymentConfirmed(ctx context.Context, ev PaymentConfirmedEvent) error
	Close() error
}

type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type amqpConnection interface {
	Channel() (amqpChannel, error)
	IsClosed() bool
	Close() error
}

type brokerConn struct {
	*amqp.Connection
}

func (c brokerConn) Channel() (amqpChannel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func dialBroker(url string) (amqpConnection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return brokerConn{conn}, nil
}

type AMQPPublisher struct {
	url    string
	logger *slog.Logger
	dial   func(url string) (amqpConnection, error)

	mu   sync.Mutex
	conn amqpConnection
	ch   amqpChannel
}

func NewAMQPPublisher(url string, logger *slog.Logger) (*AMQPPublisher, error) {
	return newAMQPPublisher(url, logger, dialBroker)
}

func newAMQPPublisher(url string, logger *slog.Logger, dial func(string) (amqpConnection, error)) (*AMQPPublisher, error) {
	p := &AMQPPublisher{url: url, logger: logger, dial: dial}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// connect must be called with mu held.
func (p *AMQPPublisher) connect() error {
	conn, err := p.dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := openChannel(conn)
	if err != nil {
		_ = conn.Close()
		return err
	}
	p.conn, p.ch = conn, ch
	return nil
}

func openChannel(conn amqpConnection) (amqpChannel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	for _, q := range []string{SafetyAlertsQueue, PaymentsConfirmedQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("rabbitmq queue declare %s: %w", q, err)
		}
	}
	return ch, nil
}

// reopen replaces a dead channel. The connection is reused while it is
// still open; otherwise it is closed and dialled again. mu must be held.
func (p *AMQPPublisher) reopen() error {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil && !p.conn.IsClosed() {
		ch, err := openChannel(p.conn)
		if err == nil {
			p.ch = ch
			return nil
		}
		p.logger.Warn("RabbitMQ channel reopen failed, redialling", "error", err)
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
	return p.connect()
}

func (p *AMQPPublisher) publish(ctx context.Context, queue string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() || p.ch == nil {
		if err := p.reopen(); err != nil {
			return err
		}
	}
	err = p.ch.PublishWithContext(ctx, "", queue, false, false, msg)
	if errors.Is(err, amqp.ErrClosed) {
		// one retry for a channel closed by the broker
		if err = p.reopen(); err == nil {
			err = p.ch.PublishWithContext(ctx, "", queue, false, false, msg)
		}
	}
	if err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", queue, err)
	}
	return nil
}

func (p *AMQPPublisher) PublishSafetyAlert(ctx context.Context, ev SafetyAlertEvent) error {
	return p.publish(ctx, SafetyAlertsQueue, ev)
}

func (p *AMQPPublisher) PublishPaymentConfirmed(ctx context.Context, ev PaymentConfirmedEvent) error {
	return p.publish(ctx, PaymentsConfirmedQueue, ev)
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	err := p.conn.Close()
	p.conn, p.ch = nil, nil
	return err
}

// NoopPublisher drops events when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishSafetyAlert(ctx context.Context, ev SafetyAlertEvent) error { return nil }
func (NoopPublisher) PublishPaymentConfirmed(ctx context.Context, ev PaymentConfirmedEvent) error {
	return nil
}
func (NoopPublisher) Close() error { return nil }
