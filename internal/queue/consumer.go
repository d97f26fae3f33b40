package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer drains both queues and logs every event. It reconnects with
// exponential backoff until ctx is cancelled.
type Consumer struct {
	url    string
	logger *slog.Logger
}

func NewConsumer(url string, logger *slog.Logger) *Consumer {
	return &Consumer{url: url, logger: logger}
}

func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn("Event consumer dial failed", "error", err, "retry_in", backoff)
			if !sleep(ctx, backoff) {
				return
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return
		}
		c.logger.Warn("Event consumer loop ended, reconnecting", "error", err)
		if !sleep(ctx, 2*time.Second) {
			return
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.logger.Warn("Event consumer QoS failed", "error", err)
	}

	alerts, err := c.subscribe(ch, SafetyAlertsQueue)
	if err != nil {
		return err
	}
	payments, err := c.subscribe(ch, PaymentsConfirmedQueue)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-alerts:
			if !ok {
				return errors.New("safety deliveries closed")
			}
			c.ack(d, HandleDelivery(c.logger, SafetyAlertsQueue, d.Body))
		case d, ok := <-payments:
			if !ok {
				return errors.New("payment deliveries closed")
			}
			c.ack(d, HandleDelivery(c.logger, PaymentsConfirmedQueue, d.Body))
		}
	}
}

func (c *Consumer) subscribe(ch *amqp.Channel, queue string) (<-chan amqp.Delivery, error) {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("queue declare %s: %w", queue, err)
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("queue consume %s: %w", queue, err)
	}
	return msgs, nil
}

func (c *Consumer) ack(d amqp.Delivery, err error) {
	if err != nil {
		c.logger.Error("Rejecting malformed event", "queue", d.RoutingKey, "error", err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

// HandleDelivery decodes one message body and logs it.
func HandleDelivery(logger *slog.Logger, queue string, body []byte) error {
	switch queue {
	case SafetyAlertsQueue:
		var ev SafetyAlertEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal safety alert: %w", err)
		}
		if ev.Kind == "" {
			return errors.New("safety alert without kind")
		}
		logger.Warn("Safety alert",
			"kind", ev.Kind,
			"user_id", ev.UserID,
			"incident_id", ev.IncidentID,
			"member_id", ev.MemberID,
			"severity", ev.Severity,
			"occurred_at", ev.OccurredAt,
		)
	case PaymentsConfirmedQueue:
		var ev PaymentConfirmedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal payment event: %w", err)
		}
		if ev.BookingReference == "" {
			return errors.New("payment event without booking reference")
		}
		logger.Info("Payment confirmed",
			"booking_reference", ev.BookingReference,
			"user_id", ev.UserID,
			"amount", ev.Amount,
			"currency", ev.Currency,
			"gateway", ev.Gateway,
		)
	default:
		return fmt.Errorf("unknown queue %q", queue)
	}
	return nil
}
