package queue

import (
	"bytes"
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared  []string
	published []string
	failWith  error
	closed    bool
}

func (c *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	c.declared = append(c.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if c.failWith != nil {
		return c.failWith
	}
	c.published = append(c.published, key)
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

type fakeConnection struct {
	channels []*fakeChannel
	dead     bool
	closes   int
}

func (c *fakeConnection) Channel() (amqpChannel, error) {
	if c.dead {
		return nil, amqp.ErrClosed
	}
	ch := &fakeChannel{}
	c.channels = append(c.channels, ch)
	return ch, nil
}

func (c *fakeConnection) IsClosed() bool { return c.dead }

func (c *fakeConnection) Close() error {
	c.closes++
	c.dead = true
	return nil
}

type fakeBroker struct {
	conns []*fakeConnection
	err   error
}

func (b *fakeBroker) dial(url string) (amqpConnection, error) {
	if b.err != nil {
		return nil, b.err
	}
	conn := &fakeConnection{}
	b.conns = append(b.conns, conn)
	return conn, nil
}

func newFakePublisher(t *testing.T) (*AMQPPublisher, *fakeBroker) {
	t.Helper()
	broker := &fakeBroker{}
	var buf bytes.Buffer
	p, err := newAMQPPublisher("amqp://test", testLogger(&buf), broker.dial)
	require.NoError(t, err)
	return p, broker
}

func TestAMQPPublisher_DeclaresQueuesOnConnect(t *testing.T) {
	p, broker := newFakePublisher(t)
	require.Len(t, broker.conns, 1)
	ch := broker.conns[0].channels[0]
	assert.Equal(t, []string{SafetyAlertsQueue, PaymentsConfirmedQueue}, ch.declared)

	require.NoError(t, p.PublishSafetyAlert(context.Background(), SafetyAlertEvent{}))
	assert.Equal(t, []string{SafetyAlertsQueue}, ch.published)
}

func TestAMQPPublisher_ReopensDeadChannelOnSameConnection(t *testing.T) {
	p, broker := newFakePublisher(t)
	conn := broker.conns[0]
	first := conn.channels[0]
	first.failWith = amqp.ErrClosed

	require.NoError(t, p.PublishPaymentConfirmed(context.Background(), PaymentConfirmedEvent{BookingReference: "CXB-AB23CD45"}))

	assert.Len(t, broker.conns, 1, "connection was still open, no redial")
	assert.Zero(t, conn.closes)
	assert.True(t, first.closed)
	require.Len(t, conn.channels, 2)
	assert.Equal(t, []string{PaymentsConfirmedQueue}, conn.channels[1].published)
}

func TestAMQPPublisher_RedialClosesOldConnection(t *testing.T) {
	p, broker := newFakePublisher(t)
	old := broker.conns[0]
	old.channels[0].failWith = amqp.ErrClosed
	old.dead = true

	require.NoError(t, p.PublishSafetyAlert(context.Background(), SafetyAlertEvent{}))

	require.Len(t, broker.conns, 2)
	assert.Equal(t, 1, old.closes)
	assert.Equal(t, []string{SafetyAlertsQueue}, broker.conns[1].channels[0].published)
}

func TestAMQPPublisher_ReportsBrokerDown(t *testing.T) {
	p, broker := newFakePublisher(t)
	broker.conns[0].dead = true
	broker.err = errors.New("connection refused")

	err := p.PublishSafetyAlert(context.Background(), SafetyAlertEvent{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rabbitmq dial")

	broker.err = nil
	require.NoError(t, p.PublishSafetyAlert(context.Background(), SafetyAlertEvent{}))
	assert.NoError(t, p.Close())
}
