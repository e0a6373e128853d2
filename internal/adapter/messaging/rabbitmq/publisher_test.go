package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosca-bridge/internal/adapter/messaging/rabbitmq"
	"rosca-bridge/internal/core/domain"
)

type published struct {
	exchange string
	key      string
	msg      amqp091.Publishing
}

type fakeChannel struct {
	declared   []string
	declareErr error
	publishErr error
	published  []published
	closed     bool
}

func (c *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error {
	c.declared = append(c.declared, name+":"+kind)
	return c.declareErr
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.published = append(c.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p, err := rabbitmq.NewPublisher(ch, "rosca.events", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"rosca.events:topic"}, ch.declared)

	event := domain.NewAppEvent(domain.AppEventIneligibleMemberJoined, domain.SeverityWarning,
		domain.Provenance{Ledger: domain.LedgerCircle, TxHash: "0xabc", BlockNumber: 9},
		domain.IneligibleMemberData{CircleID: 7, Member: "0x4444444444444444444444444444444444444444", Reason: "KYC required"})

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, ch.published, 1)

	got := ch.published[0]
	assert.Equal(t, "rosca.events", got.exchange)
	assert.Equal(t, "rosca.ineligible_member_joined", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, event.ID.String(), got.msg.MessageId)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(got.msg.Body, &body))
	assert.Equal(t, "warning", body["severity"])
	assert.Equal(t, "0xabc", body["source"].(map[string]interface{})["tx_hash"])

	p.Close()
	assert.True(t, ch.closed)
}

func TestPublisher_Errors(t *testing.T) {
	_, err := rabbitmq.NewPublisher(&fakeChannel{declareErr: errors.New("access refused")}, "x", zerolog.Nop())
	assert.Error(t, err)

	p, err := rabbitmq.NewPublisher(&fakeChannel{publishErr: amqp091.ErrClosed}, "x", zerolog.Nop())
	require.NoError(t, err)
	err = p.Publish(context.Background(), domain.NewAppEvent(domain.AppEventCircleCreated, domain.SeverityInfo, domain.Provenance{}, nil))
	assert.ErrorIs(t, err, amqp091.ErrClosed)

	assert.Error(t, p.Ping(context.Background()))
	assert.Equal(t, "rabbitmq", p.Name())
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "rosca.circle_joined", rabbitmq.RoutingKey(domain.AppEventCircleJoined))
}
