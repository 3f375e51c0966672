package rabbitmq

import (
	"context"
	"errors"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shopstream/storefront/internal/domain"
)

const (
	DefaultExchange = "storefront.orders"

	orderCreatedKey = "order.created"

	// Wait window for Return / Confirm
	publishWait = 150 * time.Millisecond
)

type Publisher struct {
	url      string
	exchange string

	mu sync.Mutex

	conn *amqp.Connection
	ch   *amqp.Channel

	confirmCh <-chan amqp.Confirmation
	returnCh  <-chan amqp.Return
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	p := &Publisher{
		url:      url,
		exchange: exchange,
	}
	if err := p.connect(); err != nil {
		return nil, domain.ErrBrokerUnavailable(err)
	}
	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}

	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	// enable publisher confirms
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	p.conn = conn
	p.ch = ch

	p.confirmCh = ch.NotifyPublish(make(chan amqp.Confirmation, 1))
	p.returnCh = ch.NotifyReturn(make(chan amqp.Return, 1))

	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
	return nil
}

// PublishOrderCreated publishes the order envelope to the topic exchange
// with mandatory + confirms. Downstream consumers (email, fulfilment) bind
// on order.created.
func (p *Publisher) PublishOrderCreated(ctx context.Context, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		return domain.ErrBrokerUnavailable(errors.New("publisher channel not ready"))
	}

	err := p.ch.PublishWithContext(
		ctx,
		p.exchange,
		orderCreatedKey,
		true,  // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now().UTC(),
			Body:        body,
		},
	)
	if err != nil {
		return domain.ErrBrokerUnavailable(err)
	}

	// Wait for either Return (NO_ROUTE) or Confirm
	select {
	case ret := <-p.returnCh:
		return domain.ErrBrokerUnavailable(errors.New("NO_ROUTE: " + ret.RoutingKey))
	case conf := <-p.confirmCh:
		if !conf.Ack {
			return domain.ErrBrokerUnavailable(errors.New("publish nack"))
		}
		return nil
	case <-time.After(publishWait):
		// best-effort window; checkout does not block on consumers
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
