package notify

import (
	"context"
	"encoding/json"
	"time"

	"loyalty-system/internal/common/logger"
	"loyalty-system/internal/domain"
)

const (
	KeyCardIssued  = "card.issued"
	KeyOrderPlaced = "order.placed"
)

// Broker is the slice of the AMQP client the publisher needs.
type Broker interface {
	Publish(ctx context.Context, key string, body []byte) error
}

// Events is what the ledgers see. Publishing is best-effort: the ledgers have
// already persisted their state, so a broker failure is logged, never
// propagated back into the request.
type Events interface {
	CardIssued(ctx context.Context, evt domain.CardIssuedEvent)
	OrderPlaced(ctx context.Context, evt domain.OrderPlacedEvent)
}

type Publisher struct {
	broker Broker
	lg     *logger.Logger
}

func NewPublisher(broker Broker, lg *logger.Logger) *Publisher {
	return &Publisher{broker: broker, lg: lg}
}

func (p *Publisher) CardIssued(ctx context.Context, evt domain.CardIssuedEvent) {
	p.publish(ctx, KeyCardIssued, evt)
}

func (p *Publisher) OrderPlaced(ctx context.Context, evt domain.OrderPlacedEvent) {
	p.publish(ctx, KeyOrderPlaced, evt)
}

func (p *Publisher) publish(ctx context.Context, key string, evt any) {
	body, err := json.Marshal(evt)
	if err != nil {
		p.lg.Error("event_marshal_failed", err, map[string]any{"key": key})
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.broker.Publish(ctx, key, body); err != nil {
		p.lg.Error("event_publish_failed", err, map[string]any{"key": key})
		return
	}
	p.lg.Debug("event_published", map[string]any{"key": key})
}

// Noop replaces the publisher when RabbitMQ is disabled.
type Noop struct{}

func (Noop) CardIssued(context.Context, domain.CardIssuedEvent)   {}
func (Noop) OrderPlaced(context.Context, domain.OrderPlacedEvent) {}
