package publisher

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/subplane/subplane/internal/config"
	"github.com/subplane/subplane/internal/events"
	"github.com/subplane/subplane/internal/logger"
	"github.com/subplane/subplane/internal/pubsub"
	"github.com/subplane/subplane/internal/types"
)

// EventPublisher produces domain events for asynchronous, at-least-once
// delivery. The core never waits for, retries, or compensates consumption.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
}

type eventPublisher struct {
	pubSub pubsub.PubSub
	config *config.EventConfig
	logger *logger.Logger
}

// NewEventPublisher creates a publisher on top of the configured pubsub.
func NewEventPublisher(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	logger *logger.Logger,
) EventPublisher {
	return &eventPublisher{
		pubSub: pubSub,
		config: &cfg.Event,
		logger: logger,
	}
}

func (p *eventPublisher) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_name", event.EventName())
	if tenantID := types.GetTenantID(ctx); tenantID != "" {
		msg.Metadata.Set("tenant_id", tenantID)
	}

	if err := p.pubSub.Publish(ctx, p.config.Topic, msg); err != nil {
		p.logger.Errorw("failed to publish event",
			"error", err,
			"event_name", event.EventName(),
			"topic", p.config.Topic,
		)
		return err
	}

	p.logger.Debugw("published event",
		"event_name", event.EventName(),
		"topic", p.config.Topic,
	)

	return nil
}

func (p *eventPublisher) Close() error {
	return p.pubSub.Close()
}
