package service

import (
	"context"
	"encoding/json"

	"competency-assessment-be/internal/pkg/logger"
	"competency-assessment-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IEventPublisher hands assessment events to the in-process bus. Publishing is
// fire-and-forget: failures are logged and never reach the caller.
type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type eventPublisher struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewEventPublisher(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IEventPublisher {
	return &eventPublisher{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

func (p *eventPublisher) Publish(_ context.Context, event events.Event) {
	payload, err := json.Marshal(events.BaseEvent{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		p.logger.Error("EVENTS", "Failed to marshal event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", event.EventType())

	if err := p.pubSub.Publish(p.topicName, msg); err != nil {
		p.logger.Error("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

// nopPublisher drops every event
type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, events.Event) {}

// NewNopEventPublisher is used by offline runs that have no bus
func NewNopEventPublisher() IEventPublisher {
	return nopPublisher{}
}
