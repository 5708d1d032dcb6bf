package service

import (
	"context"
	"encoding/json"

	"competency-assessment-be/internal/pkg/logger"
	"competency-assessment-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventSink is the outbound side of the bus; *nats.Publisher implements it
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process topic and forwards every event to
// each sink. Without sinks events are only logged.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	sinks     []EventSink
	logger    logger.ILogger
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger, sinks ...EventSink) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		sinks:     sinks,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("EVENTS", "Failed to unmarshal event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Debug("EVENTS", "Event received", map[string]interface{}{
		"type": event.Type,
		"data": event.Data,
	})

	for _, sink := range cs.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			// The bus is best effort; a lost fan-out never blocks the assessment
			cs.logger.Warn("EVENTS", "Failed to forward event", map[string]interface{}{
				"type":  event.Type,
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}

// CompletionAuditor records finished assessments delivered by the NATS subscriber
type CompletionAuditor struct {
	logger logger.ILogger
}

func NewCompletionAuditor(log logger.ILogger) *CompletionAuditor {
	return &CompletionAuditor{logger: log}
}

func (a *CompletionAuditor) Handle(_ context.Context, event events.Event) error {
	data := event.Payload()
	a.logger.Info("EVENTS", "Assessment completed", map[string]interface{}{
		"session_id":    data["session_id"],
		"occupation":    data["occupation"],
		"overall_label": data["overall_label"],
		"percentage":    data["overall_percentage"],
		"occurred_at":   event.Timestamp(),
	})
	return nil
}
