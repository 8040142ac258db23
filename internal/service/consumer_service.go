package service

import (
	"context"
	"encoding/json"

	"notes-app/internal/dto"
	"notes-app/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

const consumerServiceModule = "ConsumerService"

// NoteEventSink receives every decoded note event from the bus.
type NoteEventSink interface {
	HandleNoteEvent(ctx context.Context, evt *dto.NoteEventMessage) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	sinks      []NoteEventSink
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	log logger.ILogger,
	sinks ...NoteEventSink,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		sinks:      sinks,
		logger:     log,
	}
}

// Consume subscribes to the topic and dispatches messages in the background
// until ctx is cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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
	// Always ack: a sink failure must not redeliver to the sinks that succeeded.
	defer msg.Ack()

	var evt dto.NoteEventMessage
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		cs.logger.Error(consumerServiceModule, "Failed to unmarshal note event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	for _, sink := range cs.sinks {
		if err := sink.HandleNoteEvent(ctx, &evt); err != nil {
			cs.logger.Warn(consumerServiceModule, "Note event sink failed", map[string]interface{}{
				"type":     evt.Type,
				"event_id": evt.EventId,
				"error":    err.Error(),
			})
		}
	}
}
