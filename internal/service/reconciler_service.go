package service

import (
	"context"

	"ai-assistant-client/internal/pkg/logger"
	"ai-assistant-client/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Refreshers are the deferred reloads the reconciler can request.
type Refreshers struct {
	Notes     ITrigger
	Reminders ITrigger
	Dashboard ITrigger
}

type IReconcilerService interface {
	Consume(ctx context.Context) error
}

// reconcilerService turns mutation events into deferred authoritative reloads.
type reconcilerService struct {
	subscriber message.Subscriber
	topicName  string
	refreshers Refreshers
	logger     logger.ILogger
}

func NewReconcilerService(
	subscriber message.Subscriber,
	topicName string,
	refreshers Refreshers,
	log logger.ILogger,
) IReconcilerService {
	return &reconcilerService{
		subscriber: subscriber,
		topicName:  topicName,
		refreshers: refreshers,
		logger:     log,
	}
}

func (rs *reconcilerService) Consume(ctx context.Context) error {
	messages, err := rs.subscriber.Subscribe(ctx, rs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			rs.processMessage(msg)
		}
	}()

	return nil
}

func (rs *reconcilerService) processMessage(msg *message.Message) {
	// Malformed events are acked; redelivery would not fix them.
	defer msg.Ack()

	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		rs.logger.Warn("RECONCILER", "Dropping malformed event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	rs.logger.Debug("RECONCILER", "Event received", map[string]interface{}{
		"type":      event.EventType(),
		"entity_id": events.StringField(event, events.KeyEntityId),
	})
	rs.Apply(event)
}

// Apply maps one event to the reloads it invalidates.
func (rs *reconcilerService) Apply(event events.Event) {
	switch event.EventType() {
	case events.NoteCreated, events.NoteToggled:
		trigger(rs.refreshers.Notes)
		trigger(rs.refreshers.Dashboard)
	case events.ReminderCreated, events.ReminderToggled:
		trigger(rs.refreshers.Reminders)
		trigger(rs.refreshers.Dashboard)
	case events.NoteDeleted, events.ReminderDeleted, events.ActivityDeleted,
		events.ChatTurnCompleted, events.SearchCompleted, events.CodeAnalyzed:
		trigger(rs.refreshers.Dashboard)
	default:
		rs.logger.Debug("RECONCILER", "Ignoring event", map[string]interface{}{"type": event.EventType()})
	}
}

func trigger(t ITrigger) {
	if t != nil {
		t.Trigger()
	}
}
