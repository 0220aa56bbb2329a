package service

import (
	"context"

	"ai-assistant-client/internal/pkg/logger"
	"ai-assistant-client/pkg/events"
	pktNats "ai-assistant-client/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
)

// IEventMirror publishes events to other devices. *nats.Publisher implements it.
type IEventMirror interface {
	Publish(ctx context.Context, event events.Event) error
}

// IEventSource delivers events published by other devices. *nats.Subscriber implements it.
type IEventSource interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error
}

type ISyncService interface {
	Start(ctx context.Context) error
	OriginId() string
}

// syncService bridges the local event bus and the shared NATS stream. Local events are
// stamped with this process's origin and mirrored out; foreign events are re-published
// locally so the reconciler invalidates the same caches it would for a local mutation.
type syncService struct {
	localSub  message.Subscriber
	topicName string
	local     IPublisherService
	mirror    IEventMirror
	source    IEventSource
	originId  string
	durable   string
	logger    logger.ILogger
}

func NewSyncService(
	localSub message.Subscriber,
	topicName string,
	local IPublisherService,
	mirror IEventMirror,
	source IEventSource,
	originId string,
	deviceId string,
	log logger.ILogger,
) ISyncService {
	return &syncService{
		localSub:  localSub,
		topicName: topicName,
		local:     local,
		mirror:    mirror,
		source:    source,
		originId:  originId,
		durable:   "assistant-" + deviceId,
		logger:    log,
	}
}

func (s *syncService) OriginId() string {
	return s.originId
}

func (s *syncService) Start(ctx context.Context) error {
	messages, err := s.localSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}
	go func() {
		for msg := range messages {
			s.mirrorMessage(ctx, msg)
		}
	}()

	return s.source.Subscribe(ctx, pktNats.Subject(">"), s.durable, s.receive)
}

func (s *syncService) mirrorMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		return
	}
	if origin := events.StringField(event, events.KeyOrigin); origin != "" && origin != s.originId {
		// Arrived from another device; already mirrored there.
		return
	}

	event.Data[events.KeyOrigin] = s.originId
	if err := s.mirror.Publish(ctx, event); err != nil {
		s.logger.Warn("SYNC", "Failed to mirror event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

func (s *syncService) receive(ctx context.Context, event events.Event) error {
	origin := events.StringField(event, events.KeyOrigin)
	if origin == "" || origin == s.originId {
		return nil
	}

	s.logger.Debug("SYNC", "Applying event from another device", map[string]interface{}{
		"type":   event.EventType(),
		"origin": origin,
	})
	return s.local.Publish(ctx, event)
}
