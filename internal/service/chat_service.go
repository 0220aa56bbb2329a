package service

import (
	"context"
	"strings"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/pkg/apperror"
	"ai-assistant-client/internal/pkg/logger"
	"ai-assistant-client/internal/remote"
	"ai-assistant-client/internal/state"
	"ai-assistant-client/pkg/chateffect"
	"ai-assistant-client/pkg/events"
)

const chatErrorReply = "Desculpe, ocorreu um erro. Tente novamente."

// ChatTurn is the outcome of one successful exchange.
type ChatTurn struct {
	Response  dto.ChatResponse
	Detection chateffect.Detection
}

type IChatService interface {
	Send(ctx context.Context, text string) (*ChatTurn, error)
	History(ctx context.Context) ([]dto.ChatHistoryItem, error)
	NewConversation()
}

type chatService struct {
	client    remote.IClient
	store     *state.Store
	detector  *chateffect.Detector
	publisher IPublisherService
	notifier  INotifier
	logger    logger.ILogger
}

func NewChatService(
	client remote.IClient,
	store *state.Store,
	detector *chateffect.Detector,
	publisher IPublisherService,
	notifier INotifier,
	log logger.ILogger,
) IChatService {
	return &chatService{
		client:    client,
		store:     store,
		detector:  detector,
		publisher: publisher,
		notifier:  notifier,
		logger:    log,
	}
}

func (cs *chatService) Send(ctx context.Context, text string) (*ChatTurn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.NewValidationError(apperror.FieldError{Field: "message", Rule: "required"})
	}

	cs.store.AppendMessage(text, entity.SenderUser)

	req := dto.ChatRequest{Message: text}
	if sid := cs.store.SessionId(); sid != "" {
		req.SessionId = &sid
	}

	res, err := cs.client.Chat(ctx, req)
	if err != nil {
		cs.logger.Error("CHAT", "Chat turn failed", map[string]interface{}{"error": err.Error()})
		cs.store.AppendMessage(chatErrorReply, entity.SenderAssistant)
		return nil, err
	}

	cs.store.SetSessionId(res.SessionId)
	cs.store.AppendMessage(res.Response, entity.SenderAssistant)

	det := cs.detector.Detect(res.Response, res.Effects)
	for _, c := range det.Confirmations {
		cs.notifier.Info(c)
	}

	source := map[string]interface{}{events.KeySource: "chat", events.KeyEntityId: res.SessionId}
	if det.ReloadNotes {
		cs.publish(ctx, events.NoteCreated, withKind(source, entity.KindNote))
	}
	if det.ReloadReminders {
		cs.publish(ctx, events.ReminderCreated, withKind(source, entity.KindReminder))
	}
	cs.publish(ctx, events.ChatTurnCompleted, withKind(source, entity.KindChat))

	cs.logger.Debug("CHAT", "Chat turn completed", map[string]interface{}{
		"session_id":       res.SessionId,
		"reload_notes":     det.ReloadNotes,
		"reload_reminders": det.ReloadReminders,
		"structured":       det.Structured,
	})
	return &ChatTurn{Response: res, Detection: det}, nil
}

func (cs *chatService) History(ctx context.Context) ([]dto.ChatHistoryItem, error) {
	sid := cs.store.SessionId()
	if sid == "" {
		return nil, nil
	}
	return cs.client.ChatHistory(ctx, sid)
}

func (cs *chatService) NewConversation() {
	cs.store.ResetConversation()
}

func (cs *chatService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if err := cs.publisher.Publish(ctx, events.New(eventType, data)); err != nil {
		cs.logger.Warn("CHAT", "Refresh hint not published", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func withKind(base map[string]interface{}, kind entity.Kind) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[events.KeyKind] = string(kind)
	return out
}
