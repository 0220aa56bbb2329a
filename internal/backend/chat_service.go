package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/repository/contract"

	"github.com/google/uuid"
)

const (
	notePrefix     = "nota:"
	reminderPrefix = "lembrete:"
)

type IChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	History(ctx context.Context, sessionId string) []dto.ChatHistoryItem
}

// chatService is a deterministic stand-in for the assistant. "nota: title | content"
// creates a note and "lembrete: title" a reminder due tomorrow at 15:00; anything else
// is echoed back.
type chatService struct {
	sessions          contract.ChatSessionRepository
	activities        contract.ActivityRepository
	notes             INoteService
	reminders         IReminderService
	structuredEffects bool
	now               func() time.Time
}

func NewChatService(
	sessions contract.ChatSessionRepository,
	activities contract.ActivityRepository,
	notes INoteService,
	reminders IReminderService,
	structuredEffects bool,
) IChatService {
	return &chatService{
		sessions:          sessions,
		activities:        activities,
		notes:             notes,
		reminders:         reminders,
		structuredEffects: structuredEffects,
		now:               time.Now,
	}
}

func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	sessionId := uuid.NewString()
	if req.SessionId != nil && *req.SessionId != "" {
		sessionId = *req.SessionId
	}

	reply, effects, err := s.reply(ctx, req.Message)
	if err != nil {
		return nil, err
	}

	now := s.now()
	itemId := uuid.NewString()
	s.sessions.Append(ctx, sessionId, dto.ChatHistoryItem{
		Id:        itemId,
		Message:   req.Message,
		Response:  reply,
		Timestamp: entity.NewTimestamp(now),
	})

	data, _ := json.Marshal(map[string]string{"question": req.Message, "answer": reply})
	if err := s.activities.Append(ctx, entity.Activity{
		Id:          itemId,
		Type:        entity.KindChat,
		Icon:        "💬",
		Title:       truncate(req.Message, 60),
		Description: truncate(reply, 120),
		Timestamp:   entity.NewTimestamp(now),
		Data:        data,
	}); err != nil {
		return nil, err
	}

	res := &dto.ChatResponse{SessionId: sessionId, Response: reply}
	if s.structuredEffects {
		res.Effects = effects
	}
	return res, nil
}

func (s *chatService) History(ctx context.Context, sessionId string) []dto.ChatHistoryItem {
	return s.sessions.History(ctx, sessionId)
}

func (s *chatService) reply(ctx context.Context, message string) (string, []dto.ChatEffect, error) {
	trimmed := strings.TrimSpace(message)
	lower := strings.ToLower(trimmed)

	switch {
	case strings.HasPrefix(lower, notePrefix):
		title, content, _ := strings.Cut(strings.TrimSpace(trimmed[len(notePrefix):]), "|")
		title, content = strings.TrimSpace(title), strings.TrimSpace(content)
		if content == "" {
			content = title
		}
		note, err := s.notes.Create(ctx, &dto.CreateNoteRequest{Title: title, Content: content, Tags: []string{"assistente"}})
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("Pronto! Nota criada: %s", note.Title),
			[]dto.ChatEffect{{Kind: entity.KindNote, EntityId: note.Id}}, nil

	case strings.HasPrefix(lower, reminderPrefix):
		title := strings.TrimSpace(trimmed[len(reminderPrefix):])
		tomorrow := s.now().AddDate(0, 0, 1)
		due := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 15, 0, 0, 0, tomorrow.Location())
		reminder, err := s.reminders.Create(ctx, &dto.CreateReminderRequest{
			Title:    title,
			Date:     due.Format(time.RFC3339),
			Priority: string(entity.PriorityMedium),
		})
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("Lembrete criado: %s para %s", reminder.Title, due.Format("02/01/2006 15:04")),
			[]dto.ChatEffect{{Kind: entity.KindReminder, EntityId: reminder.Id}}, nil
	}

	return fmt.Sprintf("Você disse: %s", trimmed), nil, nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
