package backend

import (
	"context"
	"net/http"
	"time"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/pkg/apperror"
	"ai-assistant-client/internal/repository/contract"
	"ai-assistant-client/internal/repository/specification"

	"github.com/google/uuid"
)

type IReminderService interface {
	Create(ctx context.Context, req *dto.CreateReminderRequest) (*entity.Reminder, error)
	List(ctx context.Context, upcoming bool) ([]entity.Reminder, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}

type reminderService struct {
	reminders contract.ReminderRepository
	now       func() time.Time
}

func NewReminderService(reminders contract.ReminderRepository) IReminderService {
	return &reminderService{reminders: reminders, now: time.Now}
}

func (s *reminderService) Create(ctx context.Context, req *dto.CreateReminderRequest) (*entity.Reminder, error) {
	date, err := entity.ParseTimestamp(req.Date)
	if err != nil {
		return nil, &apperror.ApplicationError{Op: "backend", Status: http.StatusUnprocessableEntity, Message: "invalid date"}
	}
	priority := entity.Priority(req.Priority)
	if priority == "" {
		priority = entity.PriorityMedium
	}

	reminder := entity.Reminder{
		Id:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Priority:    priority,
		CreatedAt:   entity.NewTimestamp(s.now()),
	}
	if err := s.reminders.Create(ctx, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (s *reminderService) List(ctx context.Context, upcoming bool) ([]entity.Reminder, error) {
	if upcoming {
		return s.reminders.FindAll(ctx, specification.Upcoming{Now: s.now()})
	}
	return s.reminders.FindAll(ctx)
}

func (s *reminderService) SetCompleted(ctx context.Context, id string, completed bool) error {
	return mapNotFound(s.reminders.SetCompleted(ctx, id, completed), "Reminder")
}

func (s *reminderService) Delete(ctx context.Context, id string) error {
	return mapNotFound(s.reminders.Delete(ctx, id), "Reminder")
}
