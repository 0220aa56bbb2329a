package contract

import (
	"context"

	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/repository/specification"
)

type ReminderRepository interface {
	Create(ctx context.Context, reminder *entity.Reminder) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, id string) (*entity.Reminder, error)
	// FindAll returns matching reminders, soonest first.
	FindAll(ctx context.Context, specs ...specification.ReminderSpecification) ([]entity.Reminder, error)
	Count(ctx context.Context, specs ...specification.ReminderSpecification) (int, error)
}
