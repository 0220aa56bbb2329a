package contract

import (
	"context"
	"errors"

	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/repository/specification"
)

var ErrNotFound = errors.New("record not found")

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, id string) (*entity.Note, error)
	// FindAll returns matching notes, newest first.
	FindAll(ctx context.Context, specs ...specification.NoteSpecification) ([]entity.Note, error)
	Count(ctx context.Context, specs ...specification.NoteSpecification) (int, error)
}
