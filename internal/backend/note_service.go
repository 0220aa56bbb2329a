package backend

import (
	"context"
	"time"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/repository/contract"
	"ai-assistant-client/internal/repository/specification"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*entity.Note, error)
	List(ctx context.Context, filter dto.NoteFilter) ([]entity.Note, error)
	Update(ctx context.Context, id string, req *dto.UpdateNoteRequest) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}

type noteService struct {
	notes contract.NoteRepository
}

func NewNoteService(notes contract.NoteRepository) INoteService {
	return &noteService{notes: notes}
}

func (s *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*entity.Note, error) {
	now := entity.NewTimestamp(time.Now())
	note := entity.Note{
		Id:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		Category:  categoryOrDefault(req.Category),
		Tags:      nonNilTags(req.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.notes.Create(ctx, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *noteService) List(ctx context.Context, filter dto.NoteFilter) ([]entity.Note, error) {
	var specs []specification.NoteSpecification
	if filter.Category != "" {
		specs = append(specs, specification.ByCategory{Category: entity.Category(filter.Category)})
	}
	if filter.Tag != "" {
		specs = append(specs, specification.HasTag{Tag: filter.Tag})
	}
	return s.notes.FindAll(ctx, specs...)
}

func (s *noteService) Update(ctx context.Context, id string, req *dto.UpdateNoteRequest) error {
	existing, err := s.notes.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("Note")
	}
	existing.Title = req.Title
	existing.Content = req.Content
	existing.Category = categoryOrDefault(req.Category)
	existing.Tags = nonNilTags(req.Tags)
	existing.UpdatedAt = entity.NewTimestamp(time.Now())
	return mapNotFound(s.notes.Update(ctx, existing), "Note")
}

func (s *noteService) SetCompleted(ctx context.Context, id string, completed bool) error {
	return mapNotFound(s.notes.SetCompleted(ctx, id, completed), "Note")
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	return mapNotFound(s.notes.Delete(ctx, id), "Note")
}

func categoryOrDefault(c string) entity.Category {
	if c == "" {
		return entity.CategoryGeneral
	}
	return entity.Category(c)
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
