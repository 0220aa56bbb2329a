package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/repository/contract"
	"ai-assistant-client/internal/repository/specification"
)

type NoteRepository struct {
	mu    sync.RWMutex
	items map[string]entity.Note
}

var _ contract.NoteRepository = (*NoteRepository)(nil)

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{items: make(map[string]entity.Note)}
}

func (r *NoteRepository) Create(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[note.Id] = cloneNote(*note)
	return nil
}

func (r *NoteRepository) Update(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[note.Id]; !ok {
		return contract.ErrNotFound
	}
	r.items[note.Id] = cloneNote(*note)
	return nil
}

func (r *NoteRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	note, ok := r.items[id]
	if !ok {
		return contract.ErrNotFound
	}
	note.Completed = completed
	note.UpdatedAt = entity.NewTimestamp(time.Now())
	r.items[id] = note
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return contract.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *NoteRepository) FindOne(ctx context.Context, id string) (*entity.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	note, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	note = cloneNote(note)
	return &note, nil
}

func (r *NoteRepository) FindAll(ctx context.Context, specs ...specification.NoteSpecification) ([]entity.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Note, 0, len(r.items))
	for _, note := range r.items {
		if specification.MatchNote(note, specs) {
			out = append(out, cloneNote(note))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	return out, nil
}

func (r *NoteRepository) Count(ctx context.Context, specs ...specification.NoteSpecification) (int, error) {
	notes, err := r.FindAll(ctx, specs...)
	return len(notes), err
}

func cloneNote(n entity.Note) entity.Note {
	n.Tags = append([]string(nil), n.Tags...)
	return n
}
