package memory

import (
	"context"
	"sort"
	"sync"

	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/repository/contract"
	"ai-assistant-client/internal/repository/specification"
)

type ReminderRepository struct {
	mu    sync.RWMutex
	items map[string]entity.Reminder
}

var _ contract.ReminderRepository = (*ReminderRepository)(nil)

func NewReminderRepository() *ReminderRepository {
	return &ReminderRepository{items: make(map[string]entity.Reminder)}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *entity.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[reminder.Id] = *reminder
	return nil
}

func (r *ReminderRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reminder, ok := r.items[id]
	if !ok {
		return contract.ErrNotFound
	}
	reminder.Completed = completed
	r.items[id] = reminder
	return nil
}

func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return contract.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ReminderRepository) FindOne(ctx context.Context, id string) (*entity.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reminder, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &reminder, nil
}

func (r *ReminderRepository) FindAll(ctx context.Context, specs ...specification.ReminderSpecification) ([]entity.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Reminder, 0, len(r.items))
	for _, reminder := range r.items {
		if specification.MatchReminder(reminder, specs) {
			out = append(out, reminder)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date.Time)
	})
	return out, nil
}

func (r *ReminderRepository) Count(ctx context.Context, specs ...specification.ReminderSpecification) (int, error) {
	reminders, err := r.FindAll(ctx, specs...)
	return len(reminders), err
}
