package memory

import (
	"context"
	"sync"
	"time"

	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/repository/contract"
)

// ActivityRepository is an append-only log with deletion by (kind, id).
type ActivityRepository struct {
	mu    sync.RWMutex
	items []entity.Activity
}

var _ contract.ActivityRepository = (*ActivityRepository)(nil)

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

func (r *ActivityRepository) Append(ctx context.Context, activity entity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, activity)
	return nil
}

func (r *ActivityRepository) Delete(ctx context.Context, kind entity.Kind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.items {
		if a.Type == kind && a.Id == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return contract.ErrNotFound
}

func (r *ActivityRepository) FindAll(ctx context.Context) ([]entity.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Activity, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *ActivityRepository) CountSince(ctx context.Context, kind entity.Kind, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, a := range r.items {
		if a.Type == kind && !a.Timestamp.Before(since) {
			n++
		}
	}
	return n, nil
}
