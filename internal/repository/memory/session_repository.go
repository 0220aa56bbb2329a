package memory

import (
	"context"
	"sync"
	"time"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps chat history per session; idle sessions expire.
type SessionRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

var _ contract.ChatSessionRepository = (*SessionRepository)(nil)

func NewSessionRepository() *SessionRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Append(ctx context.Context, sessionId string, item dto.ChatHistoryItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var history []dto.ChatHistoryItem
	if x, found := r.cache.Get(sessionId); found {
		history = x.([]dto.ChatHistoryItem)
	}
	history = append(history, item)
	r.cache.Set(sessionId, history, cache.DefaultExpiration)
}

func (r *SessionRepository) History(ctx context.Context, sessionId string) []dto.ChatHistoryItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	x, found := r.cache.Get(sessionId)
	if !found {
		return []dto.ChatHistoryItem{}
	}
	history := x.([]dto.ChatHistoryItem)
	return append([]dto.ChatHistoryItem(nil), history...)
}
