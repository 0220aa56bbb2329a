package service

import (
	"context"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/pkg/logger"
	"ai-assistant-client/internal/remote"
	"ai-assistant-client/internal/repository/cache"
	"ai-assistant-client/internal/state"
	"ai-assistant-client/pkg/feed"
	"ai-assistant-client/pkg/guard"
)

// ILoaderService fetches authoritative collections and installs them in the store.
type ILoaderService interface {
	LoadNotes(ctx context.Context) error
	LoadReminders(ctx context.Context) error
	LoadDashboard(ctx context.Context) error
	LoadAll(ctx context.Context) error
	// WarmDashboard installs the cached snapshot, if any. It reports whether one was found.
	WarmDashboard(ctx context.Context) bool
}

type loaderService struct {
	client     remote.IClient
	store      *state.Store
	aggregator *feed.Aggregator
	guards     *guard.Families
	cache      cache.IDashboardCache
	logger     logger.ILogger
}

// NewLoaderService wires the loader. dashboardCache may be nil.
func NewLoaderService(
	client remote.IClient,
	store *state.Store,
	aggregator *feed.Aggregator,
	guards *guard.Families,
	dashboardCache cache.IDashboardCache,
	log logger.ILogger,
) ILoaderService {
	return &loaderService{
		client:     client,
		store:      store,
		aggregator: aggregator,
		guards:     guards,
		cache:      dashboardCache,
		logger:     log,
	}
}

func (ls *loaderService) LoadNotes(ctx context.Context) error {
	gen := ls.store.NextGeneration()
	notes, err := ls.client.ListNotes(ctx, dto.NoteFilter{})
	if err != nil {
		ls.logger.Warn("LOADER", "Failed to load notes", map[string]interface{}{"error": err.Error()})
		return err
	}
	if !ls.store.ReplaceNotes(gen, notes) {
		ls.logger.Debug("LOADER", "Discarded stale notes result", map[string]interface{}{"generation": gen})
		return nil
	}
	ls.pruneGuards()
	return nil
}

func (ls *loaderService) LoadReminders(ctx context.Context) error {
	gen := ls.store.NextGeneration()
	reminders, err := ls.client.ListReminders(ctx, true)
	if err != nil {
		ls.logger.Warn("LOADER", "Failed to load reminders", map[string]interface{}{"error": err.Error()})
		return err
	}
	if !ls.store.ReplaceReminders(gen, reminders) {
		ls.logger.Debug("LOADER", "Discarded stale reminders result", map[string]interface{}{"generation": gen})
		return nil
	}
	ls.pruneGuards()
	return nil
}

func (ls *loaderService) LoadDashboard(ctx context.Context) error {
	gen := ls.store.NextGeneration()
	snapshot, err := ls.client.Dashboard(ctx)
	if err != nil {
		ls.logger.Warn("LOADER", "Failed to load dashboard", map[string]interface{}{"error": err.Error()})
		return err
	}
	if !ls.store.ReplaceDashboard(gen, ls.aggregator.Merge(snapshot)) {
		ls.logger.Debug("LOADER", "Discarded stale dashboard result", map[string]interface{}{"generation": gen})
		return nil
	}
	ls.pruneGuards()

	if ls.cache != nil {
		if err := ls.cache.Save(ctx, snapshot); err != nil {
			ls.logger.Warn("LOADER", "Failed to cache dashboard", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

// LoadAll runs the three loads and returns the first error; a failure in one does not stop the others.
func (ls *loaderService) LoadAll(ctx context.Context) error {
	var firstErr error
	for _, load := range []func(context.Context) error{ls.LoadDashboard, ls.LoadNotes, ls.LoadReminders} {
		if err := load(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (ls *loaderService) WarmDashboard(ctx context.Context) bool {
	if ls.cache == nil {
		return false
	}
	snapshot, err := ls.cache.Load(ctx)
	if err != nil {
		ls.logger.Warn("LOADER", "Failed to read cached dashboard", map[string]interface{}{"error": err.Error()})
		return false
	}
	if snapshot == nil {
		return false
	}
	return ls.store.ReplaceDashboard(ls.store.NextGeneration(), ls.aggregator.Merge(*snapshot))
}

// pruneGuards reclaims markers whose lease expired so the guard maps stay bounded over a
// long session. Markers of requests still in flight survive even when a reload no longer
// lists their entity.
func (ls *loaderService) pruneGuards() {
	if ls.guards == nil {
		return
	}
	pruned := ls.guards.Toggle.Prune() + ls.guards.Delete.Prune()
	if pruned > 0 {
		ls.logger.Debug("LOADER", "Pruned expired guards", map[string]interface{}{"count": pruned})
	}
}
