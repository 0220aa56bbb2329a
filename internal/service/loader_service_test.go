package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/pkg/logger"
	"ai-assistant-client/internal/state"
	"ai-assistant-client/pkg/feed"
	"ai-assistant-client/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryDashboardCache struct {
	saved *entity.DashboardSnapshot
}

func (c *memoryDashboardCache) Save(ctx context.Context, snapshot entity.DashboardSnapshot) error {
	c.saved = &snapshot
	return nil
}

func (c *memoryDashboardCache) Load(ctx context.Context) (*entity.DashboardSnapshot, error) {
	return c.saved, nil
}

func TestLoadDashboardMergesAndCaches(t *testing.T) {
	client := &fakeClient{dashboard: func() (entity.DashboardSnapshot, error) {
		return entity.DashboardSnapshot{
			TotalNotes: 2,
			Activities: []entity.Activity{{Id: "b", Type: entity.KindNote}, {Id: "a", Type: entity.KindChat}},
		}, nil
	}}
	store := state.NewStore()
	cache := &memoryDashboardCache{}
	ls := NewLoaderService(client, store, feed.NewAggregator(logger.NewNopLogger()), guard.NewFamilies(time.Minute), cache, logger.NewNopLogger())

	require.NoError(t, ls.LoadDashboard(context.Background()))

	vm := store.Dashboard()
	assert.Equal(t, 2, vm.TotalNotes)
	assert.Equal(t, "b", vm.Activities[0].Id, "delivered order is kept")
	require.NotNil(t, cache.saved)
	assert.Equal(t, 2, cache.saved.TotalNotes)
}

func TestWarmDashboardUsesCache(t *testing.T) {
	store := state.NewStore()
	cache := &memoryDashboardCache{saved: &entity.DashboardSnapshot{UpcomingReminders: 4}}
	ls := NewLoaderService(&fakeClient{}, store, feed.NewAggregator(logger.NewNopLogger()), nil, cache, logger.NewNopLogger())

	assert.True(t, ls.WarmDashboard(context.Background()))
	assert.Equal(t, 4, store.Dashboard().UpcomingReminders)

	withoutCache := NewLoaderService(&fakeClient{}, store, feed.NewAggregator(logger.NewNopLogger()), nil, nil, logger.NewNopLogger())
	assert.False(t, withoutCache.WarmDashboard(context.Background()))
}

func TestLoadNotesKeepsGuardsOfVanishedEntitiesUntilRelease(t *testing.T) {
	guards := guard.NewFamilies(time.Minute)
	key := guard.Key("note", "gone")
	guards.Delete.TryAcquire(key)

	client := &fakeClient{listNotes: func() ([]entity.Note, error) {
		return []entity.Note{{Id: "kept"}}, nil
	}}
	ls := NewLoaderService(client, state.NewStore(), feed.NewAggregator(logger.NewNopLogger()), guards, nil, logger.NewNopLogger())

	require.NoError(t, ls.LoadNotes(context.Background()))
	assert.True(t, guards.Delete.Held(key), "a request in flight keeps its marker")

	guards.Delete.Release(key)
	assert.Equal(t, 0, guards.Delete.Len())
}

func TestLoadFailureKeepsPreviousState(t *testing.T) {
	store := state.NewStore()
	store.ReplaceReminders(store.NextGeneration(), []entity.Reminder{{Id: "r1"}})
	client := &fakeClient{listReminders: func() ([]entity.Reminder, error) {
		return nil, errors.New("offline")
	}}
	ls := NewLoaderService(client, store, feed.NewAggregator(logger.NewNopLogger()), nil, nil, logger.NewNopLogger())

	assert.Error(t, ls.LoadReminders(context.Background()))
	assert.Len(t, store.Reminders(), 1)
}

func TestOverlappingLoadsKeepNewestGeneration(t *testing.T) {
	store := state.NewStore()
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	calls := 0
	client := &fakeClient{listNotes: func() ([]entity.Note, error) {
		calls++
		if calls == 1 {
			close(firstStarted)
			<-releaseFirst
			return []entity.Note{{Id: "old"}}, nil
		}
		return []entity.Note{{Id: "new"}}, nil
	}}
	ls := NewLoaderService(client, store, feed.NewAggregator(logger.NewNopLogger()), nil, nil, logger.NewNopLogger())

	done := make(chan error)
	go func() { done <- ls.LoadNotes(context.Background()) }()
	<-firstStarted

	require.NoError(t, ls.LoadNotes(context.Background()))
	close(releaseFirst)
	require.NoError(t, <-done)

	notes := store.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "new", notes[0].Id, "the older read resolving last must not win")
}

func TestLoadAllContinuesPastFailures(t *testing.T) {
	client := &fakeClient{
		dashboard: func() (entity.DashboardSnapshot, error) { return entity.DashboardSnapshot{}, errors.New("down") },
		listNotes: func() ([]entity.Note, error) { return []entity.Note{{Id: "n1"}}, nil },
	}
	store := state.NewStore()
	ls := NewLoaderService(client, store, feed.NewAggregator(logger.NewNopLogger()), nil, nil, logger.NewNopLogger())

	assert.EqualError(t, ls.LoadAll(context.Background()), "down")
	assert.Len(t, store.Notes(), 1)
	assert.Equal(t, []string{"dashboard", "list notes", "list reminders"}, client.Calls())
}
