package server

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ai-assistant-client/internal/bootstrap"
	"ai-assistant-client/internal/config"
	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/pkg/logger"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingNotifier struct {
	mu     sync.Mutex
	alerts []string
	infos  []string
}

func (n *capturingNotifier) Alert(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, msg)
}

func (n *capturingNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, msg)
}

func (n *capturingNotifier) Alerts() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.alerts...)
}

type yesConfirmer struct{}

func (yesConfirmer) Confirm(context.Context, string) (bool, error) { return true, nil }

// startSession runs the stub API on a real listener and connects a client session to it.
func startSession(t *testing.T, structuredEffects bool) (*bootstrap.Container, *capturingNotifier) {
	t.Helper()
	stubCfg := &config.Config{Stub: config.StubConfig{StructuredEffects: structuredEffects, CorsAllowedOrigins: "*"}}
	app := New(stubCfg, bootstrap.NewStubContainer(stubCfg), logger.NewNopLogger()).GetApp()
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		App:    config.AppConfig{EventsTopic: "client.events", DeviceId: "test"},
		Remote: config.RemoteConfig{BaseURL: srv.URL, RequestTimeout: 5 * time.Second},
		Sync: config.SyncConfig{
			ReloadDelay:       10 * time.Millisecond,
			DashboardDebounce: 10 * time.Millisecond,
			GuardLease:        time.Minute,
		},
		Chat: config.ChatConfig{
			MarkerCompat:    true,
			NoteMarkers:     []string{"nota criada"},
			ReminderMarkers: []string{"lembrete criado"},
		},
	}
	notifier := &capturingNotifier{}
	c, err := bootstrap.NewContainer(cfg, logger.NewNopLogger(), bootstrap.Ports{Notifier: notifier, Confirmer: yesConfirmer{}})
	require.NoError(t, err)
	t.Cleanup(c.Close)

	require.NoError(t, c.Start(context.Background()))
	return c, notifier
}

func TestSessionConvergesAfterMutations(t *testing.T) {
	c, notifier := startSession(t, true)
	ctx := context.Background()
	assert.Equal(t, 0, c.Store.Dashboard().TotalNotes)

	note, err := c.Coordinator.CreateNote(ctx, dto.NoteForm{Title: "Compras", Content: "leite, pão", Tags: "casa, mercado"})
	require.NoError(t, err)
	assert.Equal(t, []string{"casa", "mercado"}, note.Tags)

	require.Eventually(t, func() bool {
		return c.Store.Dashboard().TotalNotes == 1 && len(c.Store.Notes()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	turn, err := c.Chat.Send(ctx, "lembrete: Ligar para o médico")
	require.NoError(t, err)
	assert.True(t, turn.Detection.Structured)
	assert.True(t, turn.Detection.ReloadReminders)

	require.Eventually(t, func() bool {
		return len(c.Store.Reminders()) == 1 && c.Store.Dashboard().UpcomingReminders == 1
	}, 2*time.Second, 10*time.Millisecond)

	reminder := c.Store.Reminders()[0]
	require.NoError(t, c.Coordinator.ToggleComplete(ctx, entity.KindReminder, reminder.Id, false))

	// completed reminders drop out of the upcoming list
	require.Eventually(t, func() bool {
		return len(c.Store.Reminders()) == 0 && c.Store.Dashboard().UpcomingReminders == 0
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, c.Coordinator.DeleteEntity(ctx, entity.KindNote, note.Id))
	assert.Empty(t, c.Store.Notes())

	require.Eventually(t, func() bool {
		return c.Store.Dashboard().TotalNotes == 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, notifier.Alerts())
}

func TestMarkerShimReloadsWithoutEffects(t *testing.T) {
	c, _ := startSession(t, false)

	turn, err := c.Chat.Send(context.Background(), "nota: Ideias | app de receitas")
	require.NoError(t, err)
	assert.False(t, turn.Detection.Structured)
	assert.True(t, turn.Detection.ReloadNotes)

	require.Eventually(t, func() bool {
		notes := c.Store.Notes()
		return len(notes) == 1 && notes[0].Title == "Ideias"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDeletingMissingEntityAlertsAndKeepsState(t *testing.T) {
	c, notifier := startSession(t, true)

	err := c.Coordinator.DeleteEntity(context.Background(), entity.KindNote, "missing")

	require.Error(t, err)
	require.Len(t, notifier.Alerts(), 1)
	assert.Contains(t, notifier.Alerts()[0], "Note not found")
}
