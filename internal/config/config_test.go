package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ASSISTANT_BACKEND_URL", "http://api.local:9000/")
	t.Setenv("RELOAD_DELAY_MS", "25")
	t.Setenv("CHAT_NOTE_MARKERS", " nota salva , , nota criada")
	t.Setenv("ROLLBACK_FAILED_TOGGLE", "true")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "http://api.local:9000", cfg.Remote.BaseURL)
	assert.Equal(t, 25*time.Millisecond, cfg.Sync.ReloadDelay)
	assert.Equal(t, 60*time.Second, cfg.Remote.RequestTimeout)
	assert.True(t, cfg.Sync.RollbackFailedToggle)
	assert.Equal(t, []string{"nota salva", "nota criada"}, cfg.Chat.NoteMarkers)
	assert.Equal(t, []string{"lembrete criado"}, cfg.Chat.ReminderMarkers)
	assert.True(t, cfg.Chat.MarkerCompat)
}

func TestGetEnvAsListFallsBackOnBlank(t *testing.T) {
	t.Setenv("SOME_LIST", " , ")
	assert.Equal(t, []string{"x"}, getEnvAsList("SOME_LIST", []string{"x"}))
}
