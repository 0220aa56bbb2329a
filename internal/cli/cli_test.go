package cli

import (
	"bytes"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"ai-assistant-client/internal/bootstrap"
	"ai-assistant-client/internal/config"
	"ai-assistant-client/internal/pkg/logger"
	"ai-assistant-client/internal/server"

	"github.com/fatih/color"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func stubConfig(t *testing.T) *config.Config {
	t.Helper()
	stubCfg := &config.Config{Stub: config.StubConfig{StructuredEffects: true, CorsAllowedOrigins: "*"}}
	app := server.New(stubCfg, bootstrap.NewStubContainer(stubCfg), logger.NewNopLogger()).GetApp()
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)

	return &config.Config{
		App:    config.AppConfig{EventsTopic: "client.events", DeviceId: "cli-test"},
		Remote: config.RemoteConfig{BaseURL: srv.URL, RequestTimeout: 5 * time.Second},
		Sync: config.SyncConfig{
			ReloadDelay:       5 * time.Millisecond,
			DashboardDebounce: 5 * time.Millisecond,
			GuardLease:        time.Minute,
		},
		Chat: config.ChatConfig{MarkerCompat: true, NoteMarkers: []string{"nota criada"}, ReminderMarkers: []string{"lembrete criado"}},
		Stub: config.StubConfig{JWTSecret: "s3cret"},
	}
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(Options{Config: cfg, Logger: logger.NewNopLogger(), Confirmer: autoConfirmer{}})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var idPattern = regexp.MustCompile(`\[([0-9a-f-]{36})\]`)

func TestNotesCommands(t *testing.T) {
	cfg := stubConfig(t)

	out, err := run(t, cfg, "notes", "create", "--title", "Compras", "--content", "leite", "--tags", "casa, casa, mercado")
	require.NoError(t, err)
	assert.Contains(t, out, "Nota criada: Compras")
	m := idPattern.FindStringSubmatch(out)
	require.Len(t, m, 2)
	id := m[1]

	out, err = run(t, cfg, "notes", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[ ] Compras")
	assert.Contains(t, out, "#casa #mercado")

	out, err = run(t, cfg, "notes", "toggle", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Concluído")

	out, err = run(t, cfg, "notes", "update", id, "--title", "Feira")
	require.NoError(t, err)
	assert.Contains(t, out, "Nota atualizada")

	out, err = run(t, cfg, "notes", "list", "--tag", "mercado")
	require.NoError(t, err)
	assert.Contains(t, out, "[x] Feira")

	out, err = run(t, cfg, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Notas: 1")

	out, err = run(t, cfg, "dashboard", "--expand", id)
	require.NoError(t, err)
	assert.Contains(t, out, "NOTA: Feira")
	assert.Contains(t, out, "Concluído")

	out, err = run(t, cfg, "notes", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Excluído")

	out, err = run(t, cfg, "notes", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Nenhuma nota.")
}

func TestCreateNoteValidationFailsWithoutRequest(t *testing.T) {
	cfg := stubConfig(t)

	out, err := run(t, cfg, "notes", "create", "--content", "sem título")

	require.Error(t, err)
	assert.Contains(t, out, "Preencha os campos obrigatórios.")
}

func TestRemindersCommands(t *testing.T) {
	cfg := stubConfig(t)
	due := time.Now().Add(72 * time.Hour).Format("2006-01-02 15:04")

	out, err := run(t, cfg, "reminders", "create", "--title", "Dentista", "--date", due, "--priority", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Lembrete criado: Dentista")

	out, err = run(t, cfg, "reminders", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Dentista")
	assert.Contains(t, out, "high")

	_, err = run(t, cfg, "reminders", "create", "--title", "Sem data")
	assert.Error(t, err)
}

func TestChatSearchAndActivityDelete(t *testing.T) {
	cfg := stubConfig(t)

	out, err := run(t, cfg, "chat", "-m", "lembrete: Ligar para o médico")
	require.NoError(t, err)
	assert.Contains(t, out, "Lembrete criado: Ligar para o médico")

	out, err = run(t, cfg, "search", "receitas")
	require.NoError(t, err)
	assert.Contains(t, out, `Resultados para "receitas"`)

	out, err = run(t, cfg, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Conversas recentes: 1")
	assert.Contains(t, out, "Lembretes próximos: 1")

	searchLine := regexp.MustCompile(`search\s+receitas.*\[([0-9a-f-]{36})\]`).FindStringSubmatch(out)
	require.Len(t, searchLine, 2)
	out, err = run(t, cfg, "activity", "delete", "search", searchLine[1])
	require.NoError(t, err)
	assert.Contains(t, out, "Excluído")

	_, err = run(t, cfg, "activity", "delete", "bogus", "x")
	assert.Error(t, err)
}

func TestHealthAndToken(t *testing.T) {
	cfg := stubConfig(t)

	out, err := run(t, cfg, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: AI Assistant stub API is running")

	out, err = run(t, cfg, "token", "--subject", "me")
	require.NoError(t, err)
	assert.Regexp(t, `^[\w-]+\.[\w-]+\.[\w-]+\n$`, out)

	cfg.Stub.JWTSecret = ""
	_, err = run(t, cfg, "token")
	assert.EqualError(t, err, "JWT_SECRET is not set")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-03-01 15:00", time.Date(2026, 3, 1, 15, 0, 0, 0, time.Local)},
		{"2026-03-01T15:00", time.Date(2026, 3, 1, 15, 0, 0, 0, time.Local)},
		{"01/03/2026 15:00", time.Date(2026, 3, 1, 15, 0, 0, 0, time.Local)},
		{"2026-03-01", time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)},
		{"2026-03-01T15:00:00Z", time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDate(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(*got), "got %s", got)
		})
	}

	got, err := parseDate("  ")
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseDate("amanhã")
	assert.Error(t, err)
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "agora", timeAgo(now.Add(-10*time.Second), now))
	assert.Equal(t, "há 5 min", timeAgo(now.Add(-5*time.Minute), now))
	assert.Equal(t, "há 3 h", timeAgo(now.Add(-3*time.Hour), now))
	assert.Equal(t, "", timeAgo(time.Time{}, now))
}
