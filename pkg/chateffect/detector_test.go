package chateffect

import (
	"testing"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"

	"github.com/stretchr/testify/assert"
)

func defaultDetector(compat bool) *Detector {
	return NewDetector(Config{
		MarkerCompat:    compat,
		NoteMarkers:     []string{"Nota criada"},
		ReminderMarkers: []string{"lembrete criado", "  "},
	})
}

func TestDetectFromMarkers(t *testing.T) {
	tests := []struct {
		name          string
		reply         string
		wantNotes     bool
		wantReminders bool
	}{
		{"no marker", "Claro! Como posso ajudar?", false, false},
		{"note only", "✅ Nota criada: Lista de compras", true, false},
		{"reminder only", "⏰ LEMBRETE CRIADO para amanhã às 15h", false, true},
		{"both", "Nota criada e lembrete criado.", true, true},
		{"unrelated words", "Criei uma nota mental sobre isso", false, false},
	}

	d := defaultDetector(true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.reply, nil)
			assert.Equal(t, tt.wantNotes, got.ReloadNotes)
			assert.Equal(t, tt.wantReminders, got.ReloadReminders)
			assert.False(t, got.Structured)
			assert.Len(t, got.Confirmations, btoi(tt.wantNotes)+btoi(tt.wantReminders))
		})
	}
}

func TestStructuredEffectsWinOverText(t *testing.T) {
	d := defaultDetector(true)

	got := d.Detect("Nota criada!", []dto.ChatEffect{{Kind: entity.KindReminder, EntityId: "r1"}})

	assert.True(t, got.Structured)
	assert.False(t, got.ReloadNotes)
	assert.True(t, got.ReloadReminders)
	assert.Equal(t, []string{reminderConfirmation}, got.Confirmations)
}

func TestCompatShimDisabled(t *testing.T) {
	d := defaultDetector(false)

	assert.False(t, d.Detect("Nota criada", nil).Any())
	assert.True(t, d.Detect("", []dto.ChatEffect{{Kind: entity.KindNote}}).ReloadNotes)
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
