package chateffect

import (
	"strings"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"
)

const (
	noteConfirmation     = "📝 Nota criada pelo assistente"
	reminderConfirmation = "⏰ Lembrete criado pelo assistente"
)

// Detection lists the caches a chat reply invalidated.
type Detection struct {
	ReloadNotes     bool
	ReloadReminders bool
	Confirmations   []string
	// Structured is true when the decision came from typed effects rather than reply text.
	Structured bool
}

func (d Detection) Any() bool {
	return d.ReloadNotes || d.ReloadReminders
}

type Config struct {
	// MarkerCompat enables substring matching on the reply when no typed effects are present.
	MarkerCompat    bool
	NoteMarkers     []string
	ReminderMarkers []string
}

type Detector struct {
	compat          bool
	noteMarkers     []string
	reminderMarkers []string
}

func NewDetector(cfg Config) *Detector {
	return &Detector{
		compat:          cfg.MarkerCompat,
		noteMarkers:     normalise(cfg.NoteMarkers),
		reminderMarkers: normalise(cfg.ReminderMarkers),
	}
}

// Detect decides which collections to reload after a chat turn. Typed effects, when present,
// are authoritative and the reply text is not inspected.
func (d *Detector) Detect(reply string, effects []dto.ChatEffect) Detection {
	if len(effects) > 0 {
		var det Detection
		det.Structured = true
		for _, e := range effects {
			switch e.Kind {
			case entity.KindNote:
				det.ReloadNotes = true
			case entity.KindReminder:
				det.ReloadReminders = true
			}
		}
		return withConfirmations(det)
	}

	if !d.compat {
		return Detection{}
	}

	lower := strings.ToLower(reply)
	return withConfirmations(Detection{
		ReloadNotes:     containsAny(lower, d.noteMarkers),
		ReloadReminders: containsAny(lower, d.reminderMarkers),
	})
}

func withConfirmations(det Detection) Detection {
	if det.ReloadNotes {
		det.Confirmations = append(det.Confirmations, noteConfirmation)
	}
	if det.ReloadReminders {
		det.Confirmations = append(det.Confirmations, reminderConfirmation)
	}
	return det
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func normalise(markers []string) []string {
	out := make([]string, 0, len(markers))
	for _, m := range markers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			out = append(out, m)
		}
	}
	return out
}
