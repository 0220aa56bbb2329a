package feed

import (
	"time"

	"ai-assistant-client/internal/entity"
)

// Detail is the typed payload shown when an activity entry is opened.
type Detail interface {
	Kind() entity.Kind
	EntityId() string
}

// Header carries the fields every detail view shows.
type Header struct {
	Id        string
	Title     string
	Timestamp time.Time
}

func (h Header) EntityId() string {
	return h.Id
}

type ChatDetail struct {
	Header
	Question string
	Answer   string
}

func (ChatDetail) Kind() entity.Kind { return entity.KindChat }

type NoteDetail struct {
	Header
	Content   string
	Category  entity.Category
	Tags      []string
	Completed bool
}

func (NoteDetail) Kind() entity.Kind { return entity.KindNote }

type ReminderDetail struct {
	Header
	Description string
	Date        time.Time
	Priority    entity.Priority
	Completed   bool
}

func (ReminderDetail) Kind() entity.Kind { return entity.KindReminder }

type SearchDetail struct {
	Header
	Query   string
	Results string
}

func (SearchDetail) Kind() entity.Kind { return entity.KindSearch }

type CodeDetail struct {
	Header
	Description string
	Language    string
	Code        string
	Analysis    string
}

func (CodeDetail) Kind() entity.Kind { return entity.KindCode }

// WithCompleted returns a copy of d with its completion flag set. The second result is
// false when the detail has no completion toggle.
func WithCompleted(d Detail, completed bool) (Detail, bool) {
	switch v := d.(type) {
	case NoteDetail:
		v.Completed = completed
		return v, true
	case ReminderDetail:
		v.Completed = completed
		return v, true
	default:
		return d, false
	}
}
