package specification

import (
	"strings"
	"time"

	"ai-assistant-client/internal/entity"
)

// NoteSpecification filters notes held by a repository.
type NoteSpecification interface {
	IsSatisfiedBy(note entity.Note) bool
}

// ReminderSpecification filters reminders held by a repository.
type ReminderSpecification interface {
	IsSatisfiedBy(reminder entity.Reminder) bool
}

type ByCategory struct {
	Category entity.Category
}

func (s ByCategory) IsSatisfiedBy(note entity.Note) bool {
	return note.Category == s.Category
}

type HasTag struct {
	Tag string
}

func (s HasTag) IsSatisfiedBy(note entity.Note) bool {
	for _, t := range note.Tags {
		if strings.EqualFold(t, s.Tag) {
			return true
		}
	}
	return false
}

// Upcoming matches open reminders due at or after Now.
type Upcoming struct {
	Now time.Time
}

func (s Upcoming) IsSatisfiedBy(reminder entity.Reminder) bool {
	return !reminder.Completed && !reminder.Date.Before(s.Now)
}

func MatchNote(note entity.Note, specs []NoteSpecification) bool {
	for _, s := range specs {
		if !s.IsSatisfiedBy(note) {
			return false
		}
	}
	return true
}

func MatchReminder(reminder entity.Reminder, specs []ReminderSpecification) bool {
	for _, s := range specs {
		if !s.IsSatisfiedBy(reminder) {
			return false
		}
	}
	return true
}
