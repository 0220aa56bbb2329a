package feed

import (
	"encoding/json"
	"fmt"
	"time"

	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/pkg/logger"
)

// ViewModel is what the dashboard renders: counters plus the activity log in the
// order the backend delivered it (most recent first).
type ViewModel struct {
	RecentChats       int
	TotalNotes        int
	UpcomingReminders int
	LastActivity      time.Time
	Activities        []entity.Activity
}

// Aggregator merges dashboard snapshots and expands activity entries.
type Aggregator struct {
	logger logger.ILogger
}

// NewAggregator creates a new activity feed aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// Merge builds the view model from a snapshot. Activities are copied, never re-sorted.
func (a *Aggregator) Merge(snapshot entity.DashboardSnapshot) ViewModel {
	activities := make([]entity.Activity, len(snapshot.Activities))
	copy(activities, snapshot.Activities)

	return ViewModel{
		RecentChats:       snapshot.RecentChats,
		TotalNotes:        snapshot.TotalNotes,
		UpcomingReminders: snapshot.UpcomingReminders,
		LastActivity:      snapshot.LastActivity.Time,
		Activities:        activities,
	}
}

type chatData struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Message  string `json:"message"`
	Response string `json:"response"`
}

type noteData struct {
	Content   string          `json:"content"`
	Category  entity.Category `json:"category"`
	Tags      []string        `json:"tags"`
	Completed bool            `json:"completed"`
}

type reminderData struct {
	Description string           `json:"description"`
	Date        entity.Timestamp `json:"date"`
	Priority    entity.Priority  `json:"priority"`
	Completed   bool             `json:"completed"`
}

type searchData struct {
	Query   string `json:"query"`
	Results string `json:"results"`
}

type codeData struct {
	Description string `json:"description"`
	Language    string `json:"language"`
	Code        string `json:"code"`
	Analysis    string `json:"analysis"`
}

// Expand selects the sub-fields of activity.Data that the detail view presents.
func (a *Aggregator) Expand(activity entity.Activity) (Detail, error) {
	header := Header{
		Id:        activity.Id,
		Title:     activity.Title,
		Timestamp: activity.Timestamp.Time,
	}

	switch activity.Type {
	case entity.KindChat:
		var d chatData
		if err := decodeData(activity, &d); err != nil {
			return nil, err
		}
		question, answer := d.Question, d.Answer
		if question == "" {
			question = d.Message
		}
		if answer == "" {
			answer = d.Response
		}
		return ChatDetail{Header: header, Question: question, Answer: answer}, nil

	case entity.KindNote:
		var d noteData
		if err := decodeData(activity, &d); err != nil {
			return nil, err
		}
		return NoteDetail{
			Header:    header,
			Content:   d.Content,
			Category:  d.Category,
			Tags:      d.Tags,
			Completed: d.Completed,
		}, nil

	case entity.KindReminder:
		var d reminderData
		if err := decodeData(activity, &d); err != nil {
			return nil, err
		}
		return ReminderDetail{
			Header:      header,
			Description: d.Description,
			Date:        d.Date.Time,
			Priority:    d.Priority,
			Completed:   d.Completed,
		}, nil

	case entity.KindSearch:
		var d searchData
		if err := decodeData(activity, &d); err != nil {
			return nil, err
		}
		return SearchDetail{Header: header, Query: d.Query, Results: d.Results}, nil

	case entity.KindCode:
		var d codeData
		if err := decodeData(activity, &d); err != nil {
			return nil, err
		}
		return CodeDetail{
			Header:      header,
			Description: d.Description,
			Language:    d.Language,
			Code:        d.Code,
			Analysis:    d.Analysis,
		}, nil
	}

	a.logger.Warn("FEED", "Unknown activity type", map[string]interface{}{
		"activity_id": activity.Id,
		"type":        activity.Type,
	})
	return nil, fmt.Errorf("unknown activity type %q", activity.Type)
}

func decodeData(activity entity.Activity, out any) error {
	if len(activity.Data) == 0 || string(activity.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(activity.Data, out); err != nil {
		return fmt.Errorf("decode %s activity %s: %w", activity.Type, activity.Id, err)
	}
	return nil
}

// CounterDelta is the change between two dashboard view models.
type CounterDelta struct {
	RecentChats       int
	TotalNotes        int
	UpcomingReminders int
}

func Delta(prev, next ViewModel) CounterDelta {
	return CounterDelta{
		RecentChats:       next.RecentChats - prev.RecentChats,
		TotalNotes:        next.TotalNotes - prev.TotalNotes,
		UpcomingReminders: next.UpcomingReminders - prev.UpcomingReminders,
	}
}

func (d CounterDelta) IsZero() bool {
	return d == CounterDelta{}
}
