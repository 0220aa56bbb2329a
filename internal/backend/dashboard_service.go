package backend

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"ai-assistant-client/internal/entity"
	"ai-assistant-client/internal/repository/contract"
	"ai-assistant-client/internal/repository/specification"
)

const (
	maxActivities    = 20
	recentChatWindow = 7 * 24 * time.Hour
)

type IDashboardService interface {
	Snapshot(ctx context.Context) (*entity.DashboardSnapshot, error)
}

type dashboardService struct {
	notes      contract.NoteRepository
	reminders  contract.ReminderRepository
	activities contract.ActivityRepository
	now        func() time.Time
}

func NewDashboardService(
	notes contract.NoteRepository,
	reminders contract.ReminderRepository,
	activities contract.ActivityRepository,
) IDashboardService {
	return &dashboardService{notes: notes, reminders: reminders, activities: activities, now: time.Now}
}

// Snapshot projects current notes and reminders into activities alongside the logged
// chat, search and code entries, most recent first.
func (s *dashboardService) Snapshot(ctx context.Context) (*entity.DashboardSnapshot, error) {
	now := s.now()

	recentChats, err := s.activities.CountSince(ctx, entity.KindChat, now.Add(-recentChatWindow))
	if err != nil {
		return nil, err
	}
	notes, err := s.notes.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	reminders, err := s.reminders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	logged, err := s.activities.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	upcoming := 0
	activities := make([]entity.Activity, 0, len(notes)+len(reminders)+len(logged))
	for _, n := range notes {
		activities = append(activities, noteActivity(n))
	}
	for _, r := range reminders {
		if (specification.Upcoming{Now: now}).IsSatisfiedBy(r) {
			upcoming++
		}
		activities = append(activities, reminderActivity(r))
	}
	activities = append(activities, logged...)

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp.Time)
	})
	if len(activities) > maxActivities {
		activities = activities[:maxActivities]
	}

	return &entity.DashboardSnapshot{
		RecentChats:       recentChats,
		TotalNotes:        len(notes),
		UpcomingReminders: upcoming,
		LastActivity:      entity.NewTimestamp(now),
		Activities:        activities,
	}, nil
}

func noteActivity(n entity.Note) entity.Activity {
	data, _ := json.Marshal(map[string]interface{}{
		"content":   n.Content,
		"category":  n.Category,
		"tags":      n.Tags,
		"completed": n.Completed,
	})
	ts := n.UpdatedAt
	if ts.IsZero() {
		ts = n.CreatedAt
	}
	return entity.Activity{
		Id:          n.Id,
		Type:        entity.KindNote,
		Icon:        "📝",
		Title:       n.Title,
		Description: truncate(n.Content, 120),
		Timestamp:   ts,
		Data:        data,
	}
}

func reminderActivity(r entity.Reminder) entity.Activity {
	data, _ := json.Marshal(map[string]interface{}{
		"description": r.Description,
		"date":        r.Date,
		"priority":    r.Priority,
		"completed":   r.Completed,
	})
	return entity.Activity{
		Id:          r.Id,
		Type:        entity.KindReminder,
		Icon:        "⏰",
		Title:       r.Title,
		Description: r.Description,
		Timestamp:   r.CreatedAt,
		Data:        data,
	}
}
