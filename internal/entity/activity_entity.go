package entity

import "encoding/json"

// Activity is a read-only log entry assembled by the backend. Data is interpreted
// according to Type; see the feed package.
type Activity struct {
	Id          string          `json:"id"`
	Type        Kind            `json:"type"`
	Icon        string          `json:"icon"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Timestamp   Timestamp       `json:"timestamp"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// DashboardSnapshot is always replaced wholesale.
type DashboardSnapshot struct {
	RecentChats       int        `json:"recent_chats"`
	TotalNotes        int        `json:"total_notes"`
	UpcomingReminders int        `json:"upcoming_reminders"`
	LastActivity      Timestamp  `json:"last_activity"`
	Activities        []Activity `json:"activities"`
}
