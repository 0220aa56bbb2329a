package dto

import "time"

type ReminderForm struct {
	Title       string `validate:"required"`
	Description string
	Date        *time.Time `validate:"required"`
	Priority    string     `validate:"omitempty,oneof=low medium high"`
}

type CreateReminderRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // ISO-8601
	Priority    string `json:"priority"`
}
