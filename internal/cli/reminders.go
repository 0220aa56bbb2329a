package cli

import (
	"fmt"
	"strings"
	"time"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"

	"github.com/spf13/cobra"
)

// dateInputLayouts are tried in order; all but RFC3339 are read in local time.
var dateInputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"02/01/2006 15:04",
	"2006-01-02",
	"02/01/2006",
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateInputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognised date %q (use YYYY-MM-DD HH:MM)", s)
}

func newRemindersCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "List and manage upcoming reminders",
	}
	cmd.AddCommand(
		newRemindersListCmd(s),
		newRemindersCreateCmd(s),
		newToggleCmd(s, entity.KindReminder),
		newDeleteCmd(s, entity.KindReminder),
	)
	return cmd
}

func newRemindersListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List upcoming reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.load(cmd)
			if err != nil {
				return err
			}
			renderReminders(s.out, c.Store.Reminders())
			return nil
		},
	}
}

func newRemindersCreateCmd(s *session) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Date        string
		Priority    string
	}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(opts.Date)
			if err != nil {
				return err
			}
			c, err := s.open(cmd)
			if err != nil {
				return err
			}
			reminder, err := c.Coordinator.CreateReminder(cmd.Context(), dto.ReminderForm{
				Title:       opts.Title,
				Description: opts.Description,
				Date:        date,
				Priority:    opts.Priority,
			})
			if err != nil {
				return err
			}
			infoColor.Fprintf(s.out, "Lembrete criado: %s para %s [%s]\n",
				reminder.Title, formatDate(reminder.Date.Time), reminder.Id)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Title, "title", "", "reminder title")
	cmd.Flags().StringVar(&opts.Description, "description", "", "optional details")
	cmd.Flags().StringVar(&opts.Date, "date", "", "due date, e.g. 2026-03-01 15:00")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "low, medium or high")
	return cmd
}
