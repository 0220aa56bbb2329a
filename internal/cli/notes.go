package cli

import (
	"fmt"
	"strings"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/entity"

	"github.com/spf13/cobra"
)

type noteFlags struct {
	Title    string
	Content  string
	Category string
	Tags     string
}

func (f *noteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Title, "title", "", "note title")
	cmd.Flags().StringVar(&f.Content, "content", "", "note content")
	cmd.Flags().StringVar(&f.Category, "category", "", "general, work, personal or study")
	cmd.Flags().StringVar(&f.Tags, "tags", "", "comma separated tags")
}

func newNotesCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List and manage notes",
	}
	cmd.AddCommand(
		newNotesListCmd(s),
		newNotesCreateCmd(s),
		newNotesUpdateCmd(s),
		newToggleCmd(s, entity.KindNote),
		newDeleteCmd(s, entity.KindNote),
	)
	return cmd
}

func newNotesListCmd(s *session) *cobra.Command {
	var filter dto.NoteFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter.Category == "" && filter.Tag == "" {
				c, err := s.load(cmd)
				if err != nil {
					return err
				}
				renderNotes(s.out, c.Store.Notes())
				return nil
			}

			// filtered listings are a one-off view and do not replace the cached collection
			c, err := s.open(cmd)
			if err != nil {
				return err
			}
			notes, err := c.Client.ListNotes(cmd.Context(), filter)
			if err != nil {
				return err
			}
			renderNotes(s.out, notes)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "", "only this category")
	cmd.Flags().StringVar(&filter.Tag, "tag", "", "only notes with this tag")
	return cmd
}

func newNotesCreateCmd(s *session) *cobra.Command {
	var f noteFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.open(cmd)
			if err != nil {
				return err
			}
			note, err := c.Coordinator.CreateNote(cmd.Context(), dto.NoteForm{
				Title:    f.Title,
				Content:  f.Content,
				Category: f.Category,
				Tags:     f.Tags,
			})
			if err != nil {
				return err
			}
			infoColor.Fprintf(s.out, "Nota criada: %s [%s]\n", note.Title, note.Id)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newNotesUpdateCmd(s *session) *cobra.Command {
	var f noteFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a note; omitted flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.load(cmd)
			if err != nil {
				return err
			}
			current, ok := c.Store.Note(args[0])
			if !ok {
				return fmt.Errorf("note %s not found", args[0])
			}

			form := dto.NoteForm{
				Title:    current.Title,
				Content:  current.Content,
				Category: string(current.Category),
				Tags:     strings.Join(current.Tags, ", "),
			}
			if cmd.Flags().Changed("title") {
				form.Title = f.Title
			}
			if cmd.Flags().Changed("content") {
				form.Content = f.Content
			}
			if cmd.Flags().Changed("category") {
				form.Category = f.Category
			}
			if cmd.Flags().Changed("tags") {
				form.Tags = f.Tags
			}

			if err := c.Coordinator.UpdateNote(cmd.Context(), args[0], form); err != nil {
				return err
			}
			infoColor.Fprintln(s.out, "Nota atualizada")
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

// newToggleCmd flips the completion flag of a note or reminder from its cached value.
func newToggleCmd(s *session, kind entity.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: fmt.Sprintf("Mark a %s as done or pending", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.load(cmd)
			if err != nil {
				return err
			}

			var completed, ok bool
			switch kind {
			case entity.KindNote:
				var n entity.Note
				n, ok = c.Store.Note(args[0])
				completed = n.Completed
			case entity.KindReminder:
				var r entity.Reminder
				r, ok = c.Store.Reminder(args[0])
				completed = r.Completed
			}
			if !ok {
				return fmt.Errorf("%s %s not found", kind, args[0])
			}

			if err := c.Coordinator.ToggleComplete(cmd.Context(), kind, args[0], completed); err != nil {
				return err
			}
			infoColor.Fprintln(s.out, completedLabel(!completed))
			return nil
		},
	}
}

func newDeleteCmd(s *session, kind entity.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: fmt.Sprintf("Delete a %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.deleteEntity(cmd, kind, args[0])
		},
	}
}

func (s *session) deleteEntity(cmd *cobra.Command, kind entity.Kind, id string) error {
	c, err := s.open(cmd)
	if err != nil {
		return err
	}
	if err := c.Coordinator.DeleteEntity(cmd.Context(), kind, id); err != nil {
		return err
	}
	if s.answers.accepted {
		infoColor.Fprintln(s.out, "Excluído")
	}
	return nil
}
