package cli

import (
	"ai-assistant-client/internal/entity"

	"github.com/spf13/cobra"
)

func newActivityCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Manage entries of the activity feed",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "delete KIND ID",
		Short: "Delete a feed entry (chat, search, code, note or reminder)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := entity.ParseKind(args[0])
			if err != nil {
				return err
			}
			return s.deleteEntity(cmd, kind, args[1])
		},
	})
	return cmd
}
