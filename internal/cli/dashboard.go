package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"ai-assistant-client/internal/pkg/apperror"
	"ai-assistant-client/pkg/feed"

	"github.com/spf13/cobra"
)

func newDashboardCmd(s *session) *cobra.Command {
	var opts struct {
		Expand string
		Watch  time.Duration
	}
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show counters and the recent activity feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.load(cmd)
			if err != nil {
				return err
			}

			if opts.Expand != "" {
				activity, ok := c.Store.Activity(opts.Expand)
				if !ok {
					return fmt.Errorf("activity %s is not in the feed", opts.Expand)
				}
				detail, err := c.Aggregator.Expand(activity)
				if err != nil {
					return err
				}
				c.Store.OpenDetail(detail)
				renderDetail(s.out, detail)
				return nil
			}

			renderDashboard(s.out, c.Store.Dashboard(), time.Now())
			if opts.Watch <= 0 {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			ticker := time.NewTicker(opts.Watch)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
				prev := c.Store.Dashboard()
				if err := c.Loader.LoadDashboard(ctx); err != nil {
					s.notifier.Alert(apperror.UserMessage(err))
					continue
				}
				next := c.Store.Dashboard()
				if d := feed.Delta(prev, next); !d.IsZero() {
					renderDelta(s.out, d)
					renderDashboard(s.out, next, time.Now())
				}
			}
		},
	}
	cmd.Flags().StringVar(&opts.Expand, "expand", "", "show the details of one activity")
	cmd.Flags().DurationVar(&opts.Watch, "watch", 0, "refresh periodically and print changes")
	return cmd
}
