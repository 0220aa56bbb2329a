package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/pkg/serverutils"

	"github.com/spf13/cobra"
)

func newSearchCmd(s *session) *cobra.Command {
	var searchType string
	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Ask the assistant to search",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.open(cmd)
			if err != nil {
				return err
			}
			result, err := c.Search.Search(cmd.Context(), strings.Join(args, " "), searchType)
			return s.showResult(result, err)
		},
	}
	cmd.Flags().StringVar(&searchType, "type", "general", "search type")
	return cmd
}

func newCodeCmd(s *session) *cobra.Command {
	var req dto.CodeTaskRequest
	cmd := &cobra.Command{
		Use:   "code [FILE]",
		Short: "Analyze, explain or improve a piece of code (reads stdin without FILE)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src []byte
			var err error
			if len(args) == 1 {
				src, err = os.ReadFile(args[0])
			} else {
				src, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}
			req.Code = string(src)

			c, err := s.open(cmd)
			if err != nil {
				return err
			}
			analysis, err := c.Code.Analyze(cmd.Context(), req)
			return s.showResult(analysis, err)
		},
	}
	cmd.Flags().StringVar(&req.Language, "language", "python", "source language")
	cmd.Flags().StringVar(&req.Task, "task", "analyze", "analyze, explain or improve")
	cmd.Flags().StringVar(&req.Description, "description", "", "what the code is about")
	return cmd
}

func newHealthCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.open(cmd)
			if err != nil {
				return err
			}
			res, err := c.Client.Health(cmd.Context())
			if err != nil {
				return err
			}
			infoColor.Fprintf(s.out, "%s: %s\n", res.Status, res.Message)
			return nil
		},
	}
}

func newTokenCmd(s *session) *cobra.Command {
	var opts struct {
		Subject string
		TTL     time.Duration
	}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a stub API started with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := s.config().Stub.JWTSecret
			if secret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			token, err := serverutils.IssueToken(secret, opts.Subject, opts.TTL)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Subject, "subject", "assistant", "token subject")
	cmd.Flags().DurationVar(&opts.TTL, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

// showResult prints a search or analysis result. On failure the services return a
// user-facing fallback text, which is shown as an alert.
func (s *session) showResult(result string, err error) error {
	if err != nil {
		if result != "" {
			s.notifier.Alert(result)
		}
		return err
	}
	assistantColor.Fprintln(s.out, result)
	return nil
}
