package cli

import (
	"io"

	"ai-assistant-client/internal/bootstrap"
	"ai-assistant-client/internal/config"
	"ai-assistant-client/internal/pkg/apperror"
	"ai-assistant-client/internal/pkg/logger"
	"ai-assistant-client/internal/service"

	"github.com/spf13/cobra"
)

// Options overrides what the commands would otherwise build from the environment.
type Options struct {
	Config    *config.Config
	Logger    logger.ILogger
	Confirmer service.IConfirmer
}

// session lazily builds one client container per command invocation.
type session struct {
	opts      Options
	assumeYes bool

	cfg       *config.Config
	log       logger.ILogger
	container *bootstrap.Container
	out       io.Writer
	notifier  *terminalNotifier
	answers   *answerRecorder
}

// Execute runs the command line and returns the process exit code. Errors already shown
// as alerts are not printed a second time.
func Execute(opts Options, args []string) int {
	s := &session{opts: opts}
	cmd := newRootCmd(s)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		if s.notifier == nil || s.notifier.alerts == 0 {
			alertColor.Fprintf(cmd.ErrOrStderr(), "Erro: %s\n", err)
		}
		return 1
	}
	return 0
}

func NewRootCmd(opts Options) *cobra.Command {
	return newRootCmd(&session{opts: opts})
}

func newRootCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "assistant",
		Short:         "Terminal client for the AI assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			s.close()
		},
	}
	cmd.PersistentFlags().BoolVarP(&s.assumeYes, "yes", "y", false, "skip delete confirmations")

	cmd.AddCommand(
		newDashboardCmd(s),
		newNotesCmd(s),
		newRemindersCmd(s),
		newActivityCmd(s),
		newChatCmd(s),
		newSearchCmd(s),
		newCodeCmd(s),
		newHealthCmd(s),
		newTokenCmd(s),
	)
	return cmd
}

func (s *session) config() *config.Config {
	if s.cfg == nil {
		s.cfg = s.opts.Config
		if s.cfg == nil {
			s.cfg = config.Load()
		}
	}
	return s.cfg
}

func (s *session) logger() logger.ILogger {
	if s.log == nil {
		s.log = s.opts.Logger
		if s.log == nil {
			cfg := s.config()
			s.log = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction(), cfg.App.Verbose)
		}
	}
	return s.log
}

// open builds the container without loading any state.
func (s *session) open(cmd *cobra.Command) (*bootstrap.Container, error) {
	if s.container != nil {
		return s.container, nil
	}
	s.out = cmd.OutOrStdout()

	var confirmer service.IConfirmer = surveyConfirmer{}
	switch {
	case s.assumeYes:
		confirmer = autoConfirmer{}
	case s.opts.Confirmer != nil:
		confirmer = s.opts.Confirmer
	}
	s.answers = &answerRecorder{next: confirmer}
	s.notifier = &terminalNotifier{out: s.out}

	c, err := bootstrap.NewContainer(s.config(), s.logger(), bootstrap.Ports{
		Notifier:  s.notifier,
		Confirmer: s.answers,
	})
	if err != nil {
		return nil, err
	}
	s.container = c
	return c, nil
}

// load opens the container and performs the initial load. A failed load is reported and
// leaves whatever state could be fetched.
func (s *session) load(cmd *cobra.Command) (*bootstrap.Container, error) {
	c, err := s.open(cmd)
	if err != nil {
		return nil, err
	}
	if err := c.Start(cmd.Context()); err != nil {
		s.notifier.Alert(apperror.UserMessage(err))
	}
	return c, nil
}

func (s *session) close() {
	if s.container != nil {
		s.container.Close()
		s.container = nil
	}
	if zl, ok := s.log.(*logger.ZapLogger); ok && s.opts.Logger == nil {
		_ = zl.Sync()
	}
}
