package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ai-assistant-client/internal/bootstrap"
	"ai-assistant-client/internal/entity"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

const (
	cmdNewConversation = "/nova"
	cmdHistory         = "/historico"
	cmdExit            = "/sair"
)

func newChatCmd(s *session) *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant",
		Long: "Talk to the assistant. Without --message an interactive session starts; " +
			cmdNewConversation + " starts a new conversation, " + cmdHistory + " prints the server " +
			"history and " + cmdExit + " quits.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.load(cmd)
			if err != nil {
				return err
			}
			if message != "" {
				return s.chatTurn(cmd, c, message)
			}
			return s.chatLoop(cmd, c)
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "send a single message and exit")
	return cmd
}

func (s *session) chatTurn(cmd *cobra.Command, c *bootstrap.Container, text string) error {
	turn, err := c.Chat.Send(cmd.Context(), text)
	if err != nil {
		// the failed turn already left an apology in the transcript
		if msgs := c.Store.Messages(); len(msgs) > 0 && msgs[len(msgs)-1].Sender == entity.SenderAssistant {
			alertColor.Fprintln(s.out, msgs[len(msgs)-1].Text)
			s.notifier.alerts++
		}
		return err
	}
	assistantColor.Fprintln(s.out, turn.Response.Response)
	return nil
}

func (s *session) chatLoop(cmd *cobra.Command, c *bootstrap.Container) error {
	title(s.out, "CHAT")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            promptColor(),
		InterruptPrompt:   "^C",
		EOFPrompt:         cmdExit,
		HistoryFile:       filepath.Join(os.TempDir(), "assistant.history"),
		HistorySearchFold: true,
		Stdout:            s.out,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		text := strings.TrimSpace(line)
		switch text {
		case "":
			continue
		case cmdExit:
			return nil
		case cmdNewConversation:
			c.Chat.NewConversation()
			mutedColor.Fprintln(s.out, "Nova conversa iniciada.")
			continue
		case cmdHistory:
			items, err := c.Chat.History(cmd.Context())
			if err != nil {
				s.notifier.Alert(err.Error())
				continue
			}
			for _, item := range items {
				userColor.Fprintf(s.out, "> %s\n", item.Message)
				assistantColor.Fprintln(s.out, item.Response)
			}
			continue
		}

		// failures are shown inline and the session goes on
		_ = s.chatTurn(cmd, c, text)
	}
}

func promptColor() string {
	return labelColor.Sprint("> ")
}
