package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"ai-assistant-client/internal/service"

	"github.com/AlecAivazis/survey/v2"
	"github.com/buger/goterm"
	"github.com/fatih/color"
)

var (
	titleColor     = color.New(color.FgMagenta, color.Bold)
	separatorColor = color.New(color.FgHiBlack)
	labelColor     = color.New(color.FgHiBlue)
	userColor      = color.New(color.FgWhite, color.Bold)
	assistantColor = color.New(color.FgCyan)
	alertColor     = color.New(color.FgRed, color.Bold)
	infoColor      = color.New(color.FgGreen)
	mutedColor     = color.New(color.FgHiBlack)
)

func termWidth() int {
	if w := goterm.Width(); w > 0 {
		return w
	}
	return 80
}

func separator(out io.Writer) {
	separatorColor.Fprintln(out, strings.Repeat("-", termWidth()))
}

func title(out io.Writer, text string, args ...any) {
	width := termWidth()
	t := "      " + fmt.Sprintf(text, args...) + "      "
	left := (width - len(t)) / 2
	if left < 0 {
		left = 0
	}
	right := width - len(t) - left
	if right < 0 {
		right = 0
	}
	titleColor.Fprintln(out, strings.Repeat("-", left)+t+strings.Repeat("-", right))
}

// terminalNotifier prints alerts and confirmations inline with command output.
type terminalNotifier struct {
	out    io.Writer
	alerts int
}

func (n *terminalNotifier) Alert(message string) {
	n.alerts++
	alertColor.Fprintf(n.out, "✗ %s\n", message)
}

func (n *terminalNotifier) Info(message string) {
	infoColor.Fprintf(n.out, "✓ %s\n", message)
}

type surveyConfirmer struct{}

func (surveyConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	confirm := false
	if err := survey.AskOne(&survey.Confirm{Message: prompt}, &confirm); err != nil {
		return false, err
	}
	return confirm, nil
}

// autoConfirmer answers yes; selected with --yes.
type autoConfirmer struct{}

func (autoConfirmer) Confirm(context.Context, string) (bool, error) {
	return true, nil
}

// answerRecorder remembers the last answer so commands can tell a declined delete from a
// completed one.
type answerRecorder struct {
	next     service.IConfirmer
	accepted bool
}

func (r *answerRecorder) Confirm(ctx context.Context, prompt string) (bool, error) {
	ok, err := r.next.Confirm(ctx, prompt)
	r.accepted = ok && err == nil
	return ok, err
}
