package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"ai-assistant-client/internal/entity"
	"ai-assistant-client/pkg/feed"
)

const dateLayout = "02/01/2006 15:04"

func renderDashboard(out io.Writer, vm feed.ViewModel, now time.Time) {
	title(out, "DASHBOARD")
	labelColor.Fprint(out, "Conversas recentes: ")
	fmt.Fprintf(out, "%d   ", vm.RecentChats)
	labelColor.Fprint(out, "Notas: ")
	fmt.Fprintf(out, "%d   ", vm.TotalNotes)
	labelColor.Fprint(out, "Lembretes próximos: ")
	fmt.Fprintf(out, "%d\n", vm.UpcomingReminders)
	if !vm.LastActivity.IsZero() {
		mutedColor.Fprintf(out, "Última atividade: %s\n", vm.LastActivity.Local().Format(dateLayout))
	}
	separator(out)

	if len(vm.Activities) == 0 {
		mutedColor.Fprintln(out, "Nenhuma atividade ainda.")
		return
	}
	for _, a := range vm.Activities {
		fmt.Fprintf(out, "%s %-8s %s", a.Icon, a.Type, a.Title)
		if a.Description != "" && a.Description != a.Title {
			mutedColor.Fprintf(out, " · %s", oneLine(a.Description))
		}
		mutedColor.Fprintf(out, "  [%s] %s\n", a.Id, timeAgo(a.Timestamp.Time, now))
	}
}

func renderDelta(out io.Writer, d feed.CounterDelta) {
	var parts []string
	if d.RecentChats != 0 {
		parts = append(parts, fmt.Sprintf("conversas %+d", d.RecentChats))
	}
	if d.TotalNotes != 0 {
		parts = append(parts, fmt.Sprintf("notas %+d", d.TotalNotes))
	}
	if d.UpcomingReminders != 0 {
		parts = append(parts, fmt.Sprintf("lembretes %+d", d.UpcomingReminders))
	}
	if len(parts) > 0 {
		infoColor.Fprintf(out, "Δ %s\n", strings.Join(parts, ", "))
	}
}

func renderDetail(out io.Writer, d feed.Detail) {
	switch v := d.(type) {
	case feed.ChatDetail:
		title(out, "CONVERSA")
		labelColor.Fprintln(out, "Pergunta:")
		userColor.Fprintln(out, v.Question)
		labelColor.Fprintln(out, "Resposta:")
		assistantColor.Fprintln(out, v.Answer)
	case feed.NoteDetail:
		title(out, "NOTA: %s", v.Title)
		fmt.Fprintln(out, v.Content)
		mutedColor.Fprintf(out, "Categoria: %s  Tags: %s  %s\n", v.Category, strings.Join(v.Tags, ", "), completedLabel(v.Completed))
	case feed.ReminderDetail:
		title(out, "LEMBRETE: %s", v.Title)
		if v.Description != "" {
			fmt.Fprintln(out, v.Description)
		}
		mutedColor.Fprintf(out, "Data: %s  Prioridade: %s  %s\n", formatDate(v.Date), v.Priority, completedLabel(v.Completed))
	case feed.SearchDetail:
		title(out, "PESQUISA")
		labelColor.Fprintf(out, "Consulta: ")
		fmt.Fprintln(out, v.Query)
		assistantColor.Fprintln(out, v.Results)
	case feed.CodeDetail:
		title(out, "CÓDIGO (%s)", v.Language)
		if v.Description != "" {
			fmt.Fprintln(out, v.Description)
		}
		separator(out)
		fmt.Fprintln(out, v.Code)
		separator(out)
		assistantColor.Fprintln(out, v.Analysis)
	}
}

func renderNotes(out io.Writer, notes []entity.Note) {
	if len(notes) == 0 {
		mutedColor.Fprintln(out, "Nenhuma nota.")
		return
	}
	for _, n := range notes {
		fmt.Fprintf(out, "%s %s", checkbox(n.Completed), n.Title)
		mutedColor.Fprintf(out, "  (%s)", n.Category)
		if len(n.Tags) > 0 {
			mutedColor.Fprintf(out, " #%s", strings.Join(n.Tags, " #"))
		}
		mutedColor.Fprintf(out, "  [%s]\n", n.Id)
	}
}

func renderReminders(out io.Writer, reminders []entity.Reminder) {
	if len(reminders) == 0 {
		mutedColor.Fprintln(out, "Nenhum lembrete próximo.")
		return
	}
	for _, r := range reminders {
		fmt.Fprintf(out, "%s %s", checkbox(r.Completed), r.Title)
		mutedColor.Fprintf(out, "  %s  %s  [%s]\n", formatDate(r.Date.Time), r.Priority, r.Id)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func completedLabel(done bool) string {
	if done {
		return "Concluído"
	}
	return "Pendente"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func timeAgo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "agora"
	case d < time.Hour:
		return fmt.Sprintf("há %d min", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("há %d h", int(d.Hours()))
	default:
		return formatDate(t)
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
