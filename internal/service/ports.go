package service

import "context"

// INotifier surfaces messages to whoever is driving the session (terminal, tests).
type INotifier interface {
	// Alert reports a failed action.
	Alert(message string)
	// Info shows a short confirmation.
	Info(message string)
}

// IConfirmer asks the user before a destructive action.
type IConfirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ITrigger requests a deferred refresh. *scheduler.Debouncer implements it.
type ITrigger interface {
	Trigger()
}
