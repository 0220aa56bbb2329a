package entity

import "fmt"

// Kind names an entity family the client can display or mutate.
type Kind string

const (
	KindNote     Kind = "note"
	KindReminder Kind = "reminder"
	KindChat     Kind = "chat"
	KindSearch   Kind = "search"
	KindCode     Kind = "code"
)

var resourceByKind = map[Kind]string{
	KindNote:     "notes",
	KindReminder: "reminders",
	KindChat:     "chats",
	KindSearch:   "searches",
	KindCode:     "code",
}

// Resource maps a kind to its remote collection path segment.
func (k Kind) Resource() (string, error) {
	r, ok := resourceByKind[k]
	if !ok {
		return "", fmt.Errorf("unknown entity kind %q", k)
	}
	return r, nil
}

// Completable reports whether the kind carries a completion flag.
func (k Kind) Completable() bool {
	return k == KindNote || k == KindReminder
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := resourceByKind[k]; !ok {
		return "", fmt.Errorf("unknown entity kind %q", s)
	}
	return k, nil
}

type Category string

const (
	CategoryGeneral  Category = "general"
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryStudy    Category = "study"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)
