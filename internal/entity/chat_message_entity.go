package entity

import "time"

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one immutable entry of a conversation session.
type Message struct {
	Text      string
	Sender    Sender
	Timestamp time.Time
}
