package dto

import "ai-assistant-client/internal/entity"

type ChatRequest struct {
	Message   string  `json:"message"`
	SessionId *string `json:"session_id"`
}

// ChatEffect is a structured side-effect descriptor returned alongside a reply.
type ChatEffect struct {
	Kind     entity.Kind `json:"kind"`
	EntityId string      `json:"entity_id"`
}

type ChatResponse struct {
	SessionId string       `json:"session_id"`
	Response  string       `json:"response"`
	Effects   []ChatEffect `json:"effects,omitempty"`
}

type ChatHistoryItem struct {
	Id        string           `json:"id"`
	Message   string           `json:"message"`
	Response  string           `json:"response"`
	Timestamp entity.Timestamp `json:"timestamp"`
}
