package contract

import (
	"context"

	"ai-assistant-client/internal/dto"
)

// ChatSessionRepository keeps per-session conversation history.
type ChatSessionRepository interface {
	Append(ctx context.Context, sessionId string, item dto.ChatHistoryItem)
	History(ctx context.Context, sessionId string) []dto.ChatHistoryItem
}
