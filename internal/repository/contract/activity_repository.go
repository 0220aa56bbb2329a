package contract

import (
	"context"
	"time"

	"ai-assistant-client/internal/entity"
)

// ActivityRepository logs chat, search and code activities. Note and reminder activities
// are projected from their own repositories.
type ActivityRepository interface {
	Append(ctx context.Context, activity entity.Activity) error
	Delete(ctx context.Context, kind entity.Kind, id string) error
	FindAll(ctx context.Context) ([]entity.Activity, error)
	CountSince(ctx context.Context, kind entity.Kind, since time.Time) (int, error)
}
