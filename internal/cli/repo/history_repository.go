package repo

import (
	"VoiceKeeper/internal/cli/model"
	"context"
)

// HistoryRepository — локальный журнал проверок.
type HistoryRepository interface {
	Add(ctx context.Context, a *model.Attempt) (string, error)
	List(ctx context.Context, limit int) ([]model.Attempt, error)
	Close() error
}
