package contract

import (
	"context"

	"ai-interview-be/internal/dto"
)

// ArchiveRepository persists finished sessions for later review.
type ArchiveRepository interface {
	Save(ctx context.Context, record *dto.SessionEndedMessage) error
}
