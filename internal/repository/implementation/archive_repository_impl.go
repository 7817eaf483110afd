package implementation

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/model"
	"ai-interview-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArchiveRepositoryImpl struct {
	db *gorm.DB
}

func NewArchiveRepository(db *gorm.DB) contract.ArchiveRepository {
	return &ArchiveRepositoryImpl{db: db}
}

// Save upserts the session record so a redelivered bus message does not
// produce a duplicate row.
func (r *ArchiveRepositoryImpl) Save(ctx context.Context, record *dto.SessionEndedMessage) error {
	summaryJSON, err := json.Marshal(record.Summary)
	if err != nil {
		return fmt.Errorf("marshal session summary: %w", err)
	}

	endedAt := record.EndedAt
	m := &model.SessionRecord{
		Id:        record.SessionId,
		CreatedAt: record.CreatedAt,
		EndedAt:   &endedAt,
		Degraded:  record.Degraded,
		Summary:   summaryJSON,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(m).Error
}
