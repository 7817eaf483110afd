package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SessionRecord is the archived form of a finished interview session.
type SessionRecord struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;column:id"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	EndedAt    *time.Time     `gorm:"column:ended_at"`
	Degraded   bool           `gorm:"column:degraded"`
	Summary    datatypes.JSON `gorm:"column:summary"`
	ArchivedAt time.Time      `gorm:"column:archived_at;autoCreateTime"`
}

func (SessionRecord) TableName() string {
	return "session_records"
}
