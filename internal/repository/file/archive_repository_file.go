package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/repository/contract"
)

// ArchiveRepository writes one JSON document per finished session into a
// directory. It is the default archive backend when no database is
// configured.
type ArchiveRepository struct {
	dir string
}

func NewArchiveRepository(dir string) (contract.ArchiveRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir %s: %w", dir, err)
	}
	return &ArchiveRepository{dir: dir}, nil
}

func (r *ArchiveRepository) Save(ctx context.Context, record *dto.SessionEndedMessage) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}

	path := filepath.Join(r.dir, record.SessionId.String()+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("finalize session record: %w", err)
	}
	return nil
}
