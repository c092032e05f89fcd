package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kursroster/backend/internal/app/models"
	"github.com/kursroster/backend/internal/pkg/apperrors"
	"github.com/kursroster/backend/internal/pkg/logger"
)

// RosterStore owns the durable student collection. There is deliberately no
// partial-update primitive: the course-catalog invariant is roster-wide, so
// every mutation materializes the full roster anyway, and a snapshot model
// keeps the invariant check trivial at the expected scale.
type RosterStore interface {
	// ReadAll returns every student record as a fresh snapshot in insertion
	// order. A missing or unreadable backing state yields an empty roster so
	// that first runs bootstrap cleanly.
	ReadAll(ctx context.Context) ([]models.Student, error)
	// WriteAll replaces the persisted collection atomically. If the write
	// fails partway the previously persisted state stays intact.
	WriteAll(ctx context.Context, students []models.Student) error
}

// FileRosterStore persists the roster as a single JSON document. Writes go to
// a temp file in the same directory and are renamed over the previous state,
// so readers never observe a half-written roster.
type FileRosterStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileRosterStore creates a file-backed roster store at the given path,
// creating the parent directory if needed.
func NewFileRosterStore(path string) (*FileRosterStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating roster directory: %v", apperrors.ErrStorageUnavailable, err)
	}
	return &FileRosterStore{path: path}, nil
}

// ReadAll implements RosterStore.
func (s *FileRosterStore) ReadAll(ctx context.Context) ([]models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Student{}, nil
		}
		return nil, fmt.Errorf("%w: reading roster file: %v", apperrors.ErrStorageUnavailable, err)
	}

	if len(raw) == 0 {
		return []models.Student{}, nil
	}

	var students []models.Student
	if err := json.Unmarshal(raw, &students); err != nil {
		// A corrupt file is treated like a missing one: start from an empty
		// roster rather than wedging the whole application.
		logger.Warn().Err(err).Str("path", s.path).Msg("Roster file is not valid JSON, starting from an empty roster")
		return []models.Student{}, nil
	}

	for i := range students {
		students[i].Normalize()
	}
	return students, nil
}

// WriteAll implements RosterStore.
func (s *FileRosterStore) WriteAll(ctx context.Context, students []models.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if students == nil {
		students = []models.Student{}
	}

	raw, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding roster: %v", apperrors.ErrStorageUnavailable, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "roster-*.json")
	if err != nil {
		return fmt.Errorf("%w: creating temp roster file: %v", apperrors.ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp roster file: %v", apperrors.ErrStorageUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: syncing temp roster file: %v", apperrors.ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp roster file: %v", apperrors.ErrStorageUnavailable, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing roster file: %v", apperrors.ErrStorageUnavailable, err)
	}
	return nil
}
