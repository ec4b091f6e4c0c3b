package local

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
)

// FileStore keeps the match list as a JSON array in a single file.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewFileStore constructs a FileStore writing to path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Path exposes the backing file location.
func (s *FileStore) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Load reads the file. A missing or corrupt file yields an empty list.
func (s *FileStore) Load(ctx context.Context) []matches.Match {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []matches.Match{}
	}
	if err != nil {
		warnLoad(ctx, s.logger, KindFile, err)
		return []matches.Match{}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []matches.Match{}
	}

	var list []matches.Match
	if err := json.Unmarshal(data, &list); err != nil {
		warnLoad(ctx, s.logger, KindFile, err)
		return []matches.Match{}
	}
	if list == nil {
		return []matches.Match{}
	}
	return list
}

// Save writes list atomically via a temp file and rename.
func (s *FileStore) Save(ctx context.Context, list []matches.Match) error {
	if s == nil || s.path == "" {
		return fmt.Errorf("file store not configured")
	}
	if list == nil {
		list = []matches.Match{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if existing, err := os.ReadFile(s.path); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
