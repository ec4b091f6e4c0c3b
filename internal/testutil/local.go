package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
	"github.com/preston-bernstein/matches-service/internal/local"
)

// NewTempFileStore returns a file-backed local store inside t.TempDir().
func NewTempFileStore(t *testing.T) *local.FileStore {
	t.Helper()
	return local.NewFileStore(filepath.Join(t.TempDir(), "matches.json"), nil)
}

// SeedFileStore returns a temp file store already holding list.
func SeedFileStore(t *testing.T, list []matches.Match) *local.FileStore {
	t.Helper()
	fs := NewTempFileStore(t)
	if err := fs.Save(context.Background(), list); err != nil {
		t.Fatalf("seed file store: %v", err)
	}
	return fs
}
