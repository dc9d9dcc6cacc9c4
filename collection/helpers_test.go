package collection

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/poiesic/jsonstore/storage"
	"github.com/poiesic/jsonstore/storage/badger"
	"github.com/poiesic/jsonstore/storage/osfs"
	"github.com/stretchr/testify/require"
)

var errInjected = errors.New("injected failure")

// faultyFS wraps a FileSystem and fails reads or writes of chosen files.
type faultyFS struct {
	storage.FileSystem
	mu        sync.Mutex
	failRead  string
	failWrite string
	writes    []string
}

func (f *faultyFS) ReadFile(ctx context.Context, path string) (string, error) {
	if f.failRead != "" && strings.HasSuffix(path, f.failRead) {
		return "", errInjected
	}
	return f.FileSystem.ReadFile(ctx, path)
}

func (f *faultyFS) WriteFile(ctx context.Context, path, content string) error {
	if f.failWrite != "" && strings.HasSuffix(path, f.failWrite) {
		return errInjected
	}
	f.mu.Lock()
	f.writes = append(f.writes, filepath.Base(path))
	f.mu.Unlock()
	return f.FileSystem.WriteFile(ctx, path, content)
}

// backends returns the file systems every collection test runs against.
func backends(t *testing.T) map[string]storage.FileSystem {
	t.Helper()
	memFS, backend, err := badger.NewMemoryFileSystem()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	return map[string]storage.FileSystem{
		"os":     osfs.New(),
		"badger": memFS,
	}
}

// rootFor returns a root folder suitable for the named backend.
func rootFor(t *testing.T, name string) string {
	if name == "os" {
		return t.TempDir()
	}
	return "/data"
}
