package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/cypherfrag/internal/pattern"
	"github.com/roach88/cypherfrag/internal/testutil"
)

// createTestStore opens a fresh store with sequential IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequenceGenerator("frag")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleObject() pattern.QueryObject {
	return pattern.NamedWithConditions("person", pattern.NewConditions(
		pattern.P("name", "Steve"),
		pattern.P("age", int64(42)),
	)).BuildQueryObject()
}
