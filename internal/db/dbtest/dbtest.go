// Package dbtest opens throwaway SQLite stores for tests.
package dbtest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/evcraddock/hvr-studio/internal/db"
)

// Open opens a store on a fresh database under t.TempDir and closes it
// when the test ends. now may be nil.
func Open(t testing.TB, now func() time.Time) *db.Store {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "studio.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	s := db.NewStore(d, now)
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close test db: %v", err)
		}
	})
	return s
}
