// Package dbtest provides migrated SQLite stores for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/iliyamo/tutor-booking/internal/database"
)

// Open returns a freshly migrated SQLite store in a temp dir.  It is
// closed when the test ends.
func Open(t testing.TB) *database.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
