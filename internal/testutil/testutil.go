// Package testutil provides shared test helpers for setting up device
// stores and index databases.
package testutil

import (
	"os"
	"testing"

	"github.com/edusosyal/hapbilgi/internal/index"
	"github.com/edusosyal/hapbilgi/internal/kvstore"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "hapbilgi-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestKV creates a temporary device store rooted in a throwaway directory.
func TestKV(t *testing.T) *kvstore.FS {
	t.Helper()
	kv, err := kvstore.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return kv
}
