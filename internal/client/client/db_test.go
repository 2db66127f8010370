package client

import (
	"context"
	"testing"

	_ "modernc.org/sqlite"
)

func TestInitDatabase(t *testing.T) {
	ctx := context.Background()

	db, err := InitDatabase(ctx, ":memory:")
	if err != nil {
		t.Fatalf("init error: %v", err)
	}
	defer db.Close()

	// the migrated schema must have the metadata table
	_, err = db.ExecContext(ctx, `INSERT INTO metadata (key, value) VALUES ('k', 'v')`)
	if err != nil {
		t.Errorf("expected metadata table to exist, got %v", err)
	}
}
