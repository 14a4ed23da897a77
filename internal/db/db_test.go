package db

import (
	"context"
	"path/filepath"
	"testing"
)

func TestDrivers_Unknown(t *testing.T) {
	if _, err := Open("oracle", "x"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestOpen_SQLite(t *testing.T) {
	gdb, err := Open("SQLite", filepath.Join(t.TempDir(), "h.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer Close(gdb)

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	if err := sqlDB.PingContext(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
