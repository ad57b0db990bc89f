package database

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed should be callable safely — it creates data only when the table
	// is empty. We call it twice to verify idempotency. We don't clear the
	// database first because other test packages may be running
	// concurrently against the same database.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	// Verify at least one submission exists.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM submissions").Scan(&count); err != nil {
		t.Fatalf("count submissions: %v", err)
	}
	if count < 1 {
		t.Errorf("expected at least 1 submission, got %d", count)
	}
}
