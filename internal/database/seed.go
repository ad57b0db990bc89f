package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Seed populates the database with initial development data.
// It records one completed example submission so the review TUI has
// something to show on a fresh install.
func Seed(db *sql.DB) error {
	// Check if any submissions exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM submissions").Scan(&count); err != nil {
		return fmt.Errorf("seed check submissions: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	payload := `{
		"themeName": "Example Theme",
		"authorName": "Dev Seed",
		"authorEmail": "seed@themegate.local",
		"paidStatus": "free",
		"shortDescription": "A seeded example submission for local development.",
		"mainPreviewImage": {"filename": "main.png", "type": "image/png", "size": 1024, "url": "https://placehold.co/1200x800.png"}
	}`

	_, err := db.Exec(`
		INSERT INTO submissions (
			id, theme_name, theme_slug, author_name, author_email,
			paid_status, status, branch, file_name, pr_url, payload
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		uuid.New(), "Example Theme", "example-theme", "Dev Seed", "seed@themegate.local",
		"free", "completed", "theme-submissions/example-theme-0", "example-theme-0.json",
		"https://github.com/themegate/gallery/pull/1", payload,
	)
	if err != nil {
		return fmt.Errorf("seed insert submission: %w", err)
	}

	slog.Info("database seeded with example submission", "theme", "Example Theme")

	return nil
}
