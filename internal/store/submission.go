// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access for the submission audit trail.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"themegate/internal/models"
)

// SubmissionStore handles all submission-related database operations.
// Every gateway invocation is recorded here, whatever its outcome.
type SubmissionStore struct {
	db *sql.DB
}

// NewSubmissionStore creates a new SubmissionStore with the given database connection.
func NewSubmissionStore(db *sql.DB) *SubmissionStore {
	return &SubmissionStore{db: db}
}

// Create inserts a new pending submission row and returns it with its
// generated ID and timestamps filled in.
func (s *SubmissionStore) Create(sub *models.Submission) (*models.Submission, error) {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	if sub.Status == "" {
		sub.Status = models.SubmissionStatusPending
	}
	// payload column is NOT NULL; rows recorded without one get an empty object.
	if len(sub.Payload) == 0 {
		sub.Payload = json.RawMessage("{}")
	}

	err := s.db.QueryRow(`
		INSERT INTO submissions (
			id, theme_name, theme_slug, author_name, author_email,
			paid_status, status, branch, file_name, pr_url, error, payload
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`,
		sub.ID, sub.ThemeName, sub.ThemeSlug, sub.AuthorName, sub.AuthorEmail,
		sub.PaidStatus, sub.Status, sub.Branch, sub.FileName, sub.PRURL, sub.Error, sub.Payload,
	).Scan(&sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return sub, nil
}

// MarkCompleted records a successful run: branch, data file, and PR URL.
func (s *SubmissionStore) MarkCompleted(id uuid.UUID, branch, fileName, prURL string) error {
	return s.setResult(id, models.SubmissionStatusCompleted, branch, fileName, prURL, "")
}

// MarkFailed records a failed run with the error that aborted it.
func (s *SubmissionStore) MarkFailed(id uuid.UUID, errMsg string) error {
	return s.setResult(id, models.SubmissionStatusFailed, "", "", "", errMsg)
}

func (s *SubmissionStore) setResult(id uuid.UUID, status models.SubmissionStatus, branch, fileName, prURL, errMsg string) error {
	res, err := s.db.Exec(`
		UPDATE submissions
		SET status = $2, branch = $3, file_name = $4, pr_url = $5, error = $6, updated_at = now()
		WHERE id = $1
	`, id, status, branch, fileName, prURL, errMsg)
	if err != nil {
		return fmt.Errorf("update submission %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update submission %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update submission %s: not found", id)
	}
	return nil
}

// FindByID retrieves a submission by its UUID. Returns nil if not found.
func (s *SubmissionStore) FindByID(id uuid.UUID) (*models.Submission, error) {
	sub := &models.Submission{}
	err := s.db.QueryRow(`
		SELECT id, theme_name, theme_slug, author_name, author_email,
		       paid_status, status, branch, file_name, pr_url, error, payload,
		       created_at, updated_at
		FROM submissions WHERE id = $1
	`, id).Scan(
		&sub.ID, &sub.ThemeName, &sub.ThemeSlug, &sub.AuthorName, &sub.AuthorEmail,
		&sub.PaidStatus, &sub.Status, &sub.Branch, &sub.FileName, &sub.PRURL, &sub.Error, &sub.Payload,
		&sub.CreatedAt, &sub.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find submission by id: %w", err)
	}
	return sub, nil
}

// ListRecent returns the latest submissions, newest first.
func (s *SubmissionStore) ListRecent(limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, theme_name, theme_slug, author_name, author_email,
		       paid_status, status, branch, file_name, pr_url, error, payload,
		       created_at, updated_at
		FROM submissions
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var items []models.Submission
	for rows.Next() {
		var sub models.Submission
		if err := rows.Scan(
			&sub.ID, &sub.ThemeName, &sub.ThemeSlug, &sub.AuthorName, &sub.AuthorEmail,
			&sub.PaidStatus, &sub.Status, &sub.Branch, &sub.FileName, &sub.PRURL, &sub.Error, &sub.Payload,
			&sub.CreatedAt, &sub.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		items = append(items, sub)
	}
	return items, rows.Err()
}
