// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data types shared across the gateway:
// the inbound theme submission form, the published gallery record,
// and the audit row persisted for each invocation.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImageUpload describes an image already uploaded by the submission form.
type ImageUpload struct {
	Filename string `json:"filename"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}

// OptionalImage is a gallery slot. The form submits either a full image
// descriptor or the empty string when the slot is unused.
type OptionalImage struct {
	Image *ImageUpload
}

// IsSet reports whether the slot holds an image.
func (o OptionalImage) IsSet() bool { return o.Image != nil }

// UnmarshalJSON accepts a descriptor object, the empty string, or null.
// Any other string value is rejected.
func (o *OptionalImage) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		o.Image = nil
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s != "" {
			return fmt.Errorf("preview image: expected descriptor or empty string, got %q", s)
		}
		o.Image = nil
		return nil
	}
	var img ImageUpload
	if err := json.Unmarshal(b, &img); err != nil {
		return err
	}
	o.Image = &img
	return nil
}

// MarshalJSON mirrors the form wire shape: unused slots serialize as "".
func (o OptionalImage) MarshalJSON() ([]byte, error) {
	if o.Image == nil {
		return []byte(`""`), nil
	}
	return json.Marshal(o.Image)
}

// ThemeSubmission is the validated form payload describing a theme to be
// added to the gallery. It is constructed once per invocation from the
// request body and never mutated afterwards.
type ThemeSubmission struct {
	ThemeName        string        `json:"themeName"`
	AuthorName       string        `json:"authorName"`
	AuthorEmail      string        `json:"authorEmail"`
	PaidStatus       string        `json:"paidStatus"`
	ShortDescription string        `json:"shortDescription"`
	MainPreviewImage *ImageUpload  `json:"mainPreviewImage"`
	PreviewImage1    OptionalImage `json:"previewImage1"`
	PreviewImage2    OptionalImage `json:"previewImage2"`
	PreviewImage3    OptionalImage `json:"previewImage3"`
	PreviewImage4    OptionalImage `json:"previewImage4"`
	RepoURL          string        `json:"repoUrl"`
	PurchaseURL      string        `json:"purchaseUrl"`
	DemoURL          string        `json:"demoUrl"`
}

// GalleryImages returns the populated optional preview slots in form order
// (1 through 4), skipping empty slots.
func (s *ThemeSubmission) GalleryImages() []ImageUpload {
	slots := []OptionalImage{s.PreviewImage1, s.PreviewImage2, s.PreviewImage3, s.PreviewImage4}
	imgs := make([]ImageUpload, 0, len(slots))
	for _, slot := range slots {
		if slot.IsSet() {
			imgs = append(imgs, *slot.Image)
		}
	}
	return imgs
}

// SubmissionStatus tracks a recorded invocation through the pipeline.
type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "pending"
	SubmissionStatusCompleted SubmissionStatus = "completed"
	SubmissionStatusFailed    SubmissionStatus = "failed"
)

// Submission is the audit row persisted for every gateway invocation.
type Submission struct {
	ID          uuid.UUID        `json:"id"`
	ThemeName   string           `json:"theme_name"`
	ThemeSlug   string           `json:"theme_slug"`
	AuthorName  string           `json:"author_name"`
	AuthorEmail string           `json:"author_email"`
	PaidStatus  string           `json:"paid_status"`
	Status      SubmissionStatus `json:"status"`
	Branch      string           `json:"branch"`
	FileName    string           `json:"file_name"`
	PRURL       string           `json:"pr_url"`
	Error       string           `json:"error,omitempty"`
	Payload     json.RawMessage  `json:"payload"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
