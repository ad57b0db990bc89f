// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme holds the submission domain logic: payload validation,
// the pure mapping from a validated submission to the published gallery
// record, and the derived branch/file/PR identifiers.
package theme

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"themegate/internal/models"
)

// Validation limits for submission fields.
const (
	maxThemeNameLen   = 200
	maxAuthorNameLen  = 200
	maxEmailLen       = 320
	maxDescriptionLen = 1_000
	maxURLLen         = 2_000
)

// ValidationError reports a submission field that failed validation.
// It is the only typed error the pipeline produces; everything else
// propagates unwrapped from the underlying clients.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid submission: %s %s", e.Field, e.Reason)
}

// Validate checks a decoded submission against the form schema and returns
// the first *ValidationError found, or nil when the submission is valid.
// It performs no I/O, so a failing submission never touches the filesystem
// or the network.
func Validate(sub *models.ThemeSubmission) error {
	if sub == nil {
		return &ValidationError{Field: "data", Reason: "is missing"}
	}

	if strings.TrimSpace(sub.ThemeName) == "" {
		return &ValidationError{Field: "themeName", Reason: "is required"}
	}
	if utf8.RuneCountInString(sub.ThemeName) > maxThemeNameLen {
		return &ValidationError{Field: "themeName", Reason: fmt.Sprintf("is too long (max %d characters)", maxThemeNameLen)}
	}

	if strings.TrimSpace(sub.AuthorName) == "" {
		return &ValidationError{Field: "authorName", Reason: "is required"}
	}
	if utf8.RuneCountInString(sub.AuthorName) > maxAuthorNameLen {
		return &ValidationError{Field: "authorName", Reason: fmt.Sprintf("is too long (max %d characters)", maxAuthorNameLen)}
	}

	if err := validateEmail(sub.AuthorEmail); err != nil {
		return err
	}

	if sub.PaidStatus != "free" && sub.PaidStatus != "paid" {
		return &ValidationError{Field: "paidStatus", Reason: `must be "free" or "paid"`}
	}

	if strings.TrimSpace(sub.ShortDescription) == "" {
		return &ValidationError{Field: "shortDescription", Reason: "is required"}
	}
	if utf8.RuneCountInString(sub.ShortDescription) > maxDescriptionLen {
		return &ValidationError{Field: "shortDescription", Reason: fmt.Sprintf("is too long (max %d characters)", maxDescriptionLen)}
	}

	if sub.MainPreviewImage == nil {
		return &ValidationError{Field: "mainPreviewImage", Reason: "is required"}
	}
	if err := validateImage("mainPreviewImage", sub.MainPreviewImage); err != nil {
		return err
	}

	previews := []struct {
		field string
		slot  models.OptionalImage
	}{
		{"previewImage1", sub.PreviewImage1},
		{"previewImage2", sub.PreviewImage2},
		{"previewImage3", sub.PreviewImage3},
		{"previewImage4", sub.PreviewImage4},
	}
	for _, p := range previews {
		if !p.slot.IsSet() {
			continue
		}
		if err := validateImage(p.field, p.slot.Image); err != nil {
			return err
		}
	}

	for _, link := range []struct {
		field string
		value string
	}{
		{"repoUrl", sub.RepoURL},
		{"purchaseUrl", sub.PurchaseURL},
		{"demoUrl", sub.DemoURL},
	} {
		if link.value == "" {
			continue
		}
		if err := validateURL(link.field, link.value); err != nil {
			return err
		}
	}

	return nil
}

// validateImage checks that an image descriptor is complete. Partially
// filled descriptors are rejected rather than silently repaired.
func validateImage(field string, img *models.ImageUpload) error {
	if strings.TrimSpace(img.Filename) == "" {
		return &ValidationError{Field: field, Reason: "is missing filename"}
	}
	if strings.TrimSpace(img.Type) == "" {
		return &ValidationError{Field: field, Reason: "is missing type"}
	}
	if img.Size <= 0 {
		return &ValidationError{Field: field, Reason: "has invalid size"}
	}
	return validateURL(field, img.URL)
}

func validateURL(field, raw string) error {
	if utf8.RuneCountInString(raw) > maxURLLen {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("is too long (max %d characters)", maxURLLen)}
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: field, Reason: "must be an http(s) URL"}
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return &ValidationError{Field: "authorEmail", Reason: "is required"}
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return &ValidationError{Field: "authorEmail", Reason: fmt.Sprintf("is too long (max %d characters)", maxEmailLen)}
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t\n") {
		return &ValidationError{Field: "authorEmail", Reason: "must be a valid email address"}
	}
	return nil
}
