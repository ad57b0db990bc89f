package theme

import (
	"encoding/json"
	"errors"
	"testing"

	"themegate/internal/models"
)

// validSubmission returns a minimal submission that passes validation.
func validSubmission() *models.ThemeSubmission {
	return &models.ThemeSubmission{
		ThemeName:        "My Cool Theme",
		AuthorName:       "Jo",
		AuthorEmail:      "jo@example.com",
		PaidStatus:       "free",
		ShortDescription: "desc",
		MainPreviewImage: &models.ImageUpload{
			Filename: "main.png",
			Type:     "image/png",
			Size:     1024,
			URL:      "https://cdn.example.com/main.png",
		},
	}
}

func imageSlot(url string) models.OptionalImage {
	return models.OptionalImage{Image: &models.ImageUpload{
		Filename: "shot.png",
		Type:     "image/png",
		Size:     2048,
		URL:      url,
	}}
}

func TestValidateAccepts(t *testing.T) {
	sub := validSubmission()
	sub.PreviewImage1 = imageSlot("https://cdn.example.com/1.png")
	sub.PreviewImage3 = imageSlot("https://cdn.example.com/3.png")
	sub.RepoURL = "https://github.com/jo/my-cool-theme"
	sub.DemoURL = "https://demo.example.com"

	if err := Validate(sub); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.ThemeSubmission)
		field  string
	}{
		{
			name:   "missing theme name",
			mutate: func(s *models.ThemeSubmission) { s.ThemeName = "  " },
			field:  "themeName",
		},
		{
			name:   "missing author name",
			mutate: func(s *models.ThemeSubmission) { s.AuthorName = "" },
			field:  "authorName",
		},
		{
			name:   "missing author email",
			mutate: func(s *models.ThemeSubmission) { s.AuthorEmail = "" },
			field:  "authorEmail",
		},
		{
			name:   "malformed email",
			mutate: func(s *models.ThemeSubmission) { s.AuthorEmail = "not-an-email" },
			field:  "authorEmail",
		},
		{
			name:   "unknown paid status",
			mutate: func(s *models.ThemeSubmission) { s.PaidStatus = "freemium" },
			field:  "paidStatus",
		},
		{
			name:   "missing description",
			mutate: func(s *models.ThemeSubmission) { s.ShortDescription = "" },
			field:  "shortDescription",
		},
		{
			name:   "missing main preview image",
			mutate: func(s *models.ThemeSubmission) { s.MainPreviewImage = nil },
			field:  "mainPreviewImage",
		},
		{
			name: "main preview missing url",
			mutate: func(s *models.ThemeSubmission) {
				s.MainPreviewImage.URL = ""
			},
			field: "mainPreviewImage",
		},
		{
			name: "main preview zero size",
			mutate: func(s *models.ThemeSubmission) {
				s.MainPreviewImage.Size = 0
			},
			field: "mainPreviewImage",
		},
		{
			name: "partial gallery descriptor",
			mutate: func(s *models.ThemeSubmission) {
				s.PreviewImage2 = models.OptionalImage{Image: &models.ImageUpload{URL: "https://x.example.com/a.png"}}
			},
			field: "previewImage2",
		},
		{
			name:   "repo url not http",
			mutate: func(s *models.ThemeSubmission) { s.RepoURL = "ftp://example.com/repo" },
			field:  "repoUrl",
		},
		{
			name:   "purchase url garbage",
			mutate: func(s *models.ThemeSubmission) { s.PurchaseURL = "::::" },
			field:  "purchaseUrl",
		},
		{
			name:   "demo url missing host",
			mutate: func(s *models.ThemeSubmission) { s.DemoURL = "https://" },
			field:  "demoUrl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(sub)

			err := Validate(sub)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if verr.Field != tt.field {
				t.Errorf("field: got %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestValidateNilSubmission(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Fatal("expected error for nil submission")
	}
}

// TestOptionalImageWireShapes verifies the "full descriptor or empty string"
// constraint at decode time.
func TestOptionalImageWireShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantSet bool
		wantErr bool
	}{
		{name: "empty string", payload: `{"previewImage2": ""}`, wantSet: false},
		{name: "null", payload: `{"previewImage2": null}`, wantSet: false},
		{name: "omitted", payload: `{}`, wantSet: false},
		{
			name:    "full descriptor",
			payload: `{"previewImage2": {"filename":"a.png","type":"image/png","size":10,"url":"https://x.example.com/a.png"}}`,
			wantSet: true,
		},
		{name: "non-empty string", payload: `{"previewImage2": "nope"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sub models.ThemeSubmission
			err := json.Unmarshal([]byte(tt.payload), &sub)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected decode error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if sub.PreviewImage2.IsSet() != tt.wantSet {
				t.Errorf("IsSet: got %v, want %v", sub.PreviewImage2.IsSet(), tt.wantSet)
			}
		})
	}
}
