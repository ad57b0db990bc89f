// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"fmt"

	"themegate/internal/models"
)

// Link labels are fixed by the gallery site templates.
const (
	repoLinkLabel = "View Repo"
	demoLinkLabel = "View Demo"
)

// NewRecord maps a validated submission to the gallery record written into
// the site repository. It is a pure function: the submission is never
// mutated and every record field is fully initialized, so empty collections
// serialize as [] rather than null.
//
// The purchase URL deliberately does not appear in the record's links; it
// is only surfaced in the pull request body for the reviewing maintainer.
func NewRecord(sub *models.ThemeSubmission) models.ThemeRecord {
	rec := models.ThemeRecord{
		Title:       sub.ThemeName,
		Description: sub.ShortDescription,
		Image: models.RecordImage{
			Src: sub.MainPreviewImage.URL,
			Alt: "Preview for " + sub.ThemeName,
		},
		Images:     []models.RecordImage{},
		Categories: []string{},
	}

	// Gallery slots keep their form order (1..4); empty slots are skipped.
	for i, img := range sub.GalleryImages() {
		rec.Images = append(rec.Images, models.RecordImage{
			Src: img.URL,
			Alt: fmt.Sprintf("%s gallery image %d", sub.ThemeName, i+1),
		})
	}

	if sub.RepoURL != "" {
		rec.RepoLink = &models.RecordLink{Href: sub.RepoURL, Label: repoLinkLabel}
	}
	if sub.DemoURL != "" {
		rec.DemoLink = &models.RecordLink{Href: sub.DemoURL, Label: demoLinkLabel}
	}

	return rec
}
