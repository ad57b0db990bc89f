// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// RecordImage is an image reference in a published gallery record.
type RecordImage struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// RecordLink is an outbound link in a published gallery record.
// Labels are fixed by the site templates ("View Repo", "View Demo").
type RecordLink struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

// ThemeRecord is the JSON document written into the gallery repository's
// theme-data directory. FullDescription, Categories, and Slug are filled in
// later by the site maintainers; at creation they are always empty.
type ThemeRecord struct {
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	FullDescription string        `json:"fullDescription"`
	Image           RecordImage   `json:"image"`
	Images          []RecordImage `json:"images"`
	Categories      []string      `json:"categories"`
	Slug            string        `json:"slug"`
	RepoLink        *RecordLink   `json:"repoLink,omitempty"`
	DemoLink        *RecordLink   `json:"demoLink,omitempty"`
}
