// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"themegate/internal/models"
	"themegate/internal/slug"
)

// branchPrefix namespaces all submission branches in the gallery repository.
const branchPrefix = "theme-submissions/"

// BranchName derives the git branch for a submission. The timestamp is
// captured fresh per request by the caller, so two concurrent submissions
// of the same theme get distinct branches.
func BranchName(themeName string, ts time.Time) string {
	return branchPrefix + slug.Generate(themeName) + "-" + strconv.FormatInt(ts.UnixMilli(), 10)
}

// FileName derives the JSON data file name for a submission.
func FileName(themeName string, ts time.Time) string {
	return slug.Generate(themeName) + "-" + strconv.FormatInt(ts.UnixMilli(), 10) + ".json"
}

// CommitMessage is the fixed-format message used for the single data-file commit.
func CommitMessage(themeName string) string {
	return "Add theme " + themeName
}

// PRTitle is the fixed-format pull request title.
func PRTitle(themeName string) string {
	return "THEME: " + themeName
}

// PRBody renders the pull request description shown to the reviewing
// maintainer. Optional links default to "N/A" when absent.
func PRBody(sub *models.ThemeSubmission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Author:** %s\n", sub.AuthorName)
	fmt.Fprintf(&b, "**Paid status:** %s\n", sub.PaidStatus)
	fmt.Fprintf(&b, "**Repo:** %s\n", orNA(sub.RepoURL))
	fmt.Fprintf(&b, "**Purchase:** %s\n", orNA(sub.PurchaseURL))
	fmt.Fprintf(&b, "**Demo:** %s\n", orNA(sub.DemoURL))
	fmt.Fprintf(&b, "\n%s\n", sub.ShortDescription)
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
