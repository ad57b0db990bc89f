// Package tui implements the maintainer review terminal UI: a list of
// recorded submissions browsed with bracket keys, with a tabbed detail
// view per submission.
package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"themegate/internal/models"
	"themegate/internal/tui/tabs"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Padding(0, 1)
	statusStyles = map[models.SubmissionStatus]lipgloss.Style{
		models.SubmissionStatusPending:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.SubmissionStatusCompleted: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.SubmissionStatusFailed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(1, 2)
)

// tab indices in the detail view.
const (
	tabOverview = iota
	tabGallery
	tabLinks
	tabPayload
)

// Model is the review application state. Construct with New.
type Model struct {
	submissions []models.Submission
	index       int
	detail      tabs.Model
	width       int
	height      int
	quitting    bool
}

// New builds the review model over the given submissions, newest first.
// The detail widget is constructed once; navigation only swaps its content.
func New(submissions []models.Submission) Model {
	m := Model{
		submissions: submissions,
		detail: tabs.New([]tabs.Tab{
			{Title: "Overview"},
			{Title: "Gallery"},
			{Title: "Links"},
			{Title: "Payload"},
		}),
	}
	m.loadCurrent()
	return m
}

// Index returns the position of the submission on display.
func (m Model) Index() int { return m.index }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model. Bracket keys move across submissions, q
// quits, everything else goes to the tab widget.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.SetSize(msg.Width, msg.Height-2)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "[":
			if m.index > 0 {
				m.index--
				m.loadCurrent()
			}
			return m, nil
		case "]":
			if m.index < len(m.submissions)-1 {
				m.index++
				m.loadCurrent()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.submissions) == 0 {
		return emptyStyle.Render("No submissions recorded yet.") + "\n" +
			footerStyle.Render("q quit")
	}

	sub := m.submissions[m.index]
	status := statusStyles[sub.Status].Render(string(sub.Status))
	header := headerStyle.Render(fmt.Sprintf("%s  %s  (%d/%d)",
		sub.ThemeName, status, m.index+1, len(m.submissions)))

	footer := footerStyle.Render("[ prev  ] next  ←/→ tabs  ↓ panel  esc back  q quit")

	return header + "\n" + m.detail.View() + "\n" + footer
}

// loadCurrent fills the detail tabs from the submission on display.
func (m *Model) loadCurrent() {
	if len(m.submissions) == 0 {
		return
	}
	sub := m.submissions[m.index]

	var payload models.ThemeSubmission
	havePayload := len(sub.Payload) > 0 && json.Unmarshal(sub.Payload, &payload) == nil

	m.detail.SetContent(tabOverview, renderOverview(sub, havePayload, payload))
	m.detail.SetContent(tabGallery, renderGallery(havePayload, payload))
	m.detail.SetContent(tabLinks, renderLinks(sub, havePayload, payload))
	m.detail.SetContent(tabPayload, renderPayload(sub))
}

func renderOverview(sub models.Submission, havePayload bool, payload models.ThemeSubmission) string {
	var b strings.Builder
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-12s %s\n", label, value)
		}
	}
	row("Theme", sub.ThemeName)
	row("Slug", sub.ThemeSlug)
	row("Author", fmt.Sprintf("%s <%s>", sub.AuthorName, sub.AuthorEmail))
	row("Paid", sub.PaidStatus)
	row("Status", string(sub.Status))
	row("Branch", sub.Branch)
	row("File", sub.FileName)
	row("Submitted", sub.CreatedAt.Format("2006-01-02 15:04:05"))
	if sub.Error != "" {
		row("Error", sub.Error)
	}
	if havePayload && payload.ShortDescription != "" {
		b.WriteString("\n" + payload.ShortDescription + "\n")
	}
	return b.String()
}

func renderGallery(havePayload bool, payload models.ThemeSubmission) string {
	if !havePayload {
		return "Payload not recorded."
	}
	var b strings.Builder
	if payload.MainPreviewImage != nil {
		fmt.Fprintf(&b, "main      %s\n", payload.MainPreviewImage.URL)
	}
	for i, img := range payload.GalleryImages() {
		fmt.Fprintf(&b, "gallery %d %s\n", i+1, img.URL)
	}
	if b.Len() == 0 {
		return "No images."
	}
	return b.String()
}

func renderLinks(sub models.Submission, havePayload bool, payload models.ThemeSubmission) string {
	var b strings.Builder
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-10s %s\n", label, value)
		}
	}
	row("PR", sub.PRURL)
	if havePayload {
		row("Repo", payload.RepoURL)
		row("Demo", payload.DemoURL)
		row("Purchase", payload.PurchaseURL)
	}
	if sub.PRURL != "" {
		fmt.Fprintf(&b, "\nQR handoff: GET /api/submissions/%s/qr.png\n", sub.ID)
	}
	if b.Len() == 0 {
		return "No links."
	}
	return b.String()
}

func renderPayload(sub models.Submission) string {
	if len(sub.Payload) == 0 {
		return "Payload not recorded."
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, sub.Payload, "", "  "); err != nil {
		return string(sub.Payload)
	}
	return pretty.String()
}
