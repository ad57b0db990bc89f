// Package tabs implements an accessible tab strip for terminal UIs. The
// widget owns its selection state: exactly one tab is selected at all times,
// exactly one panel is visible, and the two indices always match. It is
// built once at application start and mutated only through Update and
// SwitchTab.
package tabs

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Padding(0, 1)
	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	panelFocusedStyle = panelStyle.
				BorderForeground(lipgloss.Color("57"))
)

// tabSep separates tab labels in the strip.
const tabSep = "│"

// Tab is one entry in the strip: a title shown in the tab bar and the
// content shown in the panel while the tab is selected.
type Tab struct {
	Title   string
	Content string
}

// Model is the tab widget state. The zero value is not usable; construct
// with New.
type Model struct {
	tabs     []Tab
	selected int
	focused  bool // true when focus sits in the panel, not the strip
	panel    viewport.Model
	width    int
	height   int
}

// New builds the widget from the given tabs. The first tab starts selected
// and focus sits on the strip.
func New(items []Tab) Model {
	m := Model{
		tabs:  items,
		panel: viewport.New(80, 20),
	}
	m.syncPanel()
	return m
}

// Selected returns the index of the selected tab.
func (m Model) Selected() int { return m.selected }

// PanelFocused reports whether focus currently sits in the panel.
func (m Model) PanelFocused() bool { return m.focused }

// Count returns the number of tabs.
func (m Model) Count() int { return len(m.tabs) }

// SwitchTab selects the tab at target and moves focus back to the strip.
// An out-of-range target, or the already-selected tab, is a no-op.
func (m *Model) SwitchTab(target int) {
	if target < 0 || target >= len(m.tabs) || target == m.selected {
		return
	}
	m.selected = target
	m.focused = false
	m.syncPanel()
}

// SetContent replaces the content of tab i without touching the selection.
func (m *Model) SetContent(i int, content string) {
	if i < 0 || i >= len(m.tabs) {
		return
	}
	m.tabs[i].Content = content
	if i == m.selected {
		m.syncPanel()
	}
}

// SetSize resizes the widget. height covers the strip plus the panel.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	frame := panelStyle.GetVerticalFrameSize() + 1 // +1 for the strip line
	m.panel.Width = width - panelStyle.GetHorizontalFrameSize()
	m.panel.Height = max(height-frame, 1)
}

// syncPanel loads the selected tab's content into the viewport and resets
// the scroll position.
func (m *Model) syncPanel() {
	if len(m.tabs) == 0 {
		return
	}
	m.panel.SetContent(m.tabs[m.selected].Content)
	m.panel.GotoTop()
}

// Update handles key and mouse input. Left/Right move the selection to the
// adjacent tab with no wraparound, Down moves focus into the panel, Esc
// returns it to the strip. Keys the widget does not know are ignored.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.focused {
			if msg.String() == "esc" {
				m.focused = false
				return m, nil
			}
			var cmd tea.Cmd
			m.panel, cmd = m.panel.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "left", "h":
			m.SwitchTab(m.selected - 1)
		case "right", "l":
			m.SwitchTab(m.selected + 1)
		case "down", "j":
			m.focused = true
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if i := m.tabAt(msg.X); i >= 0 {
				m.SwitchTab(i)
			}
		}
	}
	return m, nil
}

// tabAt maps an x coordinate on the strip line to a tab index, or -1 when
// the coordinate falls outside every label.
func (m Model) tabAt(x int) int {
	pos := 0
	for i, tab := range m.tabs {
		w := lipgloss.Width(m.renderTab(i, tab))
		if x >= pos && x < pos+w {
			return i
		}
		pos += w
		if i < len(m.tabs)-1 {
			pos += lipgloss.Width(tabSep)
		}
	}
	return -1
}

func (m Model) renderTab(i int, tab Tab) string {
	if i == m.selected {
		return activeTabStyle.Render(tab.Title)
	}
	return inactiveTabStyle.Render(tab.Title)
}

// View renders the strip above the panel. The focused element carries the
// highlight so the active tab and visible panel are always identifiable.
func (m Model) View() string {
	if len(m.tabs) == 0 {
		return ""
	}

	labels := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		labels[i] = m.renderTab(i, tab)
	}
	strip := strings.Join(labels, tabSepStyle.Render(tabSep))

	style := panelStyle
	if m.focused {
		style = panelFocusedStyle
	}
	if m.width > 0 {
		style = style.Width(m.width - panelStyle.GetHorizontalFrameSize())
	}
	return strip + "\n" + style.Render(m.panel.View())
}
