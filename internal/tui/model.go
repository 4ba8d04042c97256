// Package tui provides the Bubble Tea options menu shown before a session.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuicube/internal/model"
	statsPkg "github.com/verte-zerg/tuicube/internal/stats"
)

type item int

const (
	itemStyle item = iota
	itemDiscipline
	itemStart
	itemExit
	itemCount
)

var itemLabels = [itemCount]string{"Style", "Run Option", "Start Timer", "Exit"}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	itemTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("#F0F0F0")).Foreground(lipgloss.Color("#000000"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea options menu.
type Model struct {
	config   model.Config
	selected item
	start    bool

	width  int
	height int

	summary statsPkg.Summary
}

// NewModel constructs a menu over cfg. history holds previously saved solve
// times for the footer and may be empty.
func NewModel(cfg model.Config, history []time.Duration) *Model {
	return &Model{
		config:  cfg,
		summary: statsPkg.Summarize(history),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < itemCount-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ":
			return m, m.activate()
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

func (m *Model) activate() tea.Cmd {
	switch m.selected {
	case itemStyle:
		m.config.Style = m.config.Style.Next()
	case itemDiscipline:
		m.config.Discipline = m.config.Discipline.Next()
	case itemStart:
		m.start = true
		return tea.Quit
	case itemExit:
		return tea.Quit
	}
	return nil
}

// Result returns the chosen configuration and whether the timer should start.
func (m *Model) Result() (model.Config, bool) {
	return m.config, m.start
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{titleStyle.Render("Customization Menu"), ""}
	for i := range itemCount {
		label := itemTextStyle.Render(itemLabels[i])
		if i == m.selected {
			label = selectedStyle.Render(itemLabels[i])
		}
		if value := m.value(i); value != "" {
			label += ": " + valueStyle.Render(value)
		}
		lines = append(lines, label)
	}
	content := strings.Join(lines, "\n")
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) value(i item) string {
	switch i {
	case itemStyle:
		return m.config.Style.String()
	case itemDiscipline:
		return m.config.Discipline.String()
	default:
		return ""
	}
}

func (m *Model) renderFooter() string {
	hint := "↑/↓ move · enter select · esc quit"
	if m.summary.Count == 0 {
		return footerStyle.Render(hint)
	}
	segments := []string{
		fmt.Sprintf("%d saved", m.summary.Count),
		"Best " + m.summary.Best.String(),
		"Ao5 " + m.summary.Ao5.String(),
		hint,
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

// Run shows the menu on the alternate screen and returns the chosen
// configuration and whether to start the timer.
func Run(cfg model.Config, history []time.Duration) (model.Config, bool, error) {
	m := NewModel(cfg, history)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return cfg, false, fmt.Errorf("failed to run menu: %w", err)
	}
	chosen, start := m.Result()
	return chosen, start, nil
}
