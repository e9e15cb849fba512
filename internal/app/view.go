package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1).
			Bold(true)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	statusValStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	leaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("11")).
			Padding(0, 1)

	composeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("13")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	actionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	forwardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	swallowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// View implements tea.Model.
func (m *Inspector) View() tea.View {
	var view tea.View
	if m.width == 0 || m.height == 0 {
		view.SetContent("loading...")
		return view
	}

	header := m.renderHeader()
	footer := dimStyle.Render("type or click to trace resolution · ctrl+q quits")
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - 2

	stack := panelStyle.Width(28).Render(m.renderStack(bodyHeight))
	traceWidth := m.width - lipgloss.Width(stack) - 4
	if traceWidth < 20 {
		traceWidth = 20
	}
	trace := panelStyle.Width(traceWidth).Render(m.renderTrace(bodyHeight, traceWidth))

	body := lipgloss.JoinHorizontal(lipgloss.Top, trace, stack)
	view.SetContent(lipgloss.JoinVertical(lipgloss.Left, header, body, footer))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}

func (m *Inspector) renderHeader() string {
	parts := []string{titleStyle.Render("keymux inspector")}

	table := m.status.ActiveTable
	if table == "" {
		table = "default"
	}
	parts = append(parts,
		statusKeyStyle.Render(" table ")+statusValStyle.Render(table),
		statusKeyStyle.Render(" depth ")+statusValStyle.Render(fmt.Sprintf("%d", m.status.StackDepth)),
	)
	if m.status.LeaderActive {
		parts = append(parts, " "+leaderStyle.Render("LEADER"))
	}
	if m.status.Composing != "" {
		parts = append(parts, " "+composeStyle.Render("composing "+m.status.Composing))
	}
	if !m.focused {
		parts = append(parts, " "+dimStyle.Render("(unfocused)"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *Inspector) renderStack(height int) string {
	var sb strings.Builder
	sb.WriteString(statusValStyle.Render("key table stack"))
	sb.WriteString("\n\n")

	entries := m.engine.StackEntries()
	if len(entries) == 0 {
		sb.WriteString(dimStyle.Render("(empty)"))
		return sb.String()
	}
	// Top of stack first.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		sb.WriteString(fmt.Sprintf("%d. %s", len(entries)-i, e.Table))
		var flags []string
		if e.OneShot {
			flags = append(flags, "one_shot")
		}
		if e.UntilUnknown {
			flags = append(flags, "until_unknown")
		}
		if e.PreventFallback {
			flags = append(flags, "prevent_fallback")
		}
		if e.Timeout > 0 {
			flags = append(flags, e.Timeout.String())
		}
		if len(flags) > 0 {
			sb.WriteString("\n   " + dimStyle.Render(strings.Join(flags, " ")))
		}
		sb.WriteString("\n")
	}
	return trimLines(sb.String(), height)
}

func (m *Inspector) renderTrace(height, width int) string {
	if len(m.trace) == 0 {
		return dimStyle.Render("no events yet")
	}

	rows := height
	if rows < 1 {
		rows = 1
	}
	start := len(m.trace) - rows
	if start < 0 {
		start = 0
	}

	var lines []string
	for _, entry := range m.trace[start:] {
		style := dimStyle
		switch entry.decision {
		case "action":
			style = actionStyle
		case "forward":
			style = forwardStyle
		case "swallow":
			style = swallowStyle
		}
		line := fmt.Sprintf("%s %-22s %s %s",
			dimStyle.Render(entry.when.Format("15:04:05.000")),
			entry.event,
			style.Render(fmt.Sprintf("%-8s", entry.decision)),
			entry.detail,
		)
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}
	return strings.Join(lines, "\n")
}

func trimLines(s string, max int) string {
	if max < 1 {
		return s
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) <= max {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:max], "\n")
}
