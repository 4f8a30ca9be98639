package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todoctl/internal/service"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#fafafa"})

	filterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#5a56e0", Dark: "#7571f9"})

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#5a56e0", Dark: "#7571f9"}).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Faint(true).
			Strikethrough(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#c0392b", Dark: "#ff6b6b"})

	helpStyle = lipgloss.NewStyle().Faint(true)
)

const helpLine = "j/k move · space toggle · a add · e rename · d delete · f filter · r refresh · q quit"

func (m Model) View() string {
	var b strings.Builder

	header := titleStyle.Render("tasks")
	if m.username != "" {
		header += helpStyle.Render(" · " + m.username)
	}
	header += "  " + filterStyle.Render("["+m.filter.Title()+"]")
	b.WriteString(header + "\n\n")

	visible := m.visible(m.sync.Tasks())
	if len(visible) == 0 {
		b.WriteString(helpStyle.Render("no tasks") + "\n")
	}
	for i, task := range visible {
		b.WriteString(m.renderRow(i, task) + "\n")
	}

	b.WriteString("\n")
	switch m.mode {
	case modeAdd:
		b.WriteString("add: " + m.input.View() + "\n")
	case modeRename:
		b.WriteString("rename: " + m.input.View() + "\n")
	case modeConfirmDelete:
		name := ""
		if t, ok := m.sync.Find(m.deleteID); ok {
			name = t.Name
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("delete %q? [y/n]", name)) + "\n")
	default:
		if m.status != "" {
			b.WriteString(errorStyle.Render(m.status) + "\n")
		} else if m.sync.Loading() {
			b.WriteString(helpStyle.Render("loading…") + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render(helpLine) + "\n")
	return b.String()
}

func (m Model) renderRow(i int, task service.Task) string {
	cursor := "  "
	if i == m.cursor && m.mode != modeAdd {
		cursor = cursorStyle.Render("> ")
	}

	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}

	name := task.Name
	if strings.TrimSpace(name) == "" {
		name = "(untitled)"
	}
	if task.Completed {
		name = doneStyle.Render(name)
	}

	return fmt.Sprintf("%s%s %s", cursor, box, name)
}
