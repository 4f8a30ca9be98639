// Package tui is the interactive full-screen task view.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/textinput"

	"todoctl/internal/service"
	"todoctl/internal/session"
	"todoctl/internal/tasks"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeRename
	modeConfirmDelete
)

// Messages produced by background service calls. Every mutation ends with a
// snapshot of the syncer cache, so the view always renders the reconciled
// list rather than whatever the keypress optimistically assumed.
type (
	tasksMsg struct {
		tasks []service.Task
		err   string
	}
)

// Model is the bubbletea model for the task view.
type Model struct {
	ctx  context.Context
	sync *tasks.Syncer

	username string
	filter   tasks.Filter
	cursor   int
	mode     mode
	renameID int
	deleteID int

	input  textinput.Model
	status string

	width  int
	height int
}

// NewModel creates the initial model. The first fetch is issued by Init.
func NewModel(ctx context.Context, sess *session.Manager, svc service.Service) Model {
	ti := textinput.New()
	ti.CharLimit = 200
	return Model{
		ctx:      ctx,
		sync:     tasks.NewSyncer(svc),
		username: sess.Username(),
		filter:   tasks.FilterAll,
		input:    ti,
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, sess *session.Manager, svc service.Service) error {
	p := tea.NewProgram(NewModel(ctx, sess, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksMsg:
		m.status = msg.err
		m.cursor = clampCursor(m.cursor, len(m.visible(msg.tasks)))
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeRename:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visible(m.sync.Tasks())

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		m.cursor = clampCursor(m.cursor+1, len(visible))
		return m, nil

	case "k", "up":
		m.cursor = clampCursor(m.cursor-1, len(visible))
		return m, nil

	case "g", "home":
		m.cursor = 0
		return m, nil

	case "G", "end":
		m.cursor = clampCursor(len(visible)-1, len(visible))
		return m, nil

	case "f", "tab":
		m.filter = m.filter.Next()
		m.cursor = clampCursor(m.cursor, len(m.visible(m.sync.Tasks())))
		return m, nil

	case "r":
		return m, m.fetchCmd()

	case " ", "enter":
		if m.cursor < len(visible) {
			return m, m.toggleCmd(visible[m.cursor].ID)
		}
		return m, nil

	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "task name"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case "e":
		if m.cursor < len(visible) {
			m.mode = modeRename
			m.renameID = visible[m.cursor].ID
			m.input.Placeholder = ""
			m.input.SetValue(visible[m.cursor].Name)
			m.input.CursorEnd()
			m.input.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case "d", "x":
		if m.cursor < len(visible) {
			m.mode = modeConfirmDelete
			m.deleteID = visible[m.cursor].ID
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		return m, nil

	case "enter":
		name := m.input.Value()
		mode := m.mode
		m.mode = modeList
		m.input.Blur()
		if name == "" {
			return m, nil
		}
		if mode == modeRename {
			return m, m.renameCmd(m.renameID, name)
		}
		return m, m.addCmd(name)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = modeList
		return m, m.removeCmd(m.deleteID)
	case "n", "N", "esc":
		m.mode = modeList
		return m, nil
	}
	return m, nil
}

func (m Model) visible(list []service.Task) []service.Task {
	return tasks.Apply(list, m.filter)
}

// clampCursor keeps the cursor inside [0, n) and pins it to 0 for an empty
// list.
func clampCursor(cursor, n int) int {
	if n == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

func (m Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.sync.Fetch(m.ctx)
		return snapshot(m.sync, err)
	}
}

func (m Model) addCmd(name string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.sync.Add(m.ctx, name)
		return snapshot(m.sync, err)
	}
}

func (m Model) toggleCmd(id int) tea.Cmd {
	return func() tea.Msg {
		_, err := m.sync.Toggle(m.ctx, id)
		return snapshot(m.sync, err)
	}
}

func (m Model) renameCmd(id int, name string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.sync.Rename(m.ctx, id, name)
		return snapshot(m.sync, err)
	}
}

func (m Model) removeCmd(id int) tea.Cmd {
	return func() tea.Msg {
		err := m.sync.Remove(m.ctx, id)
		return snapshot(m.sync, err)
	}
}

func snapshot(sync *tasks.Syncer, err error) tasksMsg {
	msg := tasksMsg{tasks: sync.Tasks()}
	if err != nil {
		msg.err = fmt.Sprintf("error: %v", err)
	}
	return msg
}
