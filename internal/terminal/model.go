package terminal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/atomicstack/bootmenu/internal/display"
	"github.com/atomicstack/bootmenu/internal/input"
	"github.com/atomicstack/bootmenu/internal/logging/events"
	"github.com/atomicstack/bootmenu/internal/theme"
)

type redrawMsg struct{}

type editRequest struct {
	prompt  string
	options string
	reply   chan editResult
}

type editResult struct {
	value string
	ok    bool
}

// model is the Bubble Tea side of the terminal: it renders the shared grid
// and forwards keys to the menu goroutine.
type model struct {
	grid   *display.Grid
	keys   *input.Queue
	keymap KeyMap
	styles *theme.Styles
	fixed  bool

	edit *editSession
}

type editSession struct {
	req   editRequest
	field textinput.Model
}

func newModel(grid *display.Grid, keys *input.Queue, keymap KeyMap, styles *theme.Styles, fixed bool) *model {
	return &model{grid: grid, keys: keys, keymap: keymap, styles: styles, fixed: fixed}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.fixed {
			m.grid.Resize(msg.Width, msg.Height)
		}
		if m.edit != nil {
			m.edit.field.Width = m.fieldWidth()
		}
	case tea.KeyMsg:
		if m.edit != nil {
			return m, m.updateEdit(msg)
		}
		if k, ok := m.keymap.Translate(msg); ok {
			events.Input.Key("terminal", k.String())
			m.keys.Push(k)
		}
	case editRequest:
		return m, m.startEdit(msg)
	case redrawMsg:
	}
	return m, nil
}

func (m *model) View() string {
	view := m.grid.Render(m.styles.Render)
	if m.edit == nil {
		return view
	}
	lines := strings.Split(view, "\n")
	lines[len(lines)-1] = m.edit.field.View()
	return strings.Join(lines, "\n")
}

func (m *model) startEdit(req editRequest) tea.Cmd {
	if m.edit != nil {
		req.reply <- editResult{value: req.options}
		return nil
	}
	field := textinput.New()
	field.Prompt = req.prompt + " "
	if m.styles.EditorPrompt != nil {
		field.PromptStyle = *m.styles.EditorPrompt
	}
	if m.styles.EditorText != nil {
		field.TextStyle = *m.styles.EditorText
	}
	field.SetValue(req.options)
	field.CursorEnd()
	m.edit = &editSession{req: req, field: field}
	m.edit.field.Width = m.fieldWidth()
	return m.edit.field.Focus()
}

func (m *model) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.finishEdit(editResult{value: m.edit.field.Value(), ok: true})
		return nil
	case tea.KeyEsc, tea.KeyCtrlC:
		m.finishEdit(editResult{value: m.edit.req.options})
		return nil
	}
	var cmd tea.Cmd
	m.edit.field, cmd = m.edit.field.Update(msg)
	return cmd
}

func (m *model) finishEdit(res editResult) {
	m.edit.req.reply <- res
	m.edit = nil
}

func (m *model) fieldWidth() int {
	cols, _ := m.grid.Size()
	width := cols - runewidth.StringWidth(m.edit.field.Prompt) - 1
	return max(width, 1)
}
