package terminal

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/bootmenu/internal/display"
	"github.com/atomicstack/bootmenu/internal/input"
	"github.com/atomicstack/bootmenu/internal/theme"
)

func TestTranslate(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want input.Key
		ok   bool
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, input.Scan(input.ScanUp), true},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, input.Scan(input.ScanRight), true},
		{"pgdown", tea.KeyMsg{Type: tea.KeyPgDown}, input.Scan(input.ScanPageDown), true},
		{"f2", tea.KeyMsg{Type: tea.KeyF2}, input.Scan(input.ScanF2), true},
		{"f10", tea.KeyMsg{Type: tea.KeyF10}, input.Scan(input.ScanF10), true},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, input.Scan(input.ScanEsc), true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, input.Scan(input.ScanEsc), true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, input.Char('\r'), true},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, input.Char(' '), true},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, input.Char('\b'), true},
		{"plus", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}}, input.Char('+'), true},
		{"letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, input.Char('w'), true},
		{"alt letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}, Alt: true}, input.Key{}, false},
		{"ctrl+a", tea.KeyMsg{Type: tea.KeyCtrlA}, input.Key{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.Translate(tt.msg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newTestModel(fixed bool) (*model, *display.Grid, *input.Queue) {
	grid := display.NewGrid(20, 4)
	keys := input.NewQueue(8)
	return newModel(grid, keys, DefaultKeyMap(), theme.Default(), fixed), grid, keys
}

func TestModelForwardsKeys(t *testing.T) {
	m, _, keys := newTestModel(true)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	k, ok := keys.PollKey()
	require.True(t, ok)
	assert.Equal(t, input.Scan(input.ScanDown), k)
	k, ok = keys.PollKey()
	require.True(t, ok)
	assert.Equal(t, input.Char('\r'), k)
	_, ok = keys.PollKey()
	assert.False(t, ok)
}

func TestModelResize(t *testing.T) {
	m, grid, _ := newTestModel(false)
	m.Update(tea.WindowSizeMsg{Width: 50, Height: 10})
	cols, rows := grid.Size()
	assert.Equal(t, 50, cols)
	assert.Equal(t, 10, rows)

	fixed, fixedGrid, _ := newTestModel(true)
	fixed.Update(tea.WindowSizeMsg{Width: 50, Height: 10})
	cols, rows = fixedGrid.Size()
	assert.Equal(t, 20, cols)
	assert.Equal(t, 4, rows)
}

func TestModelViewRendersGrid(t *testing.T) {
	m, grid, _ := newTestModel(true)
	display.BeginTextScreen(grid, "Main")
	grid.MoveTo(2, 2)
	grid.Print("Linux")
	view := m.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Main")
	assert.Contains(t, lines[2], "Linux")
}

func TestModelEditSession(t *testing.T) {
	m, _, keys := newTestModel(true)
	reply := make(chan editResult, 1)
	m.Update(editRequest{prompt: "Options:", options: "ro", reply: reply})
	require.NotNil(t, m.edit)
	assert.Contains(t, m.View(), "Options:")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" quiet")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	res := <-reply
	assert.True(t, res.ok)
	assert.Equal(t, "ro quiet", res.value)
	assert.Nil(t, m.edit)
	_, ok := keys.PollKey()
	assert.False(t, ok, "keys typed into the editor must not reach the menu")
}

func TestModelEditCancel(t *testing.T) {
	m, _, _ := newTestModel(true)
	reply := make(chan editResult, 1)
	m.Update(editRequest{prompt: ">", options: "ro", reply: reply})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	res := <-reply
	assert.False(t, res.ok)
	assert.Equal(t, "ro", res.value)
}

func TestEditorWaitsForReply(t *testing.T) {
	done := make(chan struct{})
	e := &Editor{prompt: ">", done: done, send: func(msg tea.Msg) {
		req := msg.(editRequest)
		req.reply <- editResult{value: req.options + " single", ok: true}
	}}
	got, ok, err := e.Edit(context.Background(), "ro")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ro single", got)

	close(done)
	closed := &Editor{prompt: ">", done: done, send: func(tea.Msg) {}}
	_, _, err = closed.Edit(context.Background(), "ro")
	assert.True(t, errors.Is(err, input.ErrClosed))
}

func TestTerminalStopClosesInput(t *testing.T) {
	term := New(Options{Width: 20, Height: 4, Input: strings.NewReader(""), Output: &strings.Builder{}})
	term.Start()
	term.Console().Print("x")
	require.NoError(t, term.Stop())
	_, err := term.Input().WaitKey(context.Background())
	assert.ErrorIs(t, err, input.ErrClosed)
}
