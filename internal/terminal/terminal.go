// Package terminal runs the menu on a character terminal through Bubble Tea.
// The menu goroutine draws on a display.Grid and reads keys from an
// input.Queue; the Bubble Tea program renders the grid and fills the queue.
package terminal

import (
	"errors"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/atomicstack/bootmenu/internal/display"
	"github.com/atomicstack/bootmenu/internal/input"
	"github.com/atomicstack/bootmenu/internal/theme"
)

const (
	defaultCols = 80
	defaultRows = 25
)

// Options configure a Terminal. A zero Width or Height follows the tty.
type Options struct {
	Width     int
	Height    int
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
	Styles    *theme.Styles
	KeyMap    *KeyMap
}

// Terminal owns a Bubble Tea program and the grid it renders.
type Terminal struct {
	grid    *display.Grid
	keys    *input.Queue
	model   *model
	program *tea.Program

	wake      chan struct{}
	done      chan struct{}
	startOnce sync.Once
	err       error
}

// New prepares a terminal; Start runs it.
func New(opts Options) *Terminal {
	cols, rows := opts.Width, opts.Height
	fixed := cols > 0 && rows > 0
	if !fixed {
		cols, rows = probeSize()
	}
	styles := opts.Styles
	if styles == nil {
		styles = theme.Default()
	}
	keymap := DefaultKeyMap()
	if opts.KeyMap != nil {
		keymap = *opts.KeyMap
	}

	grid := display.NewGrid(cols, rows)
	keys := input.NewQueue(64)
	m := newModel(grid, keys, keymap, styles, fixed)

	var programOpts []tea.ProgramOption
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	t := &Terminal{
		grid:    grid,
		keys:    keys,
		model:   m,
		program: tea.NewProgram(m, programOpts...),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	grid.OnChange(t.notify)
	return t
}

func probeSize() (int, int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return defaultCols, defaultRows
	}
	return cols, rows
}

// Console is the grid the menu draws on.
func (t *Terminal) Console() display.Console { return t.grid }

// Grid exposes the grid for rendering outside the program.
func (t *Terminal) Grid() *display.Grid { return t.grid }

// Input is the key source fed by the program.
func (t *Terminal) Input() input.Source { return t.keys }

// Start runs the program in the background. The key queue is closed when
// the program ends.
func (t *Terminal) Start() {
	t.startOnce.Do(func() {
		go t.forwardRedraws()
		go func() {
			_, err := t.program.Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				err = nil
			}
			t.err = err
			t.keys.Close()
			close(t.done)
		}()
	})
}

// Stop ends the program and waits for it to restore the terminal.
func (t *Terminal) Stop() error {
	t.program.Quit()
	<-t.done
	return t.err
}

// Done is closed once the program has exited.
func (t *Terminal) Done() <-chan struct{} { return t.done }

// notify coalesces grid changes into at most one pending redraw.
func (t *Terminal) notify() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

func (t *Terminal) forwardRedraws() {
	for {
		select {
		case <-t.done:
			return
		case <-t.wake:
			t.program.Send(redrawMsg{})
		}
	}
}

// Blank clears the grid while the screensaver runs; the menu repaints on
// wake.
func (t *Terminal) Blank() { t.grid.Clear() }

// Unblank is a no-op: the run loop repaints the whole screen.
func (t *Terminal) Unblank() {}

// Editor returns an options editor shown on the bottom line.
func (t *Terminal) Editor(prompt string) *Editor {
	return &Editor{prompt: prompt, send: t.program.Send, done: t.done}
}
