package ui

import (
	"context"
	"errors"
	"time"

	"github.com/atomicstack/bootmenu/internal/i18n"
	"github.com/atomicstack/bootmenu/internal/input"
	"github.com/atomicstack/bootmenu/internal/logging"
	"github.com/atomicstack/bootmenu/internal/logging/events"
	"github.com/atomicstack/bootmenu/internal/menu"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/ui/state"
)

// Exit is why a menu run ended.
type Exit int

const (
	ExitNone Exit = iota
	ExitEnter
	ExitEscape
	ExitDetails
	ExitTimeout
)

var exitNames = [...]string{"none", "enter", "escape", "details", "timeout"}

func (e Exit) String() string {
	if int(e) >= 0 && int(e) < len(exitNames) {
		return exitNames[e]
	}
	return "unknown"
}

// MarshalText lets reports print exits by name.
func (e Exit) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Tick is the countdown quantum.
const Tick = 100 * time.Millisecond

// ErrEmptyScreen is returned for a screen without entries.
var ErrEmptyScreen = errors.New("menu screen has no entries")

// Clock sleeps between polls.
type Clock interface {
	Sleep(d time.Duration)
}

// SystemClock sleeps for real.
type SystemClock struct{}

func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Screensaver blanks the display while the operator is away.
type Screensaver interface {
	Blank()
	Unblank()
}

// Options carry the collaborators of one menu run.
type Options struct {
	Settings *settings.Settings
	Input    input.Source
	Clock    Clock
	Catalog  *i18n.Catalog
	// DefaultIndex preselects an entry; negative means none.
	DefaultIndex int
	// Screenshot is called for F10.
	Screenshot func() error
	// Eject is called for F12 and reports whether media was ejected.
	Eject func() bool
	// Screensaver is used once the idle threshold passes.
	Screensaver Screensaver
	// ClearBackground repaints the background when a start-blanked screen
	// is woken.
	ClearBackground func()
	// Editor edits loader options from a sub-menu.
	Editor Editor
}

func (o *Options) withDefaults() {
	if o.Settings == nil {
		s := settings.Defaults()
		o.Settings = &s
	}
	if o.Clock == nil {
		o.Clock = SystemClock{}
	}
	if o.Catalog == nil {
		o.Catalog = i18n.Default()
	}
}

// Result is the outcome of one menu run. Index is the final selection and
// seeds the default of the next run of the same screen.
type Result struct {
	Exit  Exit
	Entry *menu.Entry
	Index int
}

// Run drives one screen until the operator chooses, escapes, asks for
// details, or the timeout expires.
func Run(ctx context.Context, screen *menu.Screen, style Style, opts Options) (Result, error) {
	if screen == nil || len(screen.Entries) == 0 {
		return Result{Exit: ExitEscape, Index: -1}, ErrEmptyScreen
	}
	if opts.Input == nil {
		return Result{Exit: ExitEscape, Index: -1}, errors.New("menu run needs an input source")
	}
	opts.withDefaults()
	r := &runner{screen: screen, style: style, opts: opts, scroll: &state.Scroll{Name: screen.Title}}
	return r.run(ctx)
}

type runner struct {
	screen *menu.Screen
	style  Style
	opts   Options
	scroll *state.Scroll

	haveTimeout bool
	countdown   int
	idle        int
}

func (r *runner) run(ctx context.Context) (Result, error) {
	cfg := r.opts.Settings
	if r.screen.TimeoutSeconds > 0 {
		r.haveTimeout = true
		r.countdown = r.screen.TimeoutSeconds * 10
	}

	r.style.Apply(r.screen, r.scroll, OpInit, "")
	r.scroll.IdentifyRows(r.screen)
	if d := r.opts.DefaultIndex; d >= 0 && d <= r.scroll.MaxIndex {
		r.scroll.Current = d
		if cfg.ScreensaverTime != settings.Unset {
			r.scroll.Move(state.None)
		}
	}
	if cfg.ScreensaverTime != settings.Unset {
		r.scroll.PaintAll = true
	}

	exit, err := r.loop(ctx)

	r.style.Apply(r.screen, r.scroll, OpCleanup, "")
	res := Result{Exit: exit, Entry: r.screen.Entries[r.scroll.Current], Index: r.scroll.Current}
	events.UI.MenuExit(r.screen.Title, exit.String(), res.Index)
	return res, err
}

func (r *runner) loop(ctx context.Context) (Exit, error) {
	cfg := r.opts.Settings
	previous := -1
	for {
		if err := ctx.Err(); err != nil {
			return ExitEscape, err
		}
		switch {
		case r.scroll.PaintAll && cfg.ScreensaverTime != settings.Unset:
			r.style.Apply(r.screen, r.scroll, OpPaintAll, "")
			r.scroll.PaintAll = false
		case r.scroll.PaintSelection:
			r.style.Apply(r.screen, r.scroll, OpPaintSelection, "")
			r.scroll.PaintSelection = false
		}

		if r.haveTimeout {
			if now := (r.countdown + 5) / 10; now != previous {
				if cfg.ScreensaverTime != settings.Unset {
					r.style.Apply(r.screen, r.scroll, OpPaintTimeout, r.opts.Catalog.Timeout(r.screen.TimeoutText, now))
				}
				previous = now
			}
		}

		key, ok := r.opts.Input.PollKey()
		if !ok {
			var (
				exit Exit
				err  error
			)
			key, ok, exit, err = r.idleTick(ctx)
			if err != nil || exit != ExitNone {
				return exit, err
			}
			if !ok {
				continue
			}
		}
		if exit := r.handleKey(key); exit != ExitNone {
			return exit, nil
		}
	}
}

// idleTick handles a poll that found no key: it counts the timeout down,
// runs the screensaver, or blocks. A key obtained by blocking is returned
// with ok set.
func (r *runner) idleTick(ctx context.Context) (key input.Key, ok bool, exit Exit, err error) {
	cfg := r.opts.Settings
	switch {
	case r.haveTimeout && r.countdown == 0:
		events.UI.Timeout(r.screen.Title, r.screen.TimeoutSeconds)
		return key, false, ExitTimeout, nil
	case r.haveTimeout:
		r.opts.Clock.Sleep(Tick)
		r.countdown--
		r.idle++
	case cfg.ScreensaverTime > 0:
		r.opts.Clock.Sleep(Tick)
		r.idle++
		if r.idle > cfg.ScreensaverTime*10 {
			if err := r.screensave(ctx); err != nil {
				return key, false, ExitEscape, err
			}
			r.scroll.PaintAll = true
			r.idle = 0
		}
	default:
		key, err = r.opts.Input.WaitKey(ctx)
		if err != nil {
			return key, false, ExitEscape, err
		}
		return key, true, ExitNone, nil
	}
	return key, false, ExitNone, nil
}

// handleKey cancels the countdown and wakes a start-blanked screen before
// dispatching the key.
func (r *runner) handleKey(key input.Key) Exit {
	cfg := r.opts.Settings
	r.idle = 0
	events.Input.Key("menu", key.String())

	if r.haveTimeout {
		r.style.Apply(r.screen, r.scroll, OpPaintTimeout, "")
		r.haveTimeout = false
	}
	if cfg.ScreensaverTime == settings.Unset {
		cfg.ScreensaverTime = 0
		if !cfg.TextOnly && r.opts.ClearBackground != nil {
			r.opts.ClearBackground()
		}
	}
	return r.dispatch(key)
}

func (r *runner) screensave(ctx context.Context) error {
	events.UI.Screensaver(r.screen.Title, true)
	if r.opts.Screensaver != nil {
		r.opts.Screensaver.Blank()
	}
	_, err := r.opts.Input.WaitKey(ctx)
	if r.opts.Screensaver != nil {
		r.opts.Screensaver.Unblank()
	}
	input.Drain(r.opts.Input)
	events.UI.Screensaver(r.screen.Title, false)
	return err
}

var scanMoves = map[input.ScanCode]state.Movement{
	input.ScanUp:       state.LineUp,
	input.ScanLeft:     state.LineLeft,
	input.ScanDown:     state.LineDown,
	input.ScanRight:    state.LineRight,
	input.ScanHome:     state.First,
	input.ScanEnd:      state.Last,
	input.ScanPageUp:   state.PageUp,
	input.ScanPageDown: state.PageDown,
}

// dispatch reacts to one key and returns the exit it causes, if any.
func (r *runner) dispatch(key input.Key) Exit {
	exit := ExitNone
	if move, ok := scanMoves[key.Scan]; ok {
		r.scroll.Move(move)
	}
	switch key.Scan {
	case input.ScanEsc:
		exit = ExitEscape
	case input.ScanInsert, input.ScanF2:
		exit = ExitDetails
	case input.ScanF10:
		if r.opts.Screenshot != nil {
			if err := r.opts.Screenshot(); err != nil {
				log := logging.Logger()
				log.Warn().Err(err).Msg("screenshot failed")
			}
		}
	case input.ScanF12:
		if r.opts.Eject != nil && r.opts.Eject() {
			exit = ExitEscape
		}
	}

	switch key.Char {
	case 0:
	case '\n', '\r', ' ':
		exit = ExitEnter
	case '+':
		exit = ExitDetails
	default:
		if i := menu.FindShortcut(r.screen, string(key.Char)); i >= 0 {
			r.scroll.Current = i
			exit = ExitEnter
		}
	}
	return exit
}
