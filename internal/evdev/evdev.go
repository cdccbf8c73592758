// Package evdev reads a Linux console keyboard for the framebuffer back-end,
// where no terminal delivers keys.
package evdev

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/holoplot/go-evdev"

	"github.com/atomicstack/bootmenu/internal/input"
	"github.com/atomicstack/bootmenu/internal/logging"
	"github.com/atomicstack/bootmenu/internal/logging/events"
)

// ErrNoKeyboard is returned when no keyboard device can be found.
var ErrNoKeyboard = errors.New("no keyboard input device found")

const (
	valueRelease = 0
	valuePress   = 1
	valueRepeat  = 2
)

// Device is the part of an evdev device the reader uses.
type Device interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// Reader turns key events from a device into menu keys on a queue.
type Reader struct {
	dev  Device
	keys *input.Queue

	shift bool

	closeOnce sync.Once
	closing   atomic.Bool
	done      chan struct{}
}

// Open opens path, or the first device whose name mentions a keyboard when
// path is empty.
func Open(path string) (*Reader, error) {
	if path == "" {
		found, err := findKeyboard()
		if err != nil {
			return nil, err
		}
		path = found
	}
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input device %s: %w", path, err)
	}
	return NewReader(dev, input.NewQueue(64)), nil
}

func findKeyboard() (string, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return "", fmt.Errorf("list input devices: %w", err)
	}
	for _, p := range paths {
		if strings.Contains(strings.ToLower(p.Name), "keyboard") {
			return p.Path, nil
		}
	}
	return "", ErrNoKeyboard
}

// NewReader wraps dev; keys arrive on q.
func NewReader(dev Device, q *input.Queue) *Reader {
	return &Reader{dev: dev, keys: q, done: make(chan struct{})}
}

// Input is the key source the reader fills.
func (r *Reader) Input() input.Source { return r.keys }

// Start reads in the background until the device fails or is closed. The
// queue is closed when reading stops.
func (r *Reader) Start() {
	go func() {
		defer close(r.done)
		defer r.keys.Close()
		for {
			ev, err := r.dev.ReadOne()
			if err != nil {
				if !r.closing.Load() {
					logging.Error(fmt.Errorf("read input device: %w", err))
				}
				return
			}
			r.handle(ev)
		}
	}()
}

// Close stops the reader and releases the device.
func (r *Reader) Close() error {
	var err error
	r.closeOnce.Do(func() {
		r.closing.Store(true)
		err = r.dev.Close()
	})
	return err
}

// Done is closed once the read loop has returned.
func (r *Reader) Done() <-chan struct{} { return r.done }

func (r *Reader) handle(ev *evdev.InputEvent) {
	if ev == nil || ev.Type != evdev.EV_KEY {
		return
	}
	if ev.Code == evdev.KEY_LEFTSHIFT || ev.Code == evdev.KEY_RIGHTSHIFT {
		r.shift = ev.Value != valueRelease
		return
	}
	if ev.Value != valuePress && ev.Value != valueRepeat {
		return
	}
	k, ok := Translate(ev.Code, r.shift)
	if !ok {
		return
	}
	events.Input.Key("evdev", k.String())
	r.keys.Push(k)
}

var scanCodes = map[evdev.EvCode]input.ScanCode{
	evdev.KEY_UP:       input.ScanUp,
	evdev.KEY_DOWN:     input.ScanDown,
	evdev.KEY_LEFT:     input.ScanLeft,
	evdev.KEY_RIGHT:    input.ScanRight,
	evdev.KEY_HOME:     input.ScanHome,
	evdev.KEY_END:      input.ScanEnd,
	evdev.KEY_PAGEUP:   input.ScanPageUp,
	evdev.KEY_PAGEDOWN: input.ScanPageDown,
	evdev.KEY_INSERT:   input.ScanInsert,
	evdev.KEY_DELETE:   input.ScanDelete,
	evdev.KEY_F1:       input.ScanF1,
	evdev.KEY_F2:       input.ScanF2,
	evdev.KEY_F10:      input.ScanF10,
	evdev.KEY_F12:      input.ScanF12,
	evdev.KEY_ESC:      input.ScanEsc,
}

var chars = map[evdev.EvCode][2]rune{
	evdev.KEY_A: {'a', 'A'}, evdev.KEY_B: {'b', 'B'}, evdev.KEY_C: {'c', 'C'},
	evdev.KEY_D: {'d', 'D'}, evdev.KEY_E: {'e', 'E'}, evdev.KEY_F: {'f', 'F'},
	evdev.KEY_G: {'g', 'G'}, evdev.KEY_H: {'h', 'H'}, evdev.KEY_I: {'i', 'I'},
	evdev.KEY_J: {'j', 'J'}, evdev.KEY_K: {'k', 'K'}, evdev.KEY_L: {'l', 'L'},
	evdev.KEY_M: {'m', 'M'}, evdev.KEY_N: {'n', 'N'}, evdev.KEY_O: {'o', 'O'},
	evdev.KEY_P: {'p', 'P'}, evdev.KEY_Q: {'q', 'Q'}, evdev.KEY_R: {'r', 'R'},
	evdev.KEY_S: {'s', 'S'}, evdev.KEY_T: {'t', 'T'}, evdev.KEY_U: {'u', 'U'},
	evdev.KEY_V: {'v', 'V'}, evdev.KEY_W: {'w', 'W'}, evdev.KEY_X: {'x', 'X'},
	evdev.KEY_Y: {'y', 'Y'}, evdev.KEY_Z: {'z', 'Z'},
	evdev.KEY_1: {'1', '!'}, evdev.KEY_2: {'2', '@'}, evdev.KEY_3: {'3', '#'},
	evdev.KEY_4: {'4', '$'}, evdev.KEY_5: {'5', '%'}, evdev.KEY_6: {'6', '^'},
	evdev.KEY_7: {'7', '&'}, evdev.KEY_8: {'8', '*'}, evdev.KEY_9: {'9', '('},
	evdev.KEY_0: {'0', ')'},
	evdev.KEY_MINUS: {'-', '_'}, evdev.KEY_EQUAL: {'=', '+'},
	evdev.KEY_COMMA: {',', '<'}, evdev.KEY_DOT: {'.', '>'},
	evdev.KEY_SLASH: {'/', '?'}, evdev.KEY_SEMICOLON: {';', ':'},
	evdev.KEY_APOSTROPHE: {'\'', '"'},
	evdev.KEY_SPACE:       {' ', ' '},
	evdev.KEY_KPPLUS:      {'+', '+'},
	evdev.KEY_KPMINUS:     {'-', '-'},
	evdev.KEY_ENTER:       {'\r', '\r'},
	evdev.KEY_KPENTER:     {'\r', '\r'},
	evdev.KEY_BACKSPACE:   {'\b', '\b'},
}

// Translate maps an evdev key code to a menu key using a US layout.
func Translate(code evdev.EvCode, shift bool) (input.Key, bool) {
	if sc, ok := scanCodes[code]; ok {
		return input.Scan(sc), true
	}
	if pair, ok := chars[code]; ok {
		if shift {
			return input.Char(pair[1]), true
		}
		return input.Char(pair[0]), true
	}
	return input.Key{}, false
}
