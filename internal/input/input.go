// Package input defines the key events the menu reacts to and the sources
// that deliver them.
package input

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ScanCode identifies a non-character key.
type ScanCode int

const (
	ScanNone ScanCode = iota
	ScanUp
	ScanDown
	ScanRight
	ScanLeft
	ScanHome
	ScanEnd
	ScanInsert
	ScanDelete
	ScanPageUp
	ScanPageDown
	ScanF1
	ScanF2
	ScanF10
	ScanF12
	ScanEsc
)

var scanNames = map[ScanCode]string{
	ScanNone:     "none",
	ScanUp:       "up",
	ScanDown:     "down",
	ScanRight:    "right",
	ScanLeft:     "left",
	ScanHome:     "home",
	ScanEnd:      "end",
	ScanInsert:   "insert",
	ScanDelete:   "delete",
	ScanPageUp:   "pgup",
	ScanPageDown: "pgdown",
	ScanF1:       "f1",
	ScanF2:       "f2",
	ScanF10:      "f10",
	ScanF12:      "f12",
	ScanEsc:      "esc",
}

func (s ScanCode) String() string {
	if name, ok := scanNames[s]; ok {
		return name
	}
	return fmt.Sprintf("scan(%d)", int(s))
}

// Key is one key press: either a scan code or a character.
type Key struct {
	Scan ScanCode
	Char rune
}

// Char returns a character key.
func Char(r rune) Key { return Key{Char: r} }

// Scan returns a scan-code key.
func Scan(s ScanCode) Key { return Key{Scan: s} }

func (k Key) String() string {
	if k.Scan != ScanNone {
		return k.Scan.String()
	}
	switch k.Char {
	case '\r':
		return "enter"
	case '\n':
		return "linefeed"
	case ' ':
		return "space"
	case 0:
		return "none"
	}
	return string(k.Char)
}

// ErrClosed is returned by WaitKey once the source has no more keys.
var ErrClosed = errors.New("input source closed")

// Source delivers key presses.
type Source interface {
	// PollKey returns a pending key without blocking.
	PollKey() (Key, bool)
	// WaitKey blocks until a key arrives, the source closes, or ctx ends.
	WaitKey(ctx context.Context) (Key, error)
}

// Queue is a channel-backed Source fed by back-end goroutines.
type Queue struct {
	keys      chan Key
	closeOnce sync.Once
	done      chan struct{}
}

// NewQueue returns a queue buffering up to size keys.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 64
	}
	return &Queue{keys: make(chan Key, size), done: make(chan struct{})}
}

// Push enqueues a key. It drops the key when the buffer is full or the
// queue is closed and reports whether the key was accepted.
func (q *Queue) Push(k Key) bool {
	select {
	case <-q.done:
		return false
	default:
	}
	select {
	case q.keys <- k:
		return true
	default:
		return false
	}
}

// Close stops the queue; pending keys are still delivered.
func (q *Queue) Close() {
	q.closeOnce.Do(func() { close(q.done) })
}

func (q *Queue) PollKey() (Key, bool) {
	select {
	case k := <-q.keys:
		return k, true
	default:
		return Key{}, false
	}
}

func (q *Queue) WaitKey(ctx context.Context) (Key, error) {
	select {
	case k := <-q.keys:
		return k, nil
	default:
	}
	select {
	case k := <-q.keys:
		return k, nil
	case <-q.done:
		return Key{}, ErrClosed
	case <-ctx.Done():
		return Key{}, ctx.Err()
	}
}

// Drain discards all pending keys.
func Drain(src Source) {
	for {
		if _, ok := src.PollKey(); !ok {
			return
		}
	}
}
