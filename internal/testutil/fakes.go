package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/bootmenu/internal/input"
)

// KeyScript is an input.Source replaying a fixed list of keys. A key is
// only visible to PollKey once the script's time has reached its delay,
// which lets tests hold keys back until a countdown runs.
type KeyScript struct {
	mu    sync.Mutex
	steps []Step
	now   time.Duration
	polls int
}

// Step is one scripted key and the script time from which it is visible.
type Step struct {
	After time.Duration
	Key   input.Key
}

// Keys returns a script delivering keys immediately.
func Keys(keys ...input.Key) *KeyScript {
	s := &KeyScript{}
	for _, k := range keys {
		s.steps = append(s.steps, Step{Key: k})
	}
	return s
}

// Script returns a script of delayed steps.
func Script(steps ...Step) *KeyScript {
	return &KeyScript{steps: append([]Step(nil), steps...)}
}

// Advance moves the script's notion of time forward.
func (s *KeyScript) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	s.mu.Unlock()
}

// Remaining reports how many keys have not been delivered.
func (s *KeyScript) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps)
}

// Polls reports how many times PollKey was called.
func (s *KeyScript) Polls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls
}

func (s *KeyScript) PollKey() (input.Key, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls++
	if len(s.steps) == 0 || s.steps[0].After > s.now {
		return input.Key{}, false
	}
	k := s.steps[0].Key
	s.steps = s.steps[1:]
	return k, true
}

// WaitKey returns the next key regardless of its delay, or input.ErrClosed
// once the script is exhausted.
func (s *KeyScript) WaitKey(ctx context.Context) (input.Key, error) {
	if err := ctx.Err(); err != nil {
		return input.Key{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.steps) == 0 {
		return input.Key{}, input.ErrClosed
	}
	k := s.steps[0]
	s.steps = s.steps[1:]
	if k.After > s.now {
		s.now = k.After
	}
	return k.Key, nil
}

// Clock is a fake sleeper that advances an attached KeyScript instead of
// waiting.
type Clock struct {
	mu     sync.Mutex
	slept  time.Duration
	sleeps int
	script *KeyScript
}

// NewClock returns a clock driving script, which may be nil.
func NewClock(script *KeyScript) *Clock {
	return &Clock{script: script}
}

func (c *Clock) Sleep(d time.Duration) {
	c.mu.Lock()
	c.slept += d
	c.sleeps++
	script := c.script
	c.mu.Unlock()
	if script != nil {
		script.Advance(d)
	}
}

// Slept returns the total time slept.
func (c *Clock) Slept() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slept
}

// Sleeps returns the number of Sleep calls.
func (c *Clock) Sleeps() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sleeps
}
