package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/bootmenu/internal/input"
)

func TestKeyScriptHoldsDelayedKeys(t *testing.T) {
	script := Script(Step{After: 300 * time.Millisecond, Key: input.Char('x')})
	clock := NewClock(script)

	if _, ok := script.PollKey(); ok {
		t.Fatalf("key delivered before its delay")
	}
	clock.Sleep(200 * time.Millisecond)
	if _, ok := script.PollKey(); ok {
		t.Fatalf("key delivered early")
	}
	clock.Sleep(100 * time.Millisecond)
	k, ok := script.PollKey()
	if !ok || k.Char != 'x' {
		t.Fatalf("expected x, got %v %v", k, ok)
	}
	if clock.Sleeps() != 2 || clock.Slept() != 300*time.Millisecond {
		t.Fatalf("unexpected clock state %d %v", clock.Sleeps(), clock.Slept())
	}
	if script.Polls() != 3 {
		t.Fatalf("expected 3 polls, got %d", script.Polls())
	}
}

func TestKeyScriptWaitKey(t *testing.T) {
	script := Script(Step{After: time.Hour, Key: input.Scan(input.ScanEsc)})
	k, err := script.WaitKey(context.Background())
	if err != nil || k.Scan != input.ScanEsc {
		t.Fatalf("unexpected wait result %v %v", k, err)
	}
	if _, err := script.WaitKey(context.Background()); !errors.Is(err, input.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Keys(input.Char('a')).WaitKey(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
