package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func confOnly(name string) bool {
	return strings.HasSuffix(name, ".conf")
}

func TestWatcherReportsMatchingChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := New(Options{Dirs: []string{dir}, Match: confOnly, Quiet: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	target := filepath.Join(dir, "refind.conf")
	if err := os.WriteFile(target, []byte("timeout 5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case ev := <-w.Events():
		if ev.Kind != KindChanged || ev.Path != target {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for %s", target)
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	w, err := New(Options{Dirs: []string{t.TempDir()}})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	w.Stop()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected closed events channel")
	}
}

func TestNewFailsForMissingDir(t *testing.T) {
	if _, err := New(Options{Dirs: []string{filepath.Join(t.TempDir(), "missing")}}); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(100 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	if !th.wait(ctx) || !th.wait(ctx) {
		t.Fatalf("wait returned false")
	}
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Fatalf("second wait returned after %v", elapsed)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if th.wait(cancelled) {
		t.Fatalf("expected false for cancelled context")
	}
}

func TestKindString(t *testing.T) {
	if KindRemoved.String() != "removed" || Kind(9).String() != "unknown" {
		t.Fatalf("unexpected kind names")
	}
}
