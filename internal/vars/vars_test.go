package vars

import (
	"path/filepath"
	"testing"
)

func TestDirRoundTrip(t *testing.T) {
	d := Dir{Path: filepath.Join(t.TempDir(), "state")}
	if _, ok := d.Get(PreviousBoot); ok {
		t.Fatalf("expected missing variable")
	}
	if err := d.Set(PreviousBoot, "Boot Arch from ESP\n"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, ok := d.Get(PreviousBoot)
	if !ok || got != "Boot Arch from ESP" {
		t.Fatalf("unexpected value %q (ok=%v)", got, ok)
	}
}

func TestDirWithoutPath(t *testing.T) {
	var d Dir
	if err := d.Set("x", "y"); err == nil {
		t.Fatalf("expected error without a path")
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory(map[string]string{PreviousBoot: "Windows"})
	if v, ok := m.Get(PreviousBoot); !ok || v != "Windows" {
		t.Fatalf("unexpected seeded value %q", v)
	}
	_ = m.Set(PreviousBoot, "Linux")
	if v, _ := m.Get(PreviousBoot); v != "Linux" {
		t.Fatalf("expected overwrite, got %q", v)
	}
}
