package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/atomicstack/bootmenu/internal/input"
	"github.com/atomicstack/bootmenu/internal/menu"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/testutil"
)

type fakeEditor struct {
	result string
	ok     bool
	calls  int
	seen   string
}

func (f *fakeEditor) Edit(_ context.Context, options string) (string, bool, error) {
	f.calls++
	f.seen = options
	return f.result, f.ok, nil
}

func bootScreen() *menu.Screen {
	screen := &menu.Screen{Title: "Main Menu", TimeoutText: "Boot"}
	linux := menu.NewLoaderEntry("Linux")
	linux.Loader.Options = "ro root=/dev/sda2"
	sub := &menu.Screen{Title: "Boot Options for Linux"}
	standard := menu.NewLoaderEntry("Standard")
	standard.Loader.Options = "ro root=/dev/sda2"
	sub.AddEntry(standard)
	sub.AddEntry(menu.NewLoaderEntry("Single user"))
	sub.AddEntry(menu.ReturnEntry())
	linux.SubScreen = sub
	screen.AddEntry(linux)
	windows := menu.NewLoaderEntry("Windows")
	windows.ShortcutLetter = 'W'
	screen.AddEntry(windows)
	return screen
}

func testStyles() Styles {
	return Styles{Main: &recorder{capacity: 10}, Sub: &recorder{capacity: 10}}
}

func runMain(t *testing.T, screen *menu.Screen, def string, opts Options) MainResult {
	t.Helper()
	res, err := RunMainMenu(context.Background(), screen, def, testStyles(), opts)
	if err != nil {
		t.Fatalf("main menu failed: %v", err)
	}
	return res
}

func TestRunMainMenuEnter(t *testing.T) {
	screen := bootScreen()
	opts, _ := testOptions(testutil.Keys(input.Char('\r')), nil)
	res := runMain(t, screen, "", opts)
	if res.Exit != ExitEnter || res.Entry != screen.Entries[0] || res.DefaultSelection != "Linux" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRunMainMenuDefaultSelection(t *testing.T) {
	screen := bootScreen()
	opts, _ := testOptions(testutil.Keys(input.Char('\r')), nil)
	res := runMain(t, screen, "windows", opts)
	if res.Entry != screen.Entries[1] || res.DefaultSelection != "Windows" {
		t.Fatalf("expected the Windows entry, got %+v", res)
	}
}

func TestRunMainMenuSubScreenEscape(t *testing.T) {
	screen := bootScreen()
	screen.TimeoutSeconds = 3
	opts, _ := testOptions(testutil.Keys(input.Char('+'), input.Scan(input.ScanEsc), input.Char('\r')), nil)
	res := runMain(t, screen, "", opts)
	if res.Exit != ExitEnter || res.Entry != screen.Entries[0] {
		t.Fatalf("escape should return to the main screen, got %+v", res)
	}
	if screen.TimeoutSeconds != 0 {
		t.Fatalf("countdown should not restart after the first run")
	}
}

func TestRunMainMenuSubScreenChoice(t *testing.T) {
	screen := bootScreen()
	opts, _ := testOptions(testutil.Keys(input.Char('+'), input.Scan(input.ScanDown), input.Char('\r')), nil)
	res := runMain(t, screen, "", opts)
	sub := screen.Entries[0].SubScreen
	if res.Exit != ExitEnter || res.Entry != sub.Entries[1] {
		t.Fatalf("expected the single-user entry, got %+v", res)
	}
	if res.DefaultSelection != "Linux" {
		t.Fatalf("default selection should name the main entry, got %q", res.DefaultSelection)
	}
}

func TestRunMainMenuReturnEntry(t *testing.T) {
	screen := bootScreen()
	opts, _ := testOptions(testutil.Keys(
		input.Char('+'), input.Scan(input.ScanEnd), input.Char('\r'),
		input.Scan(input.ScanDown), input.Char('\r'),
	), nil)
	res := runMain(t, screen, "", opts)
	if res.Entry != screen.Entries[1] {
		t.Fatalf("return entry should go back to the main screen, got %+v", res)
	}
}

func TestRunMainMenuDetailsWithoutSubScreen(t *testing.T) {
	screen := bootScreen()
	opts, _ := testOptions(testutil.Keys(input.Scan(input.ScanDown), input.Char('+'), input.Char('\r')), nil)
	res := runMain(t, screen, "", opts)
	if res.Exit != ExitEnter || res.Entry != screen.Entries[1] {
		t.Fatalf("details on a plain entry should be ignored, got %+v", res)
	}
}

func TestRunMainMenuEditsOptions(t *testing.T) {
	screen := bootScreen()
	editor := &fakeEditor{result: "ro root=/dev/sda2 quiet", ok: true}
	opts, _ := testOptions(testutil.Keys(input.Char('+'), input.Scan(input.ScanF2)), nil)
	opts.Editor = editor
	res := runMain(t, screen, "", opts)
	sub := screen.Entries[0].SubScreen
	if res.Exit != ExitDetails || res.Entry != sub.Entries[0] {
		t.Fatalf("unexpected result %+v", res)
	}
	if editor.seen != "ro root=/dev/sda2" || sub.Entries[0].Loader.Options != "ro root=/dev/sda2 quiet" {
		t.Fatalf("edited options not stored: saw %q, now %q", editor.seen, sub.Entries[0].Loader.Options)
	}
}

func TestRunMainMenuEditCancelled(t *testing.T) {
	screen := bootScreen()
	editor := &fakeEditor{result: "ignored", ok: false}
	opts, _ := testOptions(testutil.Keys(input.Char('+'), input.Char('+'), input.Char('\r')), nil)
	opts.Editor = editor
	res := runMain(t, screen, "", opts)
	if editor.calls != 1 {
		t.Fatalf("expected one edit, got %d", editor.calls)
	}
	if res.Exit != ExitEnter || res.Entry != screen.Entries[0] {
		t.Fatalf("cancelled edit should return to the main screen, got %+v", res)
	}
	if screen.Entries[0].SubScreen.Entries[0].Loader.Options != "ro root=/dev/sda2" {
		t.Fatalf("cancelled edit changed the options")
	}
}

func TestRunMainMenuEditorHidden(t *testing.T) {
	screen := bootScreen()
	editor := &fakeEditor{result: "x", ok: true}
	opts, cfg := testOptions(testutil.Keys(input.Char('+'), input.Char('+'), input.Char('\r')), nil)
	cfg.HideUI |= settings.HideEditor
	opts.Editor = editor
	res := runMain(t, screen, "", opts)
	if editor.calls != 0 {
		t.Fatalf("editor should not run when hidden")
	}
	if res.Entry != screen.Entries[0] {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRunMainMenuInputError(t *testing.T) {
	screen := bootScreen()
	opts, _ := testOptions(testutil.Keys(input.Char('+')), nil)
	_, err := RunMainMenu(context.Background(), screen, "", testStyles(), opts)
	if !errors.Is(err, input.ErrClosed) {
		t.Fatalf("expected closed input from the sub-screen, got %v", err)
	}
}

func TestRunMenuIgnoresDefault(t *testing.T) {
	screen := bootScreen()
	opts, _ := testOptions(testutil.Keys(input.Char('\r')), nil)
	opts.DefaultIndex = 1
	res, err := RunMenu(context.Background(), screen, testStyles(), opts)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Index != 0 {
		t.Fatalf("expected the first entry, got %d", res.Index)
	}
}
