package state

import (
	"testing"

	"github.com/atomicstack/bootmenu/internal/menu"
)

func newTestScreen(row0, row1 int) *menu.Screen {
	screen := &menu.Screen{Title: "test"}
	for i := 0; i < row0; i++ {
		screen.AddEntry(&menu.Entry{Title: "loader", Row: 0})
	}
	for i := 0; i < row1; i++ {
		screen.AddEntry(&menu.Entry{Title: "tool", Row: 1})
	}
	return screen
}

func settle(s *Scroll) {
	s.PaintAll = false
	s.PaintSelection = false
}

func TestInitPrefersSmallerCapacity(t *testing.T) {
	var s Scroll
	s.Init(10, 4, 20)
	if s.MaxVisible != 4 || s.LastVisible != 3 || s.MaxIndex != 9 {
		t.Fatalf("unexpected init state %+v", s)
	}
	if !s.PaintAll || s.PaintSelection {
		t.Fatalf("init should request a full paint only")
	}

	s.Init(10, 30, 20)
	if s.MaxVisible != 20 {
		t.Fatalf("larger capacity must not widen the window, got %d", s.MaxVisible)
	}
	s.Init(10, 0, 20)
	if s.MaxVisible != 20 {
		t.Fatalf("zero capacity keeps measured value, got %d", s.MaxVisible)
	}
}

func TestTextModeWindowFlushToBottom(t *testing.T) {
	s := Scroll{Mode: Text}
	s.Init(10, 4, 40)
	s.IdentifyRows(newTestScreen(10, 0))
	settle(&s)
	for i := 0; i < 9; i++ {
		s.Move(LineDown)
	}
	if s.Current != 9 || s.FirstVisible != 6 || s.LastVisible != 9 {
		t.Fatalf("expected selection 9 in window 6..9, got %d in %d..%d", s.Current, s.FirstVisible, s.LastVisible)
	}
	if !s.PaintAll {
		t.Fatalf("scrolling should request a full paint")
	}
}

func TestTextModeSelectionOnlyRepaint(t *testing.T) {
	s := Scroll{Mode: Text}
	s.Init(10, 4, 40)
	settle(&s)
	s.Move(LineDown)
	if s.PaintAll || !s.PaintSelection {
		t.Fatalf("in-window move should only repaint the selection: %+v", s)
	}
	settle(&s)
	s.Move(LineUp)
	s.Move(LineUp)
	if s.Current != 0 {
		t.Fatalf("up must clamp at 0, got %d", s.Current)
	}
}

func TestTextModeScrollsBackUp(t *testing.T) {
	s := Scroll{Mode: Text}
	s.Init(10, 4, 40)
	s.IdentifyRows(newTestScreen(10, 0))
	s.Move(Last)
	if s.Current != 9 || s.FirstVisible != 6 {
		t.Fatalf("last should show the tail, got %+v", s)
	}
	settle(&s)
	s.Move(PageUp)
	if s.Current != 5 || s.FirstVisible != 5 || s.LastVisible != 8 {
		t.Fatalf("page up should slide window to 5..8, got %d in %d..%d", s.Current, s.FirstVisible, s.LastVisible)
	}
	s.Move(First)
	if s.Current != 0 || s.FirstVisible != 0 || s.LastVisible != 3 {
		t.Fatalf("first should reset window, got %+v", s)
	}
}

func TestTextModePageDownClamps(t *testing.T) {
	s := Scroll{Mode: Text}
	s.Init(6, 4, 40)
	s.IdentifyRows(newTestScreen(6, 0))
	s.Move(PageDown)
	if s.Current != 4 {
		t.Fatalf("expected 4 after one page, got %d", s.Current)
	}
	s.Move(PageDown)
	s.Move(PageDown)
	if s.Current != 5 {
		t.Fatalf("page down must clamp to max index, got %d", s.Current)
	}
}

func TestIconsDownInterpolates(t *testing.T) {
	s := Scroll{Mode: Icons}
	s.Init(8, 0, 10)
	s.IdentifyRows(newTestScreen(4, 4))
	if s.FinalRow0 != 3 || s.InitialRow1 != 4 || s.MaxIndex != 7 {
		t.Fatalf("unexpected rows %+v", s)
	}
	if s.MaxVisible != 4 || s.LastVisible != 3 {
		t.Fatalf("icons mode caps window at row-0 size, got %d..%d of %d", s.FirstVisible, s.LastVisible, s.MaxVisible)
	}
	s.Current = 2
	s.Move(LineDown)
	if s.Current != 6 {
		t.Fatalf("expected interpolation to land on 6, got %d", s.Current)
	}
	s.Move(LineUp)
	if s.Current != 2 {
		t.Fatalf("expected inverse interpolation to land on 2, got %d", s.Current)
	}
}

func TestIconsSingleToolFallsBackToTierStart(t *testing.T) {
	s := Scroll{Mode: Icons}
	s.Init(4, 0, 10)
	s.IdentifyRows(newTestScreen(3, 1))
	s.Current = 3
	s.Move(LineUp)
	if s.Current != 0 {
		t.Fatalf("single row-1 entry should go to first visible, got %d", s.Current)
	}

	s = Scroll{Mode: Icons}
	s.Init(3, 0, 10)
	s.IdentifyRows(newTestScreen(1, 2))
	s.Move(LineDown)
	if s.Current != 1 {
		t.Fatalf("single visible loader should go to first tool, got %d", s.Current)
	}
}

func TestIconsHorizontalStaysInTier(t *testing.T) {
	s := Scroll{Mode: Icons}
	s.Init(6, 0, 10)
	s.IdentifyRows(newTestScreen(3, 3))
	s.Current = 2
	s.Move(LineRight)
	if s.Current != 2 {
		t.Fatalf("right at end of row 0 must not enter row 1, got %d", s.Current)
	}
	s.Current = 3
	s.Move(LineLeft)
	if s.Current != 3 {
		t.Fatalf("left at start of row 1 must not enter row 0, got %d", s.Current)
	}
	s.Move(LineRight)
	s.Move(LineRight)
	s.Move(LineRight)
	if s.Current != 5 {
		t.Fatalf("right should clamp at max index, got %d", s.Current)
	}
}

func TestIconsPagingCrossesTiers(t *testing.T) {
	s := Scroll{Mode: Icons}
	s.Init(9, 0, 10)
	s.IdentifyRows(newTestScreen(6, 3))
	s.MaxVisible = 3
	s.LastVisible = 2

	s.Move(PageDown)
	if s.Current != 3 {
		t.Fatalf("page down in row 0 steps by window, got %d", s.Current)
	}
	s.Move(PageDown)
	if s.Current != 5 {
		t.Fatalf("page down caps at final row-0 entry, got %d", s.Current)
	}
	s.Move(PageDown)
	if s.Current != 6 {
		t.Fatalf("page down on final row-0 entry enters row 1, got %d", s.Current)
	}
	s.Move(PageDown)
	if s.Current != 8 {
		t.Fatalf("page down in row 1 jumps to the end, got %d", s.Current)
	}
	s.Move(PageUp)
	if s.Current != 6 {
		t.Fatalf("page up in row 1 goes to its start, got %d", s.Current)
	}
	s.Move(PageUp)
	if s.Current != 5 {
		t.Fatalf("page up from row-1 start returns to row 0, got %d", s.Current)
	}
	s.Move(PageUp)
	s.Move(PageUp)
	if s.Current != 0 {
		t.Fatalf("page up clamps at zero, got %d", s.Current)
	}
}

func TestIconsModeDoesNotAdjustWindow(t *testing.T) {
	s := Scroll{Mode: Icons}
	s.Init(8, 0, 10)
	s.IdentifyRows(newTestScreen(8, 0))
	s.MaxVisible = 3
	s.LastVisible = 2
	settle(&s)
	for i := 0; i < 4; i++ {
		s.Move(LineRight)
	}
	if s.FirstVisible != 0 {
		t.Fatalf("icons mode leaves the window to the renderer, got first %d", s.FirstVisible)
	}
	s.Adjust()
	if s.FirstVisible != 2 || s.LastVisible != 4 || !s.PaintAll {
		t.Fatalf("adjust should slide the window to 2..4, got %+v", s)
	}
}

func TestIdentifyRowsDefaults(t *testing.T) {
	s := Scroll{Mode: Text}
	s.Init(3, 0, 10)
	s.IdentifyRows(newTestScreen(0, 3))
	if s.FinalRow0 != 0 || s.InitialRow1 != 0 {
		t.Fatalf("unexpected rows %+v", s)
	}
	s.Init(3, 0, 10)
	s.IdentifyRows(newTestScreen(3, 0))
	if s.FinalRow0 != 2 || s.InitialRow1 != 2 {
		t.Fatalf("without row 1 the initial row-1 index is max index, got %+v", s)
	}
	if s.MaxVisible != 10 {
		t.Fatalf("text mode keeps its window, got %d", s.MaxVisible)
	}
}

func TestIdentifyRowsKeepsWindowInRange(t *testing.T) {
	s := Scroll{Mode: Icons}
	s.Init(6, 0, 10)
	s.IdentifyRows(newTestScreen(3, 3))
	if s.MaxVisible != 3 || s.LastVisible != 2 {
		t.Fatalf("expected window 0..2, got %d..%d", s.FirstVisible, s.LastVisible)
	}
	s.Current = 1
	s.Move(LineDown)
	if s.Current != 4 {
		t.Fatalf("first move down should interpolate from the shrunk window, got %d", s.Current)
	}

	s = Scroll{Mode: Text}
	s.Init(3, 0, 10)
	s.IdentifyRows(newTestScreen(3, 0))
	if s.LastVisible != 2 || s.MaxVisible != 10 {
		t.Fatalf("text window should end at the last entry, got last=%d max=%d", s.LastVisible, s.MaxVisible)
	}
}

func TestMovementNames(t *testing.T) {
	if PageDown.String() != "pgdown" || Movement(42).String() != "unknown" {
		t.Fatalf("unexpected movement names")
	}
}
