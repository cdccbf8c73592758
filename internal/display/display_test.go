package display

import (
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestGridPrintAndLines(t *testing.T) {
	g := NewGrid(12, 3)
	g.MoveTo(2, 1)
	g.SetAttr(AttrChoiceCurrent)
	g.Print("hello world, clipped")

	lines := g.Lines()
	if lines[1] != "  hello worl" {
		t.Fatalf("unexpected row %q", lines[1])
	}
	if cell := g.CellAt(2, 1); cell.Attr != AttrChoiceCurrent || cell.R != 'h' {
		t.Fatalf("unexpected cell %+v", cell)
	}
	if cell := g.CellAt(0, 1); cell.Attr != AttrBasic {
		t.Fatalf("untouched cell changed: %+v", cell)
	}
}

func TestGridWideRunes(t *testing.T) {
	g := NewGrid(6, 1)
	g.Print("日本x")
	if got := g.Lines()[0]; got != "日本x" {
		t.Fatalf("unexpected row %q", got)
	}
	g.MoveTo(0, 0)
	g.Print("abcde日")
	if got := g.Lines()[0]; got != "abcde" {
		t.Fatalf("wide rune should be clipped, got %q", got)
	}
}

func TestGridRenderGroupsAttributes(t *testing.T) {
	g := NewGrid(4, 1)
	g.SetAttr(AttrError)
	g.Print("ab")
	out := g.Render(func(a Attr, s string) string {
		return "<" + a.String() + ":" + s + ">"
	})
	if out != "<error:ab><basic:  >" {
		t.Fatalf("unexpected render %q", out)
	}
}

func TestGridOnChangeAndResize(t *testing.T) {
	g := NewGrid(3, 1)
	calls := 0
	g.OnChange(func() { calls++ })
	g.Print("abc")
	g.Resize(5, 2)
	if calls != 2 {
		t.Fatalf("expected 2 change notifications, got %d", calls)
	}
	if cols, rows := g.Size(); cols != 5 || rows != 2 {
		t.Fatalf("unexpected size %dx%d", cols, rows)
	}
	if g.Lines()[0] != "abc" {
		t.Fatalf("content lost on resize: %q", g.Lines()[0])
	}
}

func TestBeginTextScreen(t *testing.T) {
	g := NewGrid(20, 4)
	g.MoveTo(0, 2)
	g.Print("stale")
	BeginTextScreen(g, "Main Menu")
	lines := g.Lines()
	if lines[0] != "   Main Menu" || lines[2] != "" {
		t.Fatalf("unexpected screen %q", lines)
	}
	if g.CellAt(19, 0).Attr != AttrBanner {
		t.Fatalf("banner should span the row")
	}
	if got := BlankLine(g); got != strings.Repeat(" ", 19) {
		t.Fatalf("unexpected blank line %q", got)
	}
}

func TestSurfaceDrawAndRestore(t *testing.T) {
	bg := color.RGBA{10, 20, 30, 255}
	s := NewSurface(64, 32, Palette{Background: bg}, nil)
	if w, h := s.Size(); w != 64 || h != 32 {
		t.Fatalf("unexpected size %dx%d", w, h)
	}
	if s.FontHeight() <= 0 || s.FontCellWidth() <= 0 {
		t.Fatalf("font metrics not set")
	}

	red := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(red.Pix); i += 4 {
		red.Pix[i], red.Pix[i+3] = 255, 255
	}
	s.Draw(red, 8, 8)
	if got := s.Frame().RGBAAt(9, 9); got != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("draw missing, got %v", got)
	}
	s.Restore(image.Rect(8, 8, 12, 12))
	if got := s.Frame().RGBAAt(9, 9); got != bg {
		t.Fatalf("restore failed, got %v", got)
	}
	if got := s.Crop(image.Rect(0, 0, 2, 2)).RGBAAt(1, 1); got != bg {
		t.Fatalf("crop should read the background, got %v", got)
	}
}

func TestSurfaceDrawTextSelection(t *testing.T) {
	sel := color.RGBA{200, 200, 0, 255}
	s := NewSurface(120, 40, Palette{Selection: sel}, nil)
	s.DrawText("Boot", 0, 0, 100, true)
	if got := s.Frame().RGBAAt(99, 1); got != sel {
		t.Fatalf("selection background missing, got %v", got)
	}
	if s.MeasureText("Boot") != 4*s.FontCellWidth() {
		t.Fatalf("fixed-width face should measure per cell")
	}
}

type recordingSink struct{ frames int }

func (r *recordingSink) Flush(image.Image) error {
	r.frames++
	return nil
}

func TestSurfaceFlush(t *testing.T) {
	sink := &recordingSink{}
	s := NewSurface(8, 8, Palette{}, sink)
	if err := s.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if sink.frames != 1 {
		t.Fatalf("expected one frame, got %d", sink.frames)
	}
}

var (
	_ Sink      = (*Framebuffer)(nil)
	_ io.Closer = (*Framebuffer)(nil)
)

func TestOpenFramebufferMissingDevice(t *testing.T) {
	fb, err := OpenFramebuffer(filepath.Join(t.TempDir(), "fb9"))
	if err == nil {
		fb.Close()
		t.Fatalf("expected an error for a missing device")
	}
	if !strings.Contains(err.Error(), "open framebuffer") {
		t.Fatalf("unexpected error %v", err)
	}
}
