package theme

import (
	"strings"
	"testing"

	"github.com/atomicstack/bootmenu/internal/display"
)

func TestForCoversEveryAttr(t *testing.T) {
	styles := Default()
	for _, a := range []display.Attr{
		display.AttrBasic, display.AttrBanner, display.AttrChoiceBasic,
		display.AttrChoiceCurrent, display.AttrError, display.AttrScrollArrow,
	} {
		if styles.For(a) == nil {
			t.Fatalf("no style for %v", a)
		}
	}
	if styles.For(display.AttrChoiceCurrent) == styles.For(display.AttrChoiceBasic) {
		t.Fatalf("current and basic choices must differ")
	}
}

func TestRenderKeepsText(t *testing.T) {
	out := Default().Render(display.AttrError, "Boot in 5 seconds")
	if !strings.Contains(out, "Boot in 5 seconds") {
		t.Fatalf("rendered text lost: %q", out)
	}
}

func TestPaletteComplete(t *testing.T) {
	p := Palette()
	if p.Background == nil || p.Selection == nil || p.Text == nil || p.LightText == nil {
		t.Fatalf("palette has unset colours: %+v", p)
	}
}
