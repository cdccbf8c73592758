package icons

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/atomicstack/bootmenu/internal/volume"
)

func encodePNG(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.String()
}

func TestLoadIconScales(t *testing.T) {
	src := volume.MemSource{}
	src.Put(`\EFI\icons\os_linux.png`, encodePNG(t, 16, 16, color.White))

	img := Default{}.LoadIcon(src, `/EFI/icons/os_linux.png`, 48)
	if img == nil {
		t.Fatalf("expected icon to load")
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
		t.Fatalf("expected 48x48, got %v", b)
	}

	raw := Default{}.LoadIcon(src, `\EFI\icons\os_linux.png`, 0)
	if b := raw.Bounds(); b.Dx() != 16 {
		t.Fatalf("size 0 should keep the original, got %v", b)
	}
}

func TestLoadIconFailures(t *testing.T) {
	src := volume.MemSource{}
	src.Put(`broken.png`, "not an image")
	if (Default{}).LoadIcon(src, "missing.png", 32) != nil {
		t.Fatalf("missing file must yield nil")
	}
	if (Default{}).LoadIcon(src, "broken.png", 32) != nil {
		t.Fatalf("undecodable file must yield nil")
	}
	if (Default{}).LoadIcon(nil, "broken.png", 32) != nil {
		t.Fatalf("nil source must yield nil")
	}
}

func TestFindTriesExtensions(t *testing.T) {
	src := volume.MemSource{}
	src.Put(`icons\func_about.png`, encodePNG(t, 8, 8, color.Black))

	if Find(Default{}, src, "icons", "func_about", 32) == nil {
		t.Fatalf("expected png extension to be tried")
	}
	if Find(Default{}, src, "icons", "func_about.png", 32) == nil {
		t.Fatalf("explicit extension should load directly")
	}
	if Find(Default{}, src, "icons", "func_reboot", 32) != nil {
		t.Fatalf("unknown icon should not load")
	}
	if Find(nil, src, "icons", "func_about", 32) != nil {
		t.Fatalf("nil provider should not load")
	}
}

func TestComposeAndDummy(t *testing.T) {
	base := Default{}.Dummy(10)
	if b := base.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Fatalf("unexpected dummy size %v", b)
	}
	overlay := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range overlay.Pix {
		overlay.Pix[i] = 0xff
	}
	out := Default{}.Compose(base, overlay, 4, 4)
	if got := out.RGBAAt(4, 4); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Fatalf("overlay not drawn, got %v", got)
	}
	if got := out.RGBAAt(0, 9); got != (color.RGBA{0x40, 0x40, 0x40, 0xff}) {
		t.Fatalf("base not preserved, got %v", got)
	}
	if empty := (Default{}).Compose(nil, nil, 0, 0); !empty.Bounds().Empty() {
		t.Fatalf("expected empty result")
	}
}

func TestSelectionCornersTransparent(t *testing.T) {
	img := Selection(64).(*image.RGBA)
	if img.RGBAAt(0, 0).A != 0 {
		t.Fatalf("corner should be transparent")
	}
	if img.RGBAAt(32, 32).A == 0 {
		t.Fatalf("centre should be filled")
	}
}

func TestSplitName(t *testing.T) {
	cases := map[string][2]string{
		`\EFI\boot\icon.png`: {`\EFI\boot`, "icon.png"},
		`/icon.png`:          {`\`, "icon.png"},
		"icon.png":           {"", "icon.png"},
	}
	for in, want := range cases {
		dir, base := splitName(in)
		if dir != want[0] || base != want[1] {
			t.Fatalf("splitName(%q) = %q, %q", in, dir, base)
		}
	}
}

func TestArrowPointsOutward(t *testing.T) {
	right := Arrow(9, false).(*image.RGBA)
	if right.RGBAAt(8, 4).A == 0 || right.RGBAAt(8, 0).A != 0 {
		t.Fatalf("right arrow should be widest in the middle row")
	}
	left := Arrow(9, true).(*image.RGBA)
	if left.RGBAAt(0, 4).A == 0 || left.RGBAAt(0, 0).A != 0 {
		t.Fatalf("left arrow tip should reach the left edge only mid-height")
	}
	if left.RGBAAt(8, 0).A == 0 {
		t.Fatalf("left arrow base should span the right edge")
	}
}
