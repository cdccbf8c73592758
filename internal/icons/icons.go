// Package icons loads, scales and composes the images shown on the main
// menu.
package icons

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"

	"github.com/atomicstack/bootmenu/internal/volume"
)

// Extensions are tried in order when a name has none.
var Extensions = []string{"png", "bmp"}

// Provider loads and manipulates images.
type Provider interface {
	// LoadIcon reads name from src and scales it to size x size. It returns
	// nil when the file is missing or cannot be decoded.
	LoadIcon(src volume.FileSource, name string, size int) image.Image
	Scale(img image.Image, width, height int) image.Image
	// Compose draws overlay onto a copy of base at x, y.
	Compose(base, overlay image.Image, x, y int) *image.RGBA
	Dummy(size int) image.Image
}

// Default decodes PNG and BMP files and scales with Catmull-Rom.
type Default struct{}

func (Default) LoadIcon(src volume.FileSource, name string, size int) image.Image {
	if src == nil || name == "" {
		return nil
	}
	dir, base := splitName(name)
	if !src.Exists(dir, base) {
		return nil
	}
	data, err := src.ReadAll(dir, base)
	if err != nil {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	if size <= 0 {
		return img
	}
	return Default{}.Scale(img, size, size)
}

func (Default) Scale(img image.Image, width, height int) image.Image {
	if img == nil || width <= 0 || height <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

func (Default) Compose(base, overlay image.Image, x, y int) *image.RGBA {
	var out *image.RGBA
	switch {
	case base == nil && overlay == nil:
		return image.NewRGBA(image.Rectangle{})
	case base == nil:
		b := overlay.Bounds()
		out = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	default:
		b := base.Bounds()
		out = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(out, out.Bounds(), base, b.Min, draw.Src)
	}
	if overlay != nil {
		ob := overlay.Bounds()
		draw.Draw(out, image.Rect(x, y, x+ob.Dx(), y+ob.Dy()), overlay, ob.Min, draw.Over)
	}
	return out
}

// Dummy returns the placeholder shown when an icon cannot be loaded: a
// dark square crossed by a diagonal.
func (Default) Dummy(size int) image.Image {
	if size <= 0 {
		size = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{0x40, 0x40, 0x40, 0xff}), image.Point{}, draw.Src)
	line := color.RGBA{0xd0, 0xd0, 0xd0, 0xff}
	for i := 0; i < size; i++ {
		img.SetRGBA(i, i, line)
		if i+1 < size {
			img.SetRGBA(i+1, i, line)
		}
	}
	return img
}

// Find tries base with each extension in dir and returns the first icon
// that loads.
func Find(p Provider, src volume.FileSource, dir, base string, size int) image.Image {
	if p == nil {
		return nil
	}
	if strings.Contains(base, ".") {
		return p.LoadIcon(src, volume.JoinPath(dir, base), size)
	}
	for _, ext := range Extensions {
		if img := p.LoadIcon(src, volume.JoinPath(dir, base+"."+ext), size); img != nil {
			return img
		}
	}
	return nil
}

// Selection returns the built-in selection highlight: a translucent
// rounded square.
func Selection(size int) image.Image {
	if size <= 0 {
		size = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	radius := size / 8
	fill := color.RGBA{0x60, 0x60, 0x60, 0x60}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if insideRounded(x, y, size, radius) {
				img.SetRGBA(x, y, fill)
			}
		}
	}
	return img
}

// Arrow returns the built-in scroll indicator: a filled triangle pointing
// left or right, size pixels square.
func Arrow(size int, left bool) image.Image {
	if size <= 0 {
		size = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fill := color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	half := size / 2
	for y := 0; y < size; y++ {
		span := min(2*(half-abs(y-half)), size-1)
		for x := 0; x <= span; x++ {
			if left {
				img.SetRGBA(size-1-x, y, fill)
			} else {
				img.SetRGBA(x, y, fill)
			}
		}
	}
	return img
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func insideRounded(x, y, size, r int) bool {
	if r <= 0 {
		return true
	}
	cx, cy := -1, -1
	switch {
	case x < r && y < r:
		cx, cy = r, r
	case x >= size-r && y < r:
		cx, cy = size-r-1, r
	case x < r && y >= size-r:
		cx, cy = r, size-r-1
	case x >= size-r && y >= size-r:
		cx, cy = size-r-1, size-r-1
	}
	if cx < 0 {
		return true
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}

func splitName(name string) (string, string) {
	clean := volume.CleanPath(name)
	idx := strings.LastIndex(clean, `\`)
	if idx < 0 {
		return "", clean
	}
	if idx == 0 {
		return `\`, clean[1:]
	}
	return clean[:idx], clean[idx+1:]
}
