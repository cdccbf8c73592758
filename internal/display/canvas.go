package display

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// TextYMargin is the vertical padding above and below a line of text.
const TextYMargin = 2

// Canvas is a pixel display.
type Canvas interface {
	Size() (width, height int)
	// Clear paints the background and makes it the restore point.
	Clear()
	// Blank paints the whole display black.
	Blank()
	Fill(r image.Rectangle, c color.Color)
	// Draw alpha-composites img at x, y.
	Draw(img image.Image, x, y int)
	// Crop copies a region of the background restore point.
	Crop(r image.Rectangle) *image.RGBA
	// Restore repaints a region from the background restore point.
	Restore(r image.Rectangle)
	// DrawText paints text inside a field of the given width, indented by
	// one cell, on the menu or selection background.
	DrawText(text string, x, y, width int, selected bool)
	// DrawTextOver paints text directly over the background. Empty text
	// erases the whole line at y.
	DrawTextOver(text string, x, y int)
	MeasureText(text string) int
	FontHeight() int
	FontCellWidth() int
	Flush() error
}

// LineHeight is the height of one text row on c.
func LineHeight(c Canvas) int {
	return c.FontHeight() + TextYMargin*2
}

// Palette holds the canvas colours.
type Palette struct {
	Background    color.Color
	Menu          color.Color
	Selection     color.Color
	Text          color.Color
	SelectionText color.Color
	LightText     color.Color
}

func (p Palette) withDefaults() Palette {
	if p.Background == nil {
		p.Background = color.RGBA{0x30, 0x30, 0x30, 0xff}
	}
	if p.Menu == nil {
		p.Menu = color.RGBA{0xbf, 0xbf, 0xbf, 0xff}
	}
	if p.Selection == nil {
		p.Selection = color.RGBA{0xff, 0xff, 0xff, 0xff}
	}
	if p.Text == nil {
		p.Text = color.Black
	}
	if p.SelectionText == nil {
		p.SelectionText = color.Black
	}
	if p.LightText == nil {
		p.LightText = color.White
	}
	return p
}

// Sink receives finished frames.
type Sink interface {
	Flush(frame image.Image) error
}

// Surface is a Canvas backed by an RGBA image and drawn with gg.
type Surface struct {
	mu         sync.Mutex
	frame      *image.RGBA
	background *image.RGBA
	dc         *gg.Context
	face       font.Face
	palette    Palette
	sink       Sink
}

// NewSurface returns a cleared surface. sink may be nil.
func NewSurface(width, height int, palette Palette, sink Sink) *Surface {
	frame := image.NewRGBA(image.Rect(0, 0, width, height))
	s := &Surface{
		frame:   frame,
		dc:      gg.NewContextForRGBA(frame),
		face:    basicfont.Face7x13,
		palette: palette.withDefaults(),
		sink:    sink,
	}
	s.dc.SetFontFace(s.face)
	s.Clear()
	return s
}

// LoadFont switches to a TrueType font file.
func (s *Surface) LoadFont(path string, points float64) error {
	face, err := gg.LoadFontFace(path, points)
	if err != nil {
		return fmt.Errorf("load font %s: %w", path, err)
	}
	s.mu.Lock()
	s.face = face
	s.dc.SetFontFace(face)
	s.mu.Unlock()
	return nil
}

// SetBackground replaces the restore point, for example with a banner
// composited over the background colour.
func (s *Surface) SetBackground(img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draw.Draw(s.frame, s.frame.Bounds(), img, img.Bounds().Min, draw.Over)
	s.background = cloneRGBA(s.frame)
}

// Frame returns a copy of the current frame.
func (s *Surface) Frame() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRGBA(s.frame)
}

func (s *Surface) Size() (int, int) {
	b := s.frame.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	draw.Draw(s.frame, s.frame.Bounds(), image.NewUniform(s.palette.Background), image.Point{}, draw.Src)
	s.background = cloneRGBA(s.frame)
}

func (s *Surface) Blank() {
	s.mu.Lock()
	defer s.mu.Unlock()
	draw.Draw(s.frame, s.frame.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
}

func (s *Surface) Fill(r image.Rectangle, c color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draw.Draw(s.frame, r.Intersect(s.frame.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func (s *Surface) Draw(img image.Image, x, y int) {
	if img == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := img.Bounds()
	draw.Draw(s.frame, image.Rect(x, y, x+b.Dx(), y+b.Dy()), img, b.Min, draw.Over)
}

func (s *Surface) Crop(r image.Rectangle) *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), s.background, r.Min, draw.Src)
	return out
}

func (s *Surface) Restore(r image.Rectangle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r = r.Intersect(s.frame.Bounds())
	draw.Draw(s.frame, r, s.background, r.Min, draw.Src)
}

func (s *Surface) DrawText(text string, x, y, width int, selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	height := s.fontHeight() + TextYMargin*2
	bg, fg := s.palette.Menu, s.palette.Text
	if selected {
		bg, fg = s.palette.Selection, s.palette.SelectionText
	}
	draw.Draw(s.frame, image.Rect(x, y, x+width, y+height).Intersect(s.frame.Bounds()), image.NewUniform(bg), image.Point{}, draw.Src)
	s.text(text, x+s.cellWidth(), y+TextYMargin, fg)
}

func (s *Surface) DrawTextOver(text string, x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	width := s.measure(text)
	if width == 0 {
		width, x = s.frame.Bounds().Dx(), 0
	}
	r := image.Rect(x, y, x+width, y+s.fontHeight()+TextYMargin*2).Intersect(s.frame.Bounds())
	draw.Draw(s.frame, r, s.background, r.Min, draw.Src)
	fg := s.palette.Text
	if averageBrightness(s.background, r) < 128 {
		fg = s.palette.LightText
	}
	s.text(text, x, y, fg)
}

func (s *Surface) text(text string, x, y int, fg color.Color) {
	if text == "" {
		return
	}
	s.dc.SetColor(fg)
	s.dc.DrawString(text, float64(x), float64(y+s.face.Metrics().Ascent.Ceil()))
}

func (s *Surface) MeasureText(text string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.measure(text)
}

func (s *Surface) measure(text string) int {
	return font.MeasureString(s.face, text).Ceil()
}

func (s *Surface) FontHeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fontHeight()
}

func (s *Surface) fontHeight() int {
	return s.face.Metrics().Height.Ceil()
}

func (s *Surface) FontCellWidth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cellWidth()
}

func (s *Surface) cellWidth() int {
	adv, ok := s.face.GlyphAdvance('M')
	if !ok {
		return 8
	}
	return adv.Ceil()
}

// Flush hands the frame to the sink.
func (s *Surface) Flush() error {
	if s.sink == nil {
		return nil
	}
	s.mu.Lock()
	frame := cloneRGBA(s.frame)
	s.mu.Unlock()
	return s.sink.Flush(frame)
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}

func averageBrightness(img *image.RGBA, r image.Rectangle) int {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return 0
	}
	var sum, n int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.RGBAAt(x, y)
			sum += int(c.R) + int(c.G) + int(c.B)
			n += 3
		}
	}
	return sum / n
}
