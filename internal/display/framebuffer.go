package display

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/gonutz/framebuffer"
)

// Framebuffer is a Sink writing frames to a Linux framebuffer device.
type Framebuffer struct {
	dev *framebuffer.Device
}

// OpenFramebuffer opens a device such as /dev/fb0.
func OpenFramebuffer(path string) (*Framebuffer, error) {
	dev, err := framebuffer.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer %s: %w", path, err)
	}
	return &Framebuffer{dev: dev}, nil
}

// Size returns the device resolution.
func (f *Framebuffer) Size() (int, int) {
	b := f.dev.Bounds()
	return b.Dx(), b.Dy()
}

// Flush copies frame onto the device.
func (f *Framebuffer) Flush(frame image.Image) error {
	draw.Draw(f.dev, f.dev.Bounds(), frame, frame.Bounds().Min, draw.Src)
	return nil
}

// Close releases the device mapping. It always returns nil; the error
// result lets Framebuffer sit next to other closers.
func (f *Framebuffer) Close() error {
	f.dev.Close()
	return nil
}
