package app

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"

	"github.com/atomicstack/bootmenu/internal/display"
	"github.com/atomicstack/bootmenu/internal/evdev"
	"github.com/atomicstack/bootmenu/internal/icons"
	"github.com/atomicstack/bootmenu/internal/input"
	"github.com/atomicstack/bootmenu/internal/logging"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/terminal"
	"github.com/atomicstack/bootmenu/internal/theme"
	"github.com/atomicstack/bootmenu/internal/ui"
	"github.com/atomicstack/bootmenu/internal/volume"
)

// Frontend is the display and keyboard the menu runs on.
type Frontend struct {
	Styles          ui.Styles
	Input           input.Source
	Clock           ui.Clock
	Screensaver     ui.Screensaver
	ClearBackground func()
	Screenshot      func() error
	Editor          ui.Editor

	close func() error
}

// Close releases the display and the keyboard.
func (f Frontend) Close() error {
	if f.close == nil {
		return nil
	}
	return f.close()
}

// ErrNoStateDir is returned by screenshots when no state directory is set.
var ErrNoStateDir = errors.New("screenshots need a state directory")

const (
	bannerGap = 32
	fontSize  = 16
)

// useFramebuffer reports whether the graphical back-end should be tried.
// auto picks it on the kernel console only.
func useFramebuffer(cfg Config, s *settings.Settings, termName string) bool {
	if s.TextOnly {
		return false
	}
	switch cfg.Backend {
	case BackendFramebuffer:
		return true
	case BackendTerminal:
		return false
	}
	return termName == "linux"
}

func openFrontend(cfg Config, sess *Session, termName string) (Frontend, error) {
	if useFramebuffer(cfg, sess.Settings, termName) {
		fe, err := openFramebuffer(cfg, sess)
		if err == nil {
			return fe, nil
		}
		if cfg.Backend == BackendFramebuffer {
			return Frontend{}, err
		}
		log := logging.Logger()
		log.Warn().Err(err).Msg("framebuffer unavailable, using the terminal")
	}
	return openTerminal(cfg, sess), nil
}

func openTerminal(cfg Config, sess *Session) Frontend {
	t := terminal.New(terminal.Options{Width: cfg.Width, Height: cfg.Height, AltScreen: true})
	t.Start()
	grid := t.Grid()
	return Frontend{
		Styles:          ui.SelectStyles(false, ui.Display{Console: grid}, sess.Settings),
		Input:           t.Input(),
		Screensaver:     t,
		ClearBackground: grid.Clear,
		Screenshot: func() error {
			return saveText(cfg.StateDir, grid.Lines())
		},
		Editor: t.Editor(sess.Catalog.Text("EditorPrompt")),
		close:  t.Stop,
	}
}

func openFramebuffer(cfg Config, sess *Session) (Frontend, error) {
	fb, err := display.OpenFramebuffer(cfg.Framebuffer)
	if err != nil {
		return Frontend{}, err
	}
	kbd, err := evdev.Open(cfg.InputDevice)
	if err != nil {
		fb.Close()
		return Frontend{}, err
	}
	kbd.Start()

	s := sess.Settings
	w, h := fb.Size()
	surface := display.NewSurface(w, h, theme.Palette(), fb)
	if s.Font != "" {
		if path, ok := sess.hostPath(s.Font); ok {
			if err := surface.LoadFont(path, fontSize); err != nil {
				log := logging.Logger()
				log.Warn().Err(err).Msg("keeping the built-in font")
			}
		}
	}
	reset := func() {
		surface.Clear()
		sess.drawBanner(surface)
	}
	reset()

	d := ui.Display{Canvas: surface, Icons: icons.Default{}, Files: sess.Files, IconsDir: sess.IconsDir}
	return Frontend{
		Styles:          ui.SelectStyles(true, d, s),
		Input:           kbd.Input(),
		Screensaver:     canvasSaver{surface},
		ClearBackground: reset,
		Screenshot: func() error {
			return savePNG(cfg.StateDir, surface.Frame())
		},
		Editor: &ui.LineEditor{Input: kbd.Input(), Render: ui.CanvasLine(surface, sess.Catalog.Text("EditorPrompt"))},
		close: func() error {
			kerr := kbd.Close()
			<-kbd.Done()
			return errors.Join(kerr, fb.Close())
		},
	}, nil
}

// canvasSaver blanks the surface; the run loop repaints on wake.
type canvasSaver struct {
	surface *display.Surface
}

func (c canvasSaver) Blank() {
	c.surface.Blank()
	if err := c.surface.Flush(); err != nil {
		logging.Error(err)
	}
}

func (canvasSaver) Unblank() {}

// drawBanner composes the configured banner into the surface background
// above the main-menu icons and records its bottom edge.
func (s *Session) drawBanner(surface *display.Surface) {
	st := s.Settings
	if st.BannerFile == "" || st.Hidden(settings.HideBanner) {
		return
	}
	img := icons.Default{}.LoadIcon(s.Files, volume.JoinPath(s.SelfDir, st.BannerFile), 0)
	if img == nil {
		log := logging.Logger()
		log.Warn().Str("file", st.BannerFile).Msg("banner not loaded")
		return
	}
	w, h := surface.Size()
	if st.BannerScale == settings.BannerFillScreen {
		img = icons.Default{}.Scale(img, w, h)
	}
	b := img.Bounds()
	row0 := h/2 - ui.TileSizes(st)[0]/2
	top := max(row0-b.Dy()-bannerGap, 0)
	if st.BannerScale == settings.BannerFillScreen {
		top = 0
	}
	layer := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(layer, b.Sub(b.Min).Add(image.Pt((w-b.Dx())/2, top)), img, b.Min, draw.Over)
	surface.SetBackground(layer)
	st.BannerBottomEdge = top + b.Dy()
}

// hostPath maps a path on the boot manager's volume to the host.
func (s *Session) hostPath(name string) (string, bool) {
	src, ok := s.Files.(volume.DirSource)
	if !ok {
		return "", false
	}
	return src.HostPath(s.SelfDir, name)
}

func savePNG(dir string, frame image.Image) error {
	path, err := nextScreenshot(dir, "png")
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, frame); err != nil {
		return fmt.Errorf("save screenshot: %w", err)
	}
	return nil
}

func saveText(dir string, lines []string) error {
	path, err := nextScreenshot(dir, "txt")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("save screenshot: %w", err)
	}
	return nil
}

// nextScreenshot returns the first unused screenshot_NNN name in dir.
func nextScreenshot(dir, ext string) (string, error) {
	if dir == "" {
		return "", ErrNoStateDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create state directory: %w", err)
	}
	for i := 0; i < 1000; i++ {
		path := filepath.Join(dir, fmt.Sprintf("screenshot_%03d.%s", i, ext))
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
	}
	return "", fmt.Errorf("no free screenshot name in %s", dir)
}
