package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/bootmenu/internal/logging"
	"github.com/atomicstack/bootmenu/internal/logging/events"
	"github.com/atomicstack/bootmenu/internal/ui"
	"github.com/atomicstack/bootmenu/internal/vars"
)

// Back-end names accepted by Config.Backend.
const (
	BackendAuto        = "auto"
	BackendTerminal    = "terminal"
	BackendFramebuffer = "framebuffer"
)

// Config describes user-provided application options. The flag tag names
// the command-line flag a field comes from, for error messages.
type Config struct {
	ConfigDir   string   `flag:"config-dir" validate:"required"`
	ConfigFile  string   `flag:"config" validate:"required"`
	Volumes     []string `flag:"volumes" validate:"omitempty,dive,required"`
	StateDir    string   `flag:"state-dir"`
	Backend     string   `flag:"backend" validate:"oneof=auto terminal framebuffer"`
	Framebuffer string   `flag:"framebuffer" validate:"required_if=Backend framebuffer"`
	InputDevice string   `flag:"input-device"`
	Width       int      `flag:"width" validate:"gte=0"`
	Height      int      `flag:"height" validate:"gte=0"`
	Language    string   `flag:"lang" validate:"omitempty,bcp47_language_tag"`
}

// ErrNoEntries is returned when the configuration yields nothing to show.
var ErrNoEntries = errors.New("no boot entries or tools configured")

// Run parses the configuration, shows the main menu and prints the chosen
// entry to out as YAML. Escape ends the run without output.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	sess, err := Load(cfg)
	if err != nil {
		return err
	}
	if len(sess.Screen.Entries) == 0 {
		return ErrNoEntries
	}

	fe, err := openFrontend(cfg, sess, os.Getenv("TERM"))
	if err != nil {
		return err
	}
	choice, runErr := sess.Boot(ctx, fe)
	if err := fe.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return nil
		}
		return runErr
	}
	if choice == nil {
		return nil
	}
	return writeYAML(out, choice)
}

// Boot runs the main menu on fe. It returns nil when the operator escaped.
// A chosen entry's title is stored as the next default selection.
func (s *Session) Boot(ctx context.Context, fe Frontend) (*Choice, error) {
	opts := ui.Options{
		Settings:        s.Settings,
		Input:           fe.Input,
		Clock:           fe.Clock,
		Catalog:         s.Catalog,
		Screenshot:      fe.Screenshot,
		Screensaver:     fe.Screensaver,
		ClearBackground: fe.ClearBackground,
		Editor:          fe.Editor,
	}
	res, err := ui.RunMainMenu(ctx, s.Screen, s.Settings.DefaultSelection, fe.Styles, opts)
	if err != nil {
		return nil, fmt.Errorf("run main menu: %w", err)
	}
	if res.Exit == ui.ExitEscape || res.Entry == nil {
		return nil, nil
	}

	choice := newChoice(res)
	events.App.Choice(choice.Title, choice.Tag.String(), choice.Volume)
	if res.DefaultSelection != "" {
		if err := s.Vars.Set(vars.PreviousBoot, res.DefaultSelection); err != nil {
			logging.Error(fmt.Errorf("store default selection: %w", err))
		}
	}
	return choice, nil
}

func writeYAML(out io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
