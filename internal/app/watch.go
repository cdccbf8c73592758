package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/atomicstack/bootmenu/internal/logging"
	"github.com/atomicstack/bootmenu/internal/watch"
)

const (
	watchQuiet    = 200 * time.Millisecond
	watchInterval = time.Second
)

// isConfigFile matches the primary file, includes and Linux options files.
func isConfigFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".conf")
}

// Watch runs Check, then again as a new YAML document each time a
// configuration file in the config directory changes, until ctx ends.
// Failed checks are reported as comments so an edit in progress does not
// end the watch.
func Watch(ctx context.Context, cfg Config, out io.Writer) error {
	w, err := watch.New(watch.Options{
		Dirs:     []string{cfg.ConfigDir},
		Match:    isConfigFile,
		Quiet:    watchQuiet,
		Interval: watchInterval,
	})
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := checkOnce(ctx, cfg, out); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Kind == watch.KindError {
				logging.Error(fmt.Errorf("watch %s: %w", cfg.ConfigDir, ev.Err))
				continue
			}
			if _, err := fmt.Fprintf(out, "---\n# %s %s\n", ev.Kind, filepath.Base(ev.Path)); err != nil {
				return err
			}
			if err := checkOnce(ctx, cfg, out); err != nil {
				return err
			}
		}
	}
}

// checkOnce reports a failed check on out and only returns write errors.
func checkOnce(ctx context.Context, cfg Config, out io.Writer) error {
	err := Check(ctx, cfg, out)
	if err == nil || ctx.Err() != nil {
		return nil
	}
	logging.Error(err)
	_, werr := fmt.Fprintf(out, "# check failed: %v\n", err)
	return werr
}
