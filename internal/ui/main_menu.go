package ui

import (
	"context"

	"github.com/atomicstack/bootmenu/internal/logging/events"
	"github.com/atomicstack/bootmenu/internal/menu"
	"github.com/atomicstack/bootmenu/internal/settings"
)

// MainResult is the outcome of the main menu. DefaultSelection is the title
// of the entry last chosen on the main screen, for the next boot.
type MainResult struct {
	Exit             Exit
	Entry            *menu.Entry
	DefaultSelection string
}

// RunMenu runs a single screen with the sub-menu strategy.
func RunMenu(ctx context.Context, screen *menu.Screen, styles Styles, opts Options) (Result, error) {
	opts.DefaultIndex = -1
	return Run(ctx, screen, styles.Sub, opts)
}

// RunMainMenu runs the main screen until an entry is chosen or the timeout
// expires. Details opens the chosen entry's sub-screen; Details there edits
// the loader options. Escape from a sub-screen, or choosing its return
// entry, goes back to the main screen with the countdown cancelled.
func RunMainMenu(ctx context.Context, screen *menu.Screen, defaultSelection string, styles Styles, opts Options) (MainResult, error) {
	opts.withDefaults()
	mainIndex := -1
	if defaultSelection != "" {
		mainIndex = menu.FindShortcut(screen, defaultSelection)
	}
	subIndex := -1

	for {
		opts.DefaultIndex = mainIndex
		res, err := Run(ctx, screen, styles.Main, opts)
		if err != nil {
			return MainResult{Exit: res.Exit, Entry: res.Entry, DefaultSelection: defaultSelection}, err
		}
		mainIndex = res.Index
		screen.TimeoutSeconds = 0

		out := MainResult{Exit: res.Exit, Entry: res.Entry, DefaultSelection: res.Entry.Title}
		if res.Exit != ExitDetails {
			return out, nil
		}
		if res.Entry.SubScreen == nil {
			continue
		}

		opts.DefaultIndex = subIndex
		sub, err := Run(ctx, res.Entry.SubScreen, styles.Sub, opts)
		if err != nil {
			return out, err
		}
		subIndex = sub.Index
		if sub.Exit == ExitEscape || sub.Entry.Tag == menu.TagReturn {
			continue
		}
		out.Exit, out.Entry = sub.Exit, sub.Entry
		if sub.Exit == ExitDetails {
			ok, err := editOptions(ctx, sub.Entry, opts)
			if err != nil {
				return out, err
			}
			if !ok {
				continue
			}
		}
		return out, nil
	}
}

// editOptions runs the editor on a loader entry and stores the result. It
// reports false when editing is hidden, unavailable, or cancelled.
func editOptions(ctx context.Context, e *menu.Entry, opts Options) (bool, error) {
	if opts.Settings.Hidden(settings.HideEditor) || opts.Editor == nil || e.Loader == nil {
		return false, nil
	}
	edited, ok, err := opts.Editor.Edit(ctx, e.Loader.Options)
	if err != nil {
		return false, err
	}
	events.UI.Edit(e.Title, ok)
	if ok {
		e.Loader.Options = edited
	}
	return ok, nil
}
