package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atomicstack/bootmenu/internal/conftext"
	"github.com/atomicstack/bootmenu/internal/i18n"
	"github.com/atomicstack/bootmenu/internal/logging"
	"github.com/atomicstack/bootmenu/internal/menu"
	"github.com/atomicstack/bootmenu/internal/parser"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/vars"
	"github.com/atomicstack/bootmenu/internal/volume"
)

// Session is one parsed configuration together with the main screen built
// from it.
type Session struct {
	Config      Config
	Settings    *settings.Settings
	Catalog     *i18n.Catalog
	Volumes     []*volume.Volume
	Self        *volume.Volume
	SelfDir     string
	Files       volume.FileSource
	IconsDir    string
	Vars        vars.Store
	Entries     []*menu.Entry
	Tools       []*menu.Entry
	Diagnostics []parser.Diagnostic
	Screen      *menu.Screen
}

// Load discovers volumes, reads the primary configuration file and its
// includes, and assembles the main screen. A missing or unreadable
// configuration file leaves the defaults in place and shows up in the
// diagnostics.
func Load(cfg Config) (*Session, error) {
	catalog, err := i18n.New(cfg.Language)
	if err != nil {
		return nil, err
	}
	vols, err := discoverVolumes(cfg)
	if err != nil {
		return nil, err
	}
	self, selfDir, err := selfVolume(vols, cfg.ConfigDir)
	if err != nil {
		return nil, err
	}

	var store vars.Store = vars.NewMemory(nil)
	if cfg.StateDir != "" {
		store = vars.Dir{Path: cfg.StateDir}
	}

	defaults := settings.Defaults()
	defaults.ConfigFilename = cfg.ConfigFile
	p := parser.New(
		parser.WithSettings(&defaults),
		parser.WithFiles(self.Root, selfDir),
		parser.WithVolumes(vols),
		parser.WithSelfVolume(self),
		parser.WithVars(store),
		parser.WithCatalog(catalog),
		parser.WithLogger(logging.Logger().With().Str("component", "parser").Logger()),
	)
	if err := p.LoadConfig(cfg.ConfigFile); err != nil && !unreadable(err) {
		return nil, err
	}
	entries, err := p.ScanUserConfigured(cfg.ConfigFile)
	if err != nil && !unreadable(err) {
		return nil, err
	}
	tools := p.ToolEntries()

	sess := &Session{
		Config:      cfg,
		Settings:    p.Settings(),
		Catalog:     catalog,
		Volumes:     vols,
		Self:        self,
		SelfDir:     selfDir,
		Files:       self.Root,
		IconsDir:    p.IconsDir(),
		Vars:        store,
		Entries:     entries,
		Tools:       tools,
		Diagnostics: p.Diagnostics(),
	}
	sess.Screen = MainScreen(sess.Settings, catalog, entries, tools)
	return sess, nil
}

// unreadable reports file errors the parser has already recorded as
// diagnostics; the menu is still built from the defaults.
func unreadable(err error) bool {
	return errors.Is(err, conftext.ErrMissingFile) || errors.Is(err, conftext.ErrRead)
}

func discoverVolumes(cfg Config) ([]*volume.Volume, error) {
	var provider volume.Provider = volume.HostProvider{}
	if len(cfg.Volumes) > 0 {
		provider = volume.RootsProvider{Roots: cfg.Volumes}
	}
	vols, err := provider.Volumes()
	if err != nil {
		return nil, fmt.Errorf("discover volumes: %w", err)
	}
	return vols, nil
}

// selfVolume finds the volume holding the configuration directory and the
// directory's path inside it. Without such a volume the directory itself
// becomes a volume that is not offered to volume lookups.
func selfVolume(vols []*volume.Volume, configDir string) (*volume.Volume, string, error) {
	dir, err := filepath.Abs(configDir)
	if err != nil {
		return nil, "", fmt.Errorf("resolve config directory: %w", err)
	}

	var best *volume.Volume
	bestMount, bestRel := "", ""
	for _, v := range vols {
		if v == nil || !v.Readable || v.Mountpoint == "" {
			continue
		}
		mount, err := filepath.Abs(v.Mountpoint)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(mount, dir)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if best == nil || len(mount) > len(bestMount) {
			best, bestMount, bestRel = v, mount, rel
		}
	}
	if best != nil {
		return best, bootPath(bestRel), nil
	}
	return &volume.Volume{
		Name:       filepath.Base(dir),
		Number:     len(vols),
		Readable:   true,
		Root:       volume.DirSource{Root: dir},
		Mountpoint: dir,
	}, "", nil
}

// bootPath turns a host relative path into a boot-manager path.
func bootPath(rel string) string {
	if rel == "." || rel == "" {
		return ""
	}
	return volume.CleanPath(`\` + filepath.ToSlash(rel))
}

// MainScreen lays out the main menu: loaders on row 0, the first nine with
// digit shortcuts, and tools on row 1.
func MainScreen(s *settings.Settings, catalog *i18n.Catalog, loaders, tools []*menu.Entry) *menu.Screen {
	timeout := s.Timeout
	if timeout < 0 {
		timeout = 0
	}
	screen := &menu.Screen{
		Title:          catalog.Text("MainTitle"),
		TimeoutSeconds: timeout,
		TimeoutText:    catalog.Text("TimeoutText"),
		Hint1:          catalog.Text("MainHint1"),
		Hint2:          catalog.Text("MainHint2"),
	}
	for i, e := range loaders {
		e.Row = 0
		if i < 9 {
			e.ShortcutDigit = rune('1' + i)
		}
		screen.AddEntry(e)
	}
	for _, e := range tools {
		e.Row = 1
		screen.AddEntry(e)
	}
	return screen
}
