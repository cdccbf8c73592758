package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/atomicstack/bootmenu/internal/format/table"
	"github.com/atomicstack/bootmenu/internal/menu"
	"github.com/atomicstack/bootmenu/internal/parser"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/ui"
	"github.com/atomicstack/bootmenu/internal/volume"
)

// EntryReport describes one menu entry.
type EntryReport struct {
	Title    string        `yaml:"title"`
	Tag      menu.Tag      `yaml:"tag"`
	Shortcut string        `yaml:"shortcut,omitempty"`
	Volume   string        `yaml:"volume,omitempty"`
	Loader   string        `yaml:"loader,omitempty"`
	Options  string        `yaml:"options,omitempty"`
	Initrd   string        `yaml:"initrd,omitempty"`
	OSType   string        `yaml:"ostype,omitempty"`
	Graphics bool          `yaml:"graphics,omitempty"`
	Submenu  []EntryReport `yaml:"submenu,omitempty"`
}

func reportEntry(e *menu.Entry) EntryReport {
	r := EntryReport{Title: e.Title, Tag: e.Tag}
	switch {
	case e.ShortcutDigit != 0:
		r.Shortcut = string(e.ShortcutDigit)
	case e.ShortcutLetter != 0:
		r.Shortcut = string(e.ShortcutLetter)
	}
	if l := e.Loader; l != nil {
		r.Volume = l.VolName
		r.Loader = l.Path
		r.Options = l.Options
		r.Initrd = l.Initrd
		r.Graphics = l.UseGraphics
		if l.OSType != 0 {
			r.OSType = string(rune(l.OSType))
		}
	}
	if e.SubScreen != nil {
		for _, sub := range e.SubScreen.Entries {
			r.Submenu = append(r.Submenu, reportEntry(sub))
		}
	}
	return r
}

// Choice is what the main menu ended with.
type Choice struct {
	EntryReport      `yaml:",inline"`
	Exit             ui.Exit `yaml:"exit"`
	DefaultSelection string  `yaml:"default_selection,omitempty"`
}

func newChoice(res ui.MainResult) *Choice {
	c := &Choice{EntryReport: reportEntry(res.Entry), Exit: res.Exit, DefaultSelection: res.DefaultSelection}
	c.Submenu = nil
	return c
}

// SettingsReport is the subset of settings worth reviewing after a parse.
type SettingsReport struct {
	Timeout          int        `yaml:"timeout"`
	TextOnly         bool       `yaml:"textonly"`
	HideUI           string     `yaml:"hideui"`
	ScreensaverTime  int        `yaml:"screensaver"`
	DefaultSelection string     `yaml:"default_selection,omitempty"`
	IconsDir         string     `yaml:"icons_dir"`
	BannerFile       string     `yaml:"banner,omitempty"`
	IconSizes        [2]int     `yaml:"icon_sizes,flow"`
	ScanFor          string     `yaml:"scanfor"`
	AlsoScan         []string   `yaml:"also_scan_dirs,omitempty"`
	DontScanVolumes  []string   `yaml:"dont_scan_volumes,omitempty"`
	DontScanDirs     []string   `yaml:"dont_scan_dirs,omitempty"`
	DontScanFiles    []string   `yaml:"dont_scan_files,omitempty"`
	ShowTools        []menu.Tag `yaml:"showtools,omitempty"`
}

func reportSettings(s *settings.Settings) SettingsReport {
	return SettingsReport{
		Timeout:          s.Timeout,
		TextOnly:         s.TextOnly,
		HideUI:           "0x" + strconv.FormatUint(uint64(s.HideUI), 16),
		ScreensaverTime:  s.ScreensaverTime,
		DefaultSelection: s.DefaultSelection,
		IconsDir:         s.IconsDir,
		BannerFile:       s.BannerFile,
		IconSizes:        [2]int{s.SmallIconSize(), s.BigIconSize()},
		ScanFor:          strings.TrimRight(string(s.ScanFor[:]), " "),
		AlsoScan:         s.AlsoScan,
		DontScanVolumes:  s.DontScanVolumes,
		DontScanDirs:     s.DontScanDirs,
		DontScanFiles:    s.DontScanFiles,
		ShowTools:        s.ShowTools,
	}
}

// Report is the output of the check command.
type Report struct {
	Config      string              `yaml:"config"`
	Language    string              `yaml:"language"`
	Settings    SettingsReport      `yaml:"settings"`
	Entries     []EntryReport       `yaml:"entries"`
	Tools       []EntryReport       `yaml:"tools,omitempty"`
	Diagnostics []parser.Diagnostic `yaml:"diagnostics,omitempty"`
}

// NewReport summarizes a loaded session.
func NewReport(s *Session) Report {
	r := Report{
		Config:      filepath.Join(s.Config.ConfigDir, s.Config.ConfigFile),
		Language:    s.Catalog.Language().String(),
		Settings:    reportSettings(s.Settings),
		Entries:     []EntryReport{},
		Diagnostics: s.Diagnostics,
	}
	for _, e := range s.Screen.Entries {
		if e.Row == 0 {
			r.Entries = append(r.Entries, reportEntry(e))
		} else {
			r.Tools = append(r.Tools, reportEntry(e))
		}
	}
	return r
}

// Check parses the configuration without a UI and writes the report,
// followed by the volume table as YAML comments.
func Check(ctx context.Context, cfg Config, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sess, err := Load(cfg)
	if err != nil {
		return err
	}
	if err := writeYAML(out, NewReport(sess)); err != nil {
		return err
	}
	for _, line := range VolumeTable(sess.Volumes) {
		if _, err := fmt.Fprintf(out, "# %s\n", strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

const maxMountWidth = 32

// VolumeTable formats the volumes with a header row.
func VolumeTable(vols []*volume.Volume) []string {
	rows := [][]string{{"#", "NAME", "DEVICE", "FS", "SIZE", "READABLE", "MOUNT"}}
	for _, v := range vols {
		if v == nil {
			continue
		}
		size := "-"
		if v.Size > 0 {
			size = humanize.IBytes(v.Size)
		}
		rows = append(rows, []string{
			strconv.Itoa(v.Number),
			v.DisplayName(),
			dash(v.Device),
			dash(v.FSType),
			size,
			strconv.FormatBool(v.Readable),
			dash(v.Mountpoint),
		})
	}
	return table.Format(rows, []table.Column{
		{Align: table.AlignRight},
		{},
		{},
		{},
		{Align: table.AlignRight},
		{},
		{Max: maxMountWidth},
	})
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
