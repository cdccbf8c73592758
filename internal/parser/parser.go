// Package parser reads refind.conf style configuration files into the
// global settings record and the user-defined menu entries.
package parser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/atomicstack/bootmenu/internal/conftext"
	"github.com/atomicstack/bootmenu/internal/i18n"
	"github.com/atomicstack/bootmenu/internal/icons"
	"github.com/atomicstack/bootmenu/internal/logging/events"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/vars"
	"github.com/atomicstack/bootmenu/internal/volume"
)

// MaxIncludeDepth bounds nested include directives.
const MaxIncludeDepth = 8

// Clock reports the local wall-clock time.
type Clock interface {
	Now() (hour, minute int)
}

// SystemClock reads the host clock.
type SystemClock struct{}

func (SystemClock) Now() (int, int) {
	now := time.Now()
	return now.Hour(), now.Minute()
}

// FixedClock always reports the same time.
type FixedClock struct {
	Hour, Minute int
}

func (c FixedClock) Now() (int, int) { return c.Hour, c.Minute }

// Kind classifies a diagnostic.
type Kind int

const (
	MissingFile Kind = iota
	IOError
	MalformedDirective
	UnknownDirective
	IncludeDepth
)

var kindNames = [...]string{"missing_file", "io_error", "malformed_directive", "unknown_directive", "include_depth"}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText prints kinds by name in reports.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Diagnostic is one non-fatal problem found while parsing.
type Diagnostic struct {
	File    string `yaml:"file"`
	Line    int    `yaml:"line"`
	Kind    Kind   `yaml:"kind"`
	Message string `yaml:"message"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.File, d.Kind, d.Message)
}

// Parser holds the collaborators needed to read configuration files.
type Parser struct {
	settings *settings.Settings
	files    volume.FileSource
	selfDir  string
	vols     []*volume.Volume
	selfVol  *volume.Volume
	icons    icons.Provider
	clock    Clock
	vars     vars.Store
	log      zerolog.Logger
	catalog  *i18n.Catalog

	diags []Diagnostic
}

// Option configures a Parser.
type Option func(*Parser)

// WithSettings sets the record the directives write to.
func WithSettings(s *settings.Settings) Option {
	return func(p *Parser) {
		if s != nil {
			p.settings = s
		}
	}
}

// WithFiles sets the source and directory holding the configuration files.
func WithFiles(src volume.FileSource, dir string) Option {
	return func(p *Parser) {
		p.files = src
		p.selfDir = dir
	}
}

// WithVolumes sets the volumes that stanza volume lines resolve against.
func WithVolumes(vols []*volume.Volume) Option {
	return func(p *Parser) { p.vols = vols }
}

// WithSelfVolume sets the volume the boot manager itself was loaded from.
func WithSelfVolume(v *volume.Volume) Option {
	return func(p *Parser) { p.selfVol = v }
}

func WithIcons(provider icons.Provider) Option {
	return func(p *Parser) {
		if provider != nil {
			p.icons = provider
		}
	}
}

func WithClock(c Clock) Option {
	return func(p *Parser) {
		if c != nil {
			p.clock = c
		}
	}
}

func WithVars(store vars.Store) Option {
	return func(p *Parser) {
		if store != nil {
			p.vars = store
		}
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

func WithCatalog(c *i18n.Catalog) Option {
	return func(p *Parser) {
		if c != nil {
			p.catalog = c
		}
	}
}

// New returns a parser. Without options it reads from an empty in-memory
// source into fresh default settings and logs nowhere.
func New(opts ...Option) *Parser {
	defaults := settings.Defaults()
	p := &Parser{
		settings: &defaults,
		files:    volume.MemSource{},
		icons:    icons.Default{},
		clock:    SystemClock{},
		vars:     vars.NewMemory(nil),
		log:      zerolog.Nop(),
		catalog:  i18n.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Settings returns the record the parser writes to.
func (p *Parser) Settings() *settings.Settings { return p.settings }

// Diagnostics returns the problems reported so far.
func (p *Parser) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), p.diags...)
}

func (p *Parser) report(file string, line int, kind Kind, format string, args ...interface{}) {
	d := Diagnostic{File: file, Line: line, Kind: kind, Message: fmt.Sprintf(format, args...)}
	p.diags = append(p.diags, d)
	p.log.Warn().Str("file", file).Int("line", line).Str("kind", kind.String()).Msg(d.Message)
	events.Parse.Diagnostic(file, line, kind.String(), d.Message)
}

// LoadConfig reads the named file from the configuration directory and
// applies its directives to the settings.
func (p *Parser) LoadConfig(name string) error {
	return p.loadConfig(name, 0)
}

func (p *Parser) loadConfig(name string, depth int) error {
	if depth == 0 && strings.EqualFold(name, p.settings.ConfigFilename) {
		p.resetForPrimary()
	}

	text, err := p.open(name)
	if err != nil {
		return err
	}

	for {
		tokens := text.NextTokenLine()
		if tokens == nil {
			break
		}
		p.apply(line{file: name, num: text.Line(), tokens: tokens, depth: depth}, text)
	}
	p.settings.DontScanFiles = mergeUnique(p.settings.DontScanFiles, p.settings.WindowsRecoveryFiles)
	return nil
}

func (p *Parser) open(name string) (*conftext.Text, error) {
	text, err := conftext.ReadFile(p.files, p.selfDir, name)
	if err == nil {
		return text, nil
	}
	kind := IOError
	if errors.Is(err, conftext.ErrMissingFile) {
		kind = MissingFile
	}
	p.report(name, 0, kind, "%v", err)
	return nil, fmt.Errorf("load %s: %w", name, err)
}

func (p *Parser) resetForPrimary() {
	s := p.settings
	s.AlsoScan = settings.SplitList(settings.AlsoScanDirs)

	self := ""
	if p.selfVol != nil {
		self = p.selfVol.DisplayName()
	}
	if p.selfDir != "" {
		if self != "" {
			self += ":"
		}
		self += volume.CleanPath(p.selfDir)
	}
	s.DontScanDirs = nil
	if self != "" {
		s.DontScanDirs = append(s.DontScanDirs, self)
	}
	s.DontScanDirs = append(s.DontScanDirs, settings.SplitList(settings.MemtestLocations)...)
	s.DontScanFiles = append(settings.SplitList(settings.DontScanFiles), settings.SplitList(settings.MokNames)...)
	s.DontScanVolumes = settings.SplitList(settings.DontScanVolumes)
	s.WindowsRecoveryFiles = settings.SplitList(settings.WindowsRecoveryFiles)

	s.DefaultSelection = ""
	if prev, ok := p.vars.Get(vars.PreviousBoot); ok {
		s.DefaultSelection = prev
	}
}

// mergeUnique appends the elements of extra missing from list, comparing
// without regard to case.
func mergeUnique(list, extra []string) []string {
	for _, item := range extra {
		found := false
		for _, have := range list {
			if strings.EqualFold(have, item) {
				found = true
				break
			}
		}
		if !found {
			list = append(list, item)
		}
	}
	return list
}
