package parser

import (
	"sort"
	"strings"

	"github.com/atomicstack/bootmenu/internal/conftext"
	"github.com/atomicstack/bootmenu/internal/logging/events"
	"github.com/atomicstack/bootmenu/internal/menu"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/volume"
)

// line is one token line of a configuration file.
type line struct {
	file   string
	num    int
	tokens []string
	depth  int
}

func (l line) name() string { return strings.ToLower(l.tokens[0]) }

// handler applies one directive. text is the file being read, for
// directives that consume following lines.
type handler func(p *Parser, l line, text *conftext.Text)

var directives map[string]handler

func init() {
	directives = map[string]handler{
		"timeout":                intDirective(func(s *settings.Settings) *int { return &s.Timeout }),
		"hideui":                 (*Parser).hideUI,
		"icons_dir":              stringDirective(func(s *settings.Settings) *string { return &s.IconsDir }),
		"scanfor":                (*Parser).scanFor,
		"uefi_deep_legacy_scan":  boolDirective(func(s *settings.Settings) *bool { return &s.DeepLegacyScan }),
		"scan_delay":             intDirective(func(s *settings.Settings) *int { return &s.ScanDelay }),
		"also_scan_dirs":         listDirective(func(s *settings.Settings) *[]string { return &s.AlsoScan }),
		"dont_scan_volumes":      (*Parser).dontScanVolumes,
		"don't_scan_volumes":     (*Parser).dontScanVolumes,
		"dont_scan_dirs":         listDirective(func(s *settings.Settings) *[]string { return &s.DontScanDirs }),
		"don't_scan_dirs":        listDirective(func(s *settings.Settings) *[]string { return &s.DontScanDirs }),
		"dont_scan_files":        listDirective(func(s *settings.Settings) *[]string { return &s.DontScanFiles }),
		"don't_scan_files":       listDirective(func(s *settings.Settings) *[]string { return &s.DontScanFiles }),
		"windows_recovery_files": listDirective(func(s *settings.Settings) *[]string { return &s.WindowsRecoveryFiles }),
		"scan_driver_dirs":       listDirective(func(s *settings.Settings) *[]string { return &s.DriverDirs }),
		"showtools":              (*Parser).showTools,
		"banner":                 stringDirective(func(s *settings.Settings) *string { return &s.BannerFile }),
		"banner_scale":           (*Parser).bannerScale,
		"small_icon_size":        (*Parser).smallIconSize,
		"big_icon_size":          (*Parser).bigIconSize,
		"selection_small":        stringDirective(func(s *settings.Settings) *string { return &s.SelectionSmall }),
		"selection_big":          stringDirective(func(s *settings.Settings) *string { return &s.SelectionBig }),
		"default_selection":      (*Parser).defaultSelection,
		"textonly":               boolDirective(func(s *settings.Settings) *bool { return &s.TextOnly }),
		"textmode":               intDirective(func(s *settings.Settings) *int { return &s.RequestedTextMode }),
		"resolution":             (*Parser).resolution,
		"screensaver":            intDirective(func(s *settings.Settings) *int { return &s.ScreensaverTime }),
		"use_graphics_for":       (*Parser).useGraphicsFor,
		"font":                   stringDirective(func(s *settings.Settings) *string { return &s.Font }),
		"scan_all_linux_kernels": boolDirective(func(s *settings.Settings) *bool { return &s.ScanAllLinux }),
		"max_tags":               intDirective(func(s *settings.Settings) *int { return &s.MaxTags }),
		"include":                (*Parser).include,
		"menuentry":              (*Parser).skipStanza,
		"}":                      func(*Parser, line, *conftext.Text) {},
	}
}

// DirectiveNames lists the known directives in sorted order.
func DirectiveNames() []string {
	names := make([]string, 0, len(directives))
	for name := range directives {
		if name == "}" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Parser) apply(l line, text *conftext.Text) {
	events.Parse.Directive(l.file, l.num, l.tokens[0], len(l.tokens))
	h, ok := directives[l.name()]
	if !ok {
		if hint := suggest(l.name()); hint != "" {
			p.report(l.file, l.num, UnknownDirective, "unknown directive %q (did you mean %q?)", l.tokens[0], hint)
		} else {
			p.report(l.file, l.num, UnknownDirective, "unknown directive %q", l.tokens[0])
		}
		return
	}
	h(p, l, text)
}

func (p *Parser) malformed(l line, format string, args ...interface{}) {
	args = append([]interface{}{l.tokens[0]}, args...)
	p.report(l.file, l.num, MalformedDirective, "%s: "+format, args...)
}

// expectArgs reports l unless it has exactly n tokens after the keyword.
func (p *Parser) expectArgs(l line, n int) bool {
	if len(l.tokens) != n+1 {
		p.malformed(l, "expected %d argument(s), got %d", n, len(l.tokens)-1)
		return false
	}
	return true
}

// atoi parses the leading decimal digits of s; anything else yields 0.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// intValue converts the single argument of l. The literal -1 yields the
// unset sentinel.
func (p *Parser) intValue(l line) (int, bool) {
	if !p.expectArgs(l, 1) {
		return 0, false
	}
	if l.tokens[1] == "-1" {
		return settings.Unset, true
	}
	return atoi(l.tokens[1]), true
}

func intDirective(field func(*settings.Settings) *int) handler {
	return func(p *Parser, l line, _ *conftext.Text) {
		if v, ok := p.intValue(l); ok {
			*field(p.settings) = v
		}
	}
}

// stringDirective replaces the value, or appends to it with a comma when the
// argument starts with "+," or "+ ".
func stringDirective(field func(*settings.Settings) *string) handler {
	return func(p *Parser, l line, _ *conftext.Text) {
		if !p.expectArgs(l, 1) {
			return
		}
		target := field(p.settings)
		value := l.tokens[1]
		if len(value) > 1 && value[0] == '+' && (value[1] == ',' || value[1] == ' ') {
			if *target != "" {
				*target += "," + value[2:]
			} else {
				*target = value[2:]
			}
			return
		}
		*target = value
	}
}

// listDirective replaces the list, or appends to it when the first argument
// is a lone "+". Values are normalized as paths.
func listDirective(field func(*settings.Settings) *[]string) handler {
	return func(p *Parser, l line, _ *conftext.Text) {
		target := field(p.settings)
		add := len(l.tokens) > 2 && l.tokens[1] == "+"
		args := l.tokens[1:]
		if add {
			args = args[1:]
		} else {
			*target = nil
		}
		for _, arg := range args {
			*target = append(*target, volume.CleanPath(arg))
		}
	}
}

func boolValue(tokens []string) bool {
	if len(tokens) < 2 {
		return true
	}
	switch strings.ToLower(tokens[1]) {
	case "0", "false", "off":
		return false
	}
	return true
}

func boolDirective(field func(*settings.Settings) *bool) handler {
	return func(p *Parser, l line, _ *conftext.Text) {
		*field(p.settings) = boolValue(l.tokens)
	}
}

// parseTime converts HH:MM to minutes after midnight. Digits accumulate and
// each colon shifts the minutes into the hours.
func parseTime(s string) int {
	hour, minute := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == ':':
			hour, minute = minute, 0
		case c >= '0' && c <= '9':
			minute = minute*10 + int(c-'0')
		}
	}
	return hour*60 + minute
}

var hideFlags = map[string]settings.HideFlag{
	"banner":     settings.HideBanner,
	"label":      settings.HideLabel,
	"singleuser": settings.HideSingleUser,
	"hwtest":     settings.HideHWTest,
	"arrows":     settings.HideArrows,
	"hints":      settings.HideHints,
	"editor":     settings.HideEditor,
	"safemode":   settings.HideSafeMode,
}

func (p *Parser) hideUI(l line, _ *conftext.Text) {
	for _, name := range l.tokens[1:] {
		lower := strings.ToLower(name)
		if lower == "all" {
			p.settings.HideUI = settings.HideAll
			continue
		}
		flag, ok := hideFlags[lower]
		if !ok {
			p.malformed(l, "unknown hideui flag %q", name)
			continue
		}
		p.settings.HideUI |= flag
	}
}

// scanFor stores the first byte of each token, the keyword included.
func (p *Parser) scanFor(l line, _ *conftext.Text) {
	for i := 0; i < settings.NumScanOptions; i++ {
		c := byte(' ')
		if i < len(l.tokens) {
			c = 0
			if l.tokens[i] != "" {
				c = l.tokens[i][0]
			}
		}
		p.settings.ScanFor[i] = c
	}
}

// dontScanVolumes always replaces and keeps the names verbatim, since
// volume labels may contain slashes.
func (p *Parser) dontScanVolumes(l line, _ *conftext.Text) {
	p.settings.DontScanVolumes = append([]string(nil), l.tokens[1:]...)
}

var toolNames = map[string]menu.Tag{
	"shell":            menu.TagShell,
	"gptsync":          menu.TagGPTSync,
	"gdisk":            menu.TagGdisk,
	"about":            menu.TagAbout,
	"exit":             menu.TagExit,
	"reboot":           menu.TagReboot,
	"shutdown":         menu.TagShutdown,
	"apple_recovery":   menu.TagAppleRecovery,
	"windows_recovery": menu.TagWindowsRecovery,
	"mok_tool":         menu.TagMokTool,
	"firmware":         menu.TagFirmware,
	"memtest86":        menu.TagMemtest,
	"memtest":          menu.TagMemtest,
}

func (p *Parser) showTools(l line, _ *conftext.Text) {
	p.settings.ShowTools = make([]menu.Tag, 0, menu.NumTools)
	for i := 1; i < len(l.tokens) && i < menu.NumTools; i++ {
		tag, ok := toolNames[strings.ToLower(l.tokens[i])]
		if !ok {
			p.malformed(l, "unknown tool %q", l.tokens[i])
		}
		p.settings.ShowTools = append(p.settings.ShowTools, tag)
	}
}

func (p *Parser) bannerScale(l line, _ *conftext.Text) {
	if !p.expectArgs(l, 1) {
		return
	}
	switch strings.ToLower(l.tokens[1]) {
	case "noscale":
		p.settings.BannerScale = settings.BannerNoScale
	case "fillscreen", "fullscreen":
		p.settings.BannerScale = settings.BannerFillScreen
	default:
		p.malformed(l, "unknown scaling %q", l.tokens[1])
	}
}

func (p *Parser) smallIconSize(l line, _ *conftext.Text) {
	if v, ok := p.intValue(l); ok && v >= settings.MinIconSize {
		p.settings.IconSizes[settings.IconSmall] = v
	}
}

func (p *Parser) bigIconSize(l line, _ *conftext.Text) {
	if v, ok := p.intValue(l); ok && v >= settings.MinIconSize {
		p.settings.IconSizes[settings.IconBig] = v
		p.settings.IconSizes[settings.IconBadge] = v / 4
	}
}

// defaultSelection takes either a shortcut specification or a name plus a
// time window during which that name is the default.
func (p *Parser) defaultSelection(l line, text *conftext.Text) {
	if len(l.tokens) != 4 {
		stringDirective(func(s *settings.Settings) *string { return &s.DefaultSelection })(p, l, text)
		return
	}
	start, end := parseTime(l.tokens[2]), parseTime(l.tokens[3])
	if start > settings.LastMinute || end > settings.LastMinute {
		p.malformed(l, "time window %s-%s out of range", l.tokens[2], l.tokens[3])
		return
	}
	hour, minute := p.clock.Now()
	now := hour*60 + minute
	if now > settings.LastMinute {
		p.log.Warn().Int("hour", hour).Int("minute", minute).Msg("impossible system time")
		return
	}
	if inWindow(now, start, end) {
		p.settings.DefaultSelection = l.tokens[1]
	}
}

// inWindow reports whether now lies in [start, end]; a window with start
// after end wraps past midnight.
func inWindow(now, start, end int) bool {
	if start <= end {
		return now >= start && now <= end
	}
	return now >= start || now <= end
}

func (p *Parser) resolution(l line, _ *conftext.Text) {
	if len(l.tokens) != 2 && len(l.tokens) != 3 {
		p.malformed(l, "expected width and optional height")
		return
	}
	p.settings.RequestedScreenWidth = atoi(l.tokens[1])
	p.settings.RequestedScreenHeight = 0
	if len(l.tokens) == 3 {
		p.settings.RequestedScreenHeight = atoi(l.tokens[2])
	}
}

var graphicsNames = map[string]settings.GraphicsFor{
	"osx":     settings.GraphicsForOSX,
	"linux":   settings.GraphicsForLinux,
	"elilo":   settings.GraphicsForELILO,
	"grub":    settings.GraphicsForGRUB,
	"windows": settings.GraphicsForWindows,
}

func (p *Parser) useGraphicsFor(l line, _ *conftext.Text) {
	add := len(l.tokens) > 2 && l.tokens[1] == "+"
	if len(l.tokens) >= 2 && !add {
		p.settings.GraphicsFor = 0
	}
	for i, name := range l.tokens[1:] {
		if i == 0 && add {
			continue
		}
		kind, ok := graphicsNames[strings.ToLower(name)]
		if !ok {
			p.malformed(l, "unknown loader kind %q", name)
			continue
		}
		p.settings.GraphicsFor |= kind
	}
}

// include loads another file. A file naming itself is ignored; nesting is
// bounded by MaxIncludeDepth.
func (p *Parser) include(l line, _ *conftext.Text) {
	if !p.expectArgs(l, 1) {
		return
	}
	name := l.tokens[1]
	if strings.EqualFold(name, l.file) {
		return
	}
	if l.depth+1 > MaxIncludeDepth {
		p.report(l.file, l.num, IncludeDepth, "include %q nested deeper than %d", name, MaxIncludeDepth)
		return
	}
	events.Parse.Include(l.file, name, l.depth+1)
	_ = p.loadConfig(name, l.depth+1)
}

// skipStanza passes over a menuentry body; ScanUserConfigured reads it.
func (p *Parser) skipStanza(_ line, text *conftext.Text) {
	open := 1
	for open > 0 {
		tokens := text.NextTokenLine()
		if tokens == nil {
			return
		}
		switch strings.ToLower(tokens[0]) {
		case "submenuentry":
			open++
		case "}":
			open--
		}
	}
}
