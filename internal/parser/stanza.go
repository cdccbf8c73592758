package parser

import (
	"fmt"
	"strings"

	"github.com/atomicstack/bootmenu/internal/conftext"
	"github.com/atomicstack/bootmenu/internal/logging/events"
	"github.com/atomicstack/bootmenu/internal/menu"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/volume"
)

// PlaceholderLoader stands in for the loader path of a stanza without a
// loader line when loader defaults are applied.
const PlaceholderLoader = `\EFI\BOOT\nemo.efi`

// ScanUserConfigured reads the menuentry stanzas of name and returns the
// enabled entries in file order. Include directives are followed with the
// same policy as LoadConfig.
func (p *Parser) ScanUserConfigured(name string) ([]*menu.Entry, error) {
	var entries []*menu.Entry
	err := p.scanUserConfigured(name, 0, &entries)
	return entries, err
}

func (p *Parser) scanUserConfigured(name string, depth int, out *[]*menu.Entry) error {
	text, err := conftext.ReadFile(p.files, p.selfDir, name)
	if err != nil {
		return fmt.Errorf("scan %s: %w", name, err)
	}

	for {
		tokens := text.NextTokenLine()
		if tokens == nil {
			return nil
		}
		switch strings.ToLower(tokens[0]) {
		case "menuentry":
			if len(tokens) < 2 {
				continue
			}
			entry, vol := p.parseEntry(text, p.selfVol, tokens[1])
			if !entry.Loader.Enabled {
				continue
			}
			if entry.SubScreen == nil {
				p.GenerateSubScreen(entry, vol)
			}
			submenus := 0
			if entry.SubScreen != nil {
				submenus = len(entry.SubScreen.Entries)
			}
			events.Parse.Entry(name, entry.Title, submenus)
			*out = append(*out, entry)
		case "include":
			if len(tokens) != 2 || strings.EqualFold(tokens[1], name) || depth+1 > MaxIncludeDepth {
				continue
			}
			if !p.files.Exists(p.selfDir, tokens[1]) {
				continue
			}
			if err := p.scanUserConfigured(tokens[1], depth+1, out); err != nil {
				p.log.Warn().Err(err).Str("file", tokens[1]).Msg("include skipped")
			}
		}
	}
}

func entryTitle(title string, vol *volume.Volume) string {
	if title == "" {
		title = "Unknown"
	}
	return fmt.Sprintf("Boot %s from %s", title, vol.DisplayName())
}

// parseEntry reads one menuentry body up to its closing brace. It returns
// the entry and the volume its loader lives on.
func (p *Parser) parseEntry(text *conftext.Text, vol *volume.Volume, title string) (*menu.Entry, *volume.Volume) {
	entry := menu.NewLoaderEntry(entryTitle(title, vol))
	entry.Loader.Title = title
	entry.Row = 0
	if vol != nil {
		entry.Badge = vol.Badge
		entry.Loader.VolName = vol.DisplayName()
	}

	defaultsSet, addedSubmenu := false, false
	for {
		tokens := text.NextTokenLine()
		if tokens == nil || tokens[0] == "}" {
			break
		}
		keyword := strings.ToLower(tokens[0])
		if keyword == "disabled" {
			entry.Loader.Enabled = false
			continue
		}
		if len(tokens) < 2 {
			continue
		}
		arg := tokens[1]
		switch keyword {
		case "loader":
			entry.Loader.Path = arg
			p.setLoaderDefaults(entry, arg, vol)
			entry.Loader.Options = ""
			defaultsSet = true
		case "volume":
			if found, ok := volume.Find(p.vols, arg); ok {
				vol = found
				entry.Title = entryTitle(title, vol)
				entry.Badge = vol.Badge
				entry.Loader.VolName = vol.DisplayName()
			}
		case "icon":
			size := p.settings.BigIconSize()
			entry.Image = nil
			if vol != nil {
				entry.Image = p.icons.LoadIcon(vol.Root, arg, size)
			}
			if entry.Image == nil {
				entry.Image = p.icons.Dummy(size)
			}
		case "initrd":
			entry.Loader.Initrd = arg
		case "options":
			entry.Loader.Options = arg
		case "ostype":
			if arg != "" {
				entry.Loader.OSType = arg[0]
			}
		case "graphics":
			entry.Loader.UseGraphics = strings.EqualFold(arg, "on")
		case "submenuentry":
			p.parseSubmenu(entry, text, vol, arg)
			addedSubmenu = true
		}
	}

	if addedSubmenu {
		entry.SubScreen.AddEntry(menu.ReturnEntry())
	}
	foldInitrd(entry.Loader)
	if !defaultsSet {
		p.setLoaderDefaults(entry, PlaceholderLoader, vol)
	}
	return entry, vol
}

// parseSubmenu reads one submenuentry body into a new entry of parent's
// sub-screen. The new entry starts from parent's loader parameters.
func (p *Parser) parseSubmenu(parent *menu.Entry, text *conftext.Text, vol *volume.Volume, title string) {
	screen := p.initSubScreen(parent)
	sub := &menu.Entry{
		Title:  title,
		Tag:    menu.TagLoader,
		Loader: inheritLoader(parent.Loader),
	}

	for {
		tokens := text.NextTokenLine()
		if tokens == nil || tokens[0] == "}" {
			break
		}
		arg, hasArg := "", len(tokens) > 1
		if hasArg {
			arg = tokens[1]
		}
		switch strings.ToLower(tokens[0]) {
		case "loader":
			if hasArg {
				sub.Loader.Path = arg
			}
		case "volume":
			if !hasArg {
				continue
			}
			if found, ok := volume.Find(p.vols, arg); ok {
				vol = found
				sub.Title = entryTitle(title, vol)
				sub.Badge = vol.Badge
				sub.Loader.VolName = vol.DisplayName()
			}
		case "initrd":
			sub.Loader.Initrd = arg
		case "options":
			sub.Loader.Options = arg
		case "add_options":
			if hasArg {
				sub.Loader.Options = joinNonEmpty(sub.Loader.Options, arg, " ")
			}
		case "graphics":
			if hasArg {
				sub.Loader.UseGraphics = strings.EqualFold(arg, "on")
			}
		case "disabled":
			sub.Loader.Enabled = false
		}
	}

	foldInitrd(sub.Loader)
	if sub.Loader.Enabled {
		screen.AddEntry(sub)
	}
	parent.SubScreen = screen
}

// inheritLoader copies the fields a derived entry takes from its parent.
// The derived entry is enabled and has no OS type of its own.
func inheritLoader(parent *menu.Loader) *menu.Loader {
	l := parent.Clone()
	l.Enabled = true
	l.OSType = 0
	return l
}

// initSubScreen returns parent's sub-screen, creating it with the default
// options entry when parent has none.
func (p *Parser) initSubScreen(parent *menu.Entry) *menu.Screen {
	if parent.SubScreen != nil {
		return parent.SubScreen
	}
	title := parent.Loader.Title
	if title == "" {
		title = baseName(parent.Loader.Path)
	}
	screen := &menu.Screen{
		Title:      p.catalog.Format("BootOptionsFor", map[string]interface{}{"Title": title, "Volume": parent.Loader.VolName}),
		TitleImage: parent.Image,
		Hint1:      p.catalog.Text("SubscreenHint1"),
		Hint2:      p.catalog.Text("SubscreenHint2"),
	}
	if p.settings.Hidden(settings.HideEditor) {
		screen.Hint2 = p.catalog.Text("SubscreenHint2NoEditor")
	}
	def := &menu.Entry{
		Title:  p.catalog.Text("DefaultOptions"),
		Tag:    menu.TagLoader,
		Loader: inheritLoader(parent.Loader),
	}
	foldInitrd(def.Loader)
	screen.AddEntry(def)
	return screen
}

// foldInitrd moves the initrd path into the options as initrd=<path>.
func foldInitrd(l *menu.Loader) {
	if l.Initrd == "" {
		return
	}
	l.Options = joinNonEmpty(l.Options, "initrd="+l.Initrd, " ")
	l.Initrd = ""
}

func joinNonEmpty(a, b, sep string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + sep + b
}
