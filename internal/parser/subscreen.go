package parser

import (
	"strings"

	"github.com/atomicstack/bootmenu/internal/menu"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/volume"
)

// GenerateSubScreen gives entry a sub-screen of boot variants: the default
// options, then variants implied by the OS type, then the return entry.
func (p *Parser) GenerateSubScreen(entry *menu.Entry, vol *volume.Volume) {
	if entry == nil || entry.Loader == nil {
		return
	}
	screen := p.initSubScreen(entry)

	switch entry.Loader.OSType {
	case 'M':
		screen.AddEntry(p.variant(entry, p.catalog.Text("MacVerbose"), "-v"))
		if !p.settings.Hidden(settings.HideSingleUser) {
			screen.AddEntry(p.variant(entry, p.catalog.Text("MacSingleUser"), "-v -s"))
		}
	case 'L':
		if text := p.ReadLinuxOptions(entry.Loader.Path, vol); text != nil {
			for {
				tokens := text.NextTokenLine()
				if len(tokens) < 2 {
					break
				}
				if p.settings.Hidden(settings.HideSingleUser) && isSingleUser(tokens[1]) {
					continue
				}
				title := tokens[0]
				if title == "" {
					title = p.catalog.Text("LinuxDefault")
				}
				v := p.variant(entry, title, tokens[1])
				v.Loader.UseGraphics = p.settings.UsesGraphicsFor(settings.GraphicsForLinux)
				screen.AddEntry(v)
			}
		}
	}

	screen.AddEntry(menu.ReturnEntry())
	entry.SubScreen = screen
}

func (p *Parser) variant(parent *menu.Entry, title, options string) *menu.Entry {
	l := inheritLoader(parent.Loader)
	l.Options = options
	l.Initrd = ""
	return &menu.Entry{Title: title, Tag: menu.TagLoader, Loader: l}
}

func isSingleUser(options string) bool {
	for _, word := range strings.Fields(options) {
		if word == "single" || word == "-s" {
			return true
		}
	}
	return false
}
