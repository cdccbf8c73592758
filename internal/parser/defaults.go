package parser

import (
	"image"
	"strings"
	"unicode/utf8"

	"github.com/atomicstack/bootmenu/internal/icons"
	"github.com/atomicstack/bootmenu/internal/menu"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/volume"
)

// MacLoaderPath is the boot loader of macOS volumes.
const MacLoaderPath = `\System\Library\CoreServices\boot.efi`

// loaderClue is what the loader's name says about the operating system.
type loaderClue struct {
	osType   byte
	shortcut rune
	icons    []string
	graphics settings.GraphicsFor
	linux    bool
}

// identify guesses the operating system behind a loader from its file name
// and path.
func identify(loaderPath string) (loaderClue, bool) {
	clean := volume.CleanPath(loaderPath)
	name := strings.ToLower(baseName(clean))
	path := strings.ToLower(clean)

	switch {
	case strings.Contains(name, "bzimage") || strings.Contains(name, "vmlinuz") || strings.HasPrefix(name, "kernel"):
		return loaderClue{osType: 'L', shortcut: 'L', icons: []string{"linux"}, graphics: settings.GraphicsForLinux, linux: true}, true
	case strings.Contains(path, "refind"):
		return loaderClue{osType: 'R', shortcut: 'R', icons: []string{"refind"}}, true
	case strings.EqualFold(clean, MacLoaderPath):
		return loaderClue{osType: 'M', shortcut: 'M', icons: []string{"mac"}, graphics: settings.GraphicsForOSX}, true
	case name == "diags.efi":
		return loaderClue{icons: []string{"hwtest"}}, true
	case name == "e.efi" || strings.Contains(name, "elilo"):
		return loaderClue{osType: 'E', shortcut: 'L', icons: []string{"elilo", "linux"}, graphics: settings.GraphicsForELILO}, true
	case strings.Contains(name, "grub"):
		return loaderClue{osType: 'G', shortcut: 'G', icons: []string{"grub"}, graphics: settings.GraphicsForGRUB}, true
	case strings.EqualFold(clean, `\EFI\Microsoft\Boot\bootmgfw.efi`) || strings.EqualFold(clean, `\EFI\Microsoft\Boot\bootmgr.efi`):
		return loaderClue{osType: 'W', shortcut: 'W', icons: []string{"win"}, graphics: settings.GraphicsForWindows}, true
	case strings.Contains(path, "xom.efi"):
		return loaderClue{osType: 'X', shortcut: 'W', icons: []string{"xom", "win"}, graphics: settings.GraphicsForWindows}, true
	}
	return loaderClue{}, false
}

// setLoaderDefaults fills in the OS type, shortcut letter, graphics flag,
// default options and icon implied by loaderPath.
func (p *Parser) setLoaderDefaults(e *menu.Entry, loaderPath string, vol *volume.Volume) {
	if e.Loader == nil {
		e.Loader = &menu.Loader{Enabled: true}
	}

	var hints []string
	var shortcut rune
	if last := lastDirName(loaderPath); last != "" {
		hints = append(hints, strings.ToLower(last))
		if utf8.RuneCountInString(last) == 1 {
			shortcut, _ = utf8.DecodeRuneInString(last)
		}
	}

	if clue, ok := identify(loaderPath); ok {
		hints = append(hints, clue.icons...)
		if clue.osType != 0 {
			e.Loader.OSType = clue.osType
		}
		if clue.shortcut != 0 && (shortcut == 0 || (clue.osType != 'L' && clue.osType != 'E')) {
			shortcut = clue.shortcut
		}
		if clue.graphics != 0 {
			e.Loader.UseGraphics = p.settings.UsesGraphicsFor(clue.graphics)
		}
		if clue.linux {
			e.Loader.Options = p.FirstOptions(loaderPath, vol)
		}
	}
	if shortcut >= 'a' && shortcut <= 'z' {
		shortcut -= 'a' - 'A'
	}
	e.ShortcutLetter = shortcut

	if e.Image != nil {
		return
	}
	size := p.settings.BigIconSize()
	if vol != nil && vol.Root != nil {
		e.Image = icons.Find(p.icons, vol.Root, volume.Dir(loaderPath), stripExt(baseName(loaderPath)), size)
	}
	if e.Image == nil && vol != nil && vol.Icon != nil {
		e.Image = vol.Icon
	}
	if e.Image == nil {
		e.Image = p.osIcon(append(hints, "unknown"), size)
	}
}

// osIcon returns the first os_<hint> icon found in the icons directory.
func (p *Parser) osIcon(hints []string, size int) image.Image {
	dir := p.IconsDir()
	for _, hint := range hints {
		if img := icons.Find(p.icons, p.files, dir, "os_"+hint, size); img != nil {
			return img
		}
	}
	return nil
}

// IconsDir is the configured icons directory, relative to the
// configuration directory unless absolute.
func (p *Parser) IconsDir() string {
	return volume.JoinPath(p.selfDir, p.settings.IconsDir)
}

func baseName(path string) string {
	clean := volume.CleanPath(path)
	if idx := strings.LastIndex(clean, `\`); idx >= 0 {
		return clean[idx+1:]
	}
	return clean
}

// lastDirName returns the name of the directory holding path.
func lastDirName(path string) string {
	return baseName(volume.Dir(path))
}

func stripExt(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[:idx]
	}
	return name
}
