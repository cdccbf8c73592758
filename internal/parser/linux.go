package parser

import (
	"fmt"
	"strings"

	"github.com/atomicstack/bootmenu/internal/conftext"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/volume"
)

// utf8BOM marks generated option files so they decode as UTF-8.
const utf8BOM = "\xEF\xBB\xBF"

// ReadLinuxOptions returns the kernel options file that sits next to
// loaderPath on vol, trying each name in settings.LinuxOptionsFiles. Without
// one it derives options from the volume's /etc/fstab. It returns nil when
// neither is available.
func (p *Parser) ReadLinuxOptions(loaderPath string, vol *volume.Volume) *conftext.Text {
	if vol == nil || vol.Root == nil {
		return nil
	}
	dir := volume.Dir(loaderPath)
	for _, name := range settings.SplitList(settings.LinuxOptionsFiles) {
		if !vol.Root.Exists(dir, name) {
			continue
		}
		text, err := conftext.ReadFile(vol.Root, dir, name)
		if err != nil {
			p.log.Warn().Err(err).Str("file", volume.JoinPath(dir, name)).Msg("unreadable linux options file")
			continue
		}
		return text
	}
	return p.optionsFromFstab(vol)
}

// FirstOptions returns the options of the first line of the Linux options
// file for loaderPath, or "".
func (p *Parser) FirstOptions(loaderPath string, vol *volume.Volume) string {
	text := p.ReadLinuxOptions(loaderPath, vol)
	if text == nil {
		return ""
	}
	if tokens := text.NextTokenLine(); len(tokens) > 1 {
		return tokens[1]
	}
	return ""
}

// optionsFromFstab builds a two-line options file from the root filesystem
// line of /etc/fstab: one normal boot and one single-user boot.
func (p *Parser) optionsFromFstab(vol *volume.Volume) *conftext.Text {
	if !vol.Root.Exists(`\etc`, "fstab") {
		return nil
	}
	fstab, err := conftext.ReadFile(vol.Root, `\etc`, "fstab")
	if err != nil {
		p.log.Warn().Err(err).Str("volume", vol.DisplayName()).Msg("unreadable /etc/fstab")
		return nil
	}

	var b strings.Builder
	for {
		tokens := fstab.NextTokenLine()
		if tokens == nil {
			break
		}
		root := rootSpec(tokens)
		if root == "" {
			continue
		}
		fmt.Fprintf(&b, "\"Boot with normal options\"    \"ro root=%s\"\n", root)
		fmt.Fprintf(&b, "\"Boot into single-user mode\"  \"ro root=%s single\"\n", root)
	}
	if b.Len() == 0 {
		return nil
	}
	text, err := conftext.Open([]byte(utf8BOM + b.String()))
	if err != nil {
		return nil
	}
	return text
}

// rootSpec returns the device of an fstab line that mounts "/". The
// tokenizer has already turned "/" into "\" and split NAME=value pairs.
func rootSpec(tokens []string) string {
	if len(tokens) <= 2 {
		return ""
	}
	var root string
	switch {
	case tokens[1] == `\`:
		root = tokens[0]
	case tokens[2] == `\`:
		root = tokens[0] + "=" + tokens[1]
	default:
		return ""
	}
	return strings.ReplaceAll(root, `\`, "/")
}
