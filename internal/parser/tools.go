package parser

import (
	"github.com/atomicstack/bootmenu/internal/icons"
	"github.com/atomicstack/bootmenu/internal/menu"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/volume"
)

// toolSpec describes one showtools tag.
type toolSpec struct {
	title    string
	icon     string
	shortcut rune
	// files lists candidate binaries; empty means the tool is built in.
	files []string
	// dirs are searched for each file; empty means the volume root.
	dirs []string
	// anyVolume searches every readable volume instead of the self volume.
	anyVolume bool
}

var shellFiles = []string{`\EFI\tools\shell.efi`, `\EFI\tools\shellx64.efi`, `\shell.efi`, `\shellx64.efi`}

func toolSpecs() map[menu.Tag]toolSpec {
	return map[menu.Tag]toolSpec{
		menu.TagAbout:           {title: "ToolAbout", icon: "func_about", shortcut: 'A'},
		menu.TagReboot:          {title: "ToolReboot", icon: "func_reset", shortcut: 'R'},
		menu.TagShutdown:        {title: "ToolShutdown", icon: "func_shutdown", shortcut: 'U'},
		menu.TagExit:            {title: "ToolExit", icon: "func_exit"},
		menu.TagFirmware:        {title: "ToolFirmware", icon: "func_firmware"},
		menu.TagShell:           {title: "ToolShell", icon: "tool_shell", shortcut: 'S', files: shellFiles},
		menu.TagGPTSync:         {title: "ToolGPTSync", icon: "tool_part", shortcut: 'P', files: []string{"gptsync.efi", "gptsync_x64.efi"}, dirs: []string{`\EFI\tools`}},
		menu.TagGdisk:           {title: "ToolGdisk", icon: "tool_part", shortcut: 'G', files: []string{"gdisk.efi", "gdisk_x64.efi"}, dirs: []string{`\EFI\tools`}},
		menu.TagMemtest:         {title: "ToolMemtest", icon: "tool_memtest", files: []string{"memtest86.efi", "memtest86_x64.efi", "memtest86x64.efi", "bootx64.efi"}, dirs: settings.SplitList(settings.MemtestLocations)},
		menu.TagMokTool:         {title: "ToolMok", icon: "tool_mok_tool", files: settings.SplitList(settings.MokNames), dirs: settings.SplitList(settings.MokLocations)},
		menu.TagAppleRecovery:   {title: "ToolAppleRecovery", icon: "tool_apple_rescue", files: []string{`\com.apple.recovery.boot\boot.efi`}, anyVolume: true},
		menu.TagWindowsRecovery: {title: "ToolWindowsRecovery", icon: "tool_windows_rescue", anyVolume: true},
	}
}

// ToolEntries turns the showtools list into row-1 entries. Tools backed by
// a binary are offered once per binary found; built-in actions always
// appear.
func (p *Parser) ToolEntries() []*menu.Entry {
	specs := toolSpecs()
	size := p.settings.SmallIconSize()
	var out []*menu.Entry
	for _, tag := range p.settings.ShowTools {
		spec, ok := specs[tag]
		if !ok {
			continue
		}
		files := spec.files
		if tag == menu.TagWindowsRecovery {
			files = p.settings.WindowsRecoveryFiles
		}
		title := p.catalog.Text(spec.title)
		img := icons.Find(p.icons, p.files, p.IconsDir(), spec.icon, size)
		if len(files) == 0 {
			out = append(out, &menu.Entry{Title: title, Tag: tag, Row: 1, ShortcutLetter: spec.shortcut, Image: img})
			continue
		}
		for _, found := range p.locate(spec, files) {
			out = append(out, &menu.Entry{
				Title:          title,
				Tag:            tag,
				Row:            1,
				ShortcutLetter: spec.shortcut,
				Image:          img,
				Loader: &menu.Loader{
					Title:   title,
					Path:    found.path,
					VolName: found.vol.DisplayName(),
					Enabled: true,
				},
			})
		}
	}
	return out
}

type located struct {
	vol  *volume.Volume
	path string
}

// locate returns the tool binaries present, at most one per volume.
func (p *Parser) locate(spec toolSpec, files []string) []located {
	vols := []*volume.Volume{p.selfVol}
	if spec.anyVolume {
		vols = p.vols
	}
	dirs := spec.dirs
	if len(dirs) == 0 {
		dirs = []string{""}
	}
	var out []located
	for _, vol := range vols {
		if vol == nil || vol.Root == nil || (spec.anyVolume && !vol.Readable) {
			continue
		}
	search:
		for _, dir := range dirs {
			for _, file := range files {
				if vol.Root.Exists(dir, file) {
					out = append(out, located{vol: vol, path: volume.JoinPath(dir, file)})
					break search
				}
			}
		}
	}
	return out
}
