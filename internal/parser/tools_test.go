package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/bootmenu/internal/menu"
	"github.com/atomicstack/bootmenu/internal/settings"
	"github.com/atomicstack/bootmenu/internal/volume"
)

func TestToolEntries(t *testing.T) {
	espFiles := volume.MemSource{}
	espFiles.Put(`\EFI\tools\shell.efi`, "x")
	winFiles := volume.MemSource{}
	winFiles.Put(`\EFI\Microsoft\Boot\LrsBootmgr.efi`, "x")
	esp := &volume.Volume{Name: "ESP", Readable: true, Root: espFiles}
	win := &volume.Volume{Name: "WIN", Number: 1, Readable: true, Root: winFiles}

	p := New(WithFiles(espFiles, selfDir), WithSelfVolume(esp), WithVolumes([]*volume.Volume{esp, win}))
	p.Settings().WindowsRecoveryFiles = settings.SplitList(settings.WindowsRecoveryFiles)

	entries := p.ToolEntries()
	tags := []menu.Tag{}
	for _, e := range entries {
		tags = append(tags, e.Tag)
		assert.Equal(t, 1, e.Row, e.Title)
	}
	assert.Equal(t, []menu.Tag{
		menu.TagShell, menu.TagWindowsRecovery, menu.TagAbout,
		menu.TagShutdown, menu.TagReboot, menu.TagFirmware,
	}, tags)

	shell := entries[0]
	require.NotNil(t, shell.Loader)
	assert.Equal(t, `\EFI\tools\shell.efi`, shell.Loader.Path)
	assert.Equal(t, 'S', shell.ShortcutLetter)
	assert.Equal(t, "WIN", entries[1].Loader.VolName)
	assert.Nil(t, entries[2].Loader)
	assert.Equal(t, "About bootmenu", entries[2].Title)
}

func TestToolEntriesSkipEmptySlots(t *testing.T) {
	p := New()
	p.Settings().ShowTools = []menu.Tag{menu.TagNone, menu.TagExit, menu.TagGdisk}
	entries := p.ToolEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, menu.TagExit, entries[0].Tag)
}
