package volume

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVolumes() []*Volume {
	return []*Volume{
		{Name: "ESP", PartName: "EFI System", Readable: true, PartGUID: uuid.MustParse("11111111-2222-3333-4444-555555555555")},
		{Name: "broken", Readable: false},
		{Name: "root", PartName: "Linux", Readable: true},
		{Name: "scratch", Readable: false},
		{Name: "home", Readable: true},
		{Name: "zero", Readable: true},
	}
}

func TestFindByOrdinalSkipsUnreadable(t *testing.T) {
	vols := testVolumes()
	v, ok := Find(vols, "2:")
	require.True(t, ok)
	assert.Equal(t, "home", v.Name)

	v, ok = Find(vols, "0:")
	require.True(t, ok)
	assert.Equal(t, "ESP", v.Name)

	_, ok = Find(vols, "9:")
	assert.False(t, ok)
}

func TestFindByLabelAndPartitionName(t *testing.T) {
	vols := testVolumes()
	v, ok := Find(vols, "esp")
	require.True(t, ok)
	assert.Equal(t, "ESP", v.Name)

	v, ok = Find(vols, "LINUX")
	require.True(t, ok)
	assert.Equal(t, "root", v.Name)

	_, ok = Find(vols, "missing")
	assert.False(t, ok)
}

func TestFindByGUID(t *testing.T) {
	vols := testVolumes()
	v, ok := Find(vols, "11111111-2222-3333-4444-555555555555")
	require.True(t, ok)
	assert.Equal(t, "ESP", v.Name)

	_, ok = Find(vols, "00000000-0000-0000-0000-000000000000")
	assert.False(t, ok, "zero GUID never matches")

	_, ok = Find(vols, "aaaaaaaa-2222-3333-4444-555555555555")
	assert.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "ESP", (&Volume{Name: "ESP"}).DisplayName())
	assert.Equal(t, "fs3", (&Volume{Number: 3}).DisplayName())
}

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, `\EFI\refind\refind.conf`, JoinPath(`\EFI\refind`, "refind.conf"))
	assert.Equal(t, `\boot\vmlinuz`, JoinPath(`\EFI\refind`, "/boot/vmlinuz"))
	assert.Equal(t, `EFI\tools`, CleanPath(`EFI//tools/`))
	assert.Equal(t, `\boot`, Dir(`\boot\vmlinuz`))
	assert.Equal(t, `\`, Dir(`\vmlinuz`))
	assert.Equal(t, "", Dir("vmlinuz"))
}

func TestDirSourceCaseInsensitiveLookup(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "EFI", "refind"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "EFI", "refind", "refind.conf"), []byte("timeout 5\n"), 0o644))

	src := DirSource{Root: root}
	assert.True(t, src.Exists(`\efi\REFIND`, "Refind.Conf"))
	data, err := src.ReadAll(`\EFI\refind`, "refind.conf")
	require.NoError(t, err)
	assert.Equal(t, "timeout 5\n", string(data))

	_, err = src.ReadAll(`\EFI`, "missing.conf")
	require.Error(t, err)
	assert.True(t, IsNotExist(err))
	assert.False(t, src.Exists(`\EFI`, "refind"), "directories are not files")
}

func TestMemSource(t *testing.T) {
	src := MemSource{}
	src.Put(`\EFI\refind\refind.conf`, "timeout 1")
	assert.True(t, src.Exists(`\efi\refind`, "REFIND.CONF"))
	_, err := src.ReadAll("", "nope")
	assert.True(t, IsNotExist(err))
}

func TestRootsProvider(t *testing.T) {
	dir := t.TempDir()
	vols, err := RootsProvider{Roots: []string{"ESP=" + dir, filepath.Join(dir, "missing")}}.Volumes()
	require.NoError(t, err)
	require.Len(t, vols, 2)
	assert.Equal(t, "ESP", vols[0].Name)
	assert.True(t, vols[0].Readable)
	assert.Equal(t, "missing", vols[1].Name)
	assert.False(t, vols[1].Readable)
}

func TestUnescapeUdev(t *testing.T) {
	assert.Equal(t, "EFI System", unescapeUdev(`EFI\x20System`))
	assert.Equal(t, "plain", unescapeUdev("plain"))
}
