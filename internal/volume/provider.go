package volume

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/disk"
)

// Provider supplies the ordered volume list.
type Provider interface {
	Volumes() ([]*Volume, error)
}

// Static is a fixed volume list.
type Static []*Volume

// Volumes returns the list as is.
func (s Static) Volumes() ([]*Volume, error) {
	return []*Volume(s), nil
}

// RootsProvider exposes host directories as volumes, labelled by base name.
type RootsProvider struct {
	Roots []string
}

// Volumes builds one readable volume per root directory.
func (r RootsProvider) Volumes() ([]*Volume, error) {
	vols := make([]*Volume, 0, len(r.Roots))
	for i, root := range r.Roots {
		label, dir := root, root
		if idx := strings.Index(root, "="); idx > 0 {
			label, dir = root[:idx], root[idx+1:]
		} else {
			label = filepath.Base(filepath.Clean(root))
		}
		info, err := os.Stat(dir)
		vols = append(vols, &Volume{
			Name:       label,
			Number:     i,
			Readable:   err == nil && info.IsDir(),
			Root:       DirSource{Root: dir},
			Mountpoint: dir,
		})
	}
	return vols, nil
}

// HostProvider enumerates mounted partitions of the running system.
type HostProvider struct {
	// DevDir is the udev device directory, /dev by default.
	DevDir string
}

// Volumes lists mounted partitions with labels, partition names and GUIDs
// taken from the udev by-label, by-partlabel and by-partuuid links.
func (h HostProvider) Volumes() ([]*Volume, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil, fmt.Errorf("list partitions: %w", err)
	}
	devDir := h.DevDir
	if devDir == "" {
		devDir = "/dev"
	}
	labels := readLinks(filepath.Join(devDir, "disk", "by-label"))
	partLabels := readLinks(filepath.Join(devDir, "disk", "by-partlabel"))
	partUUIDs := readLinks(filepath.Join(devDir, "disk", "by-partuuid"))

	vols := make([]*Volume, 0, len(parts))
	for i, p := range parts {
		v := &Volume{
			Number:     i,
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			FSType:     p.Fstype,
			Root:       DirSource{Root: p.Mountpoint},
			Name:       labels[p.Device],
			PartName:   partLabels[p.Device],
		}
		if raw, ok := partUUIDs[p.Device]; ok {
			if guid, err := uuid.Parse(raw); err == nil {
				v.PartGUID = guid
			}
		}
		if _, err := os.ReadDir(p.Mountpoint); err == nil {
			v.Readable = true
		}
		if usage, err := disk.Usage(p.Mountpoint); err == nil {
			v.Size = usage.Total
		}
		vols = append(vols, v)
	}
	return vols, nil
}

// readLinks maps resolved device paths to the unescaped link names in dir.
func readLinks(dir string) map[string]string {
	out := map[string]string{}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return out
	}
	for _, entry := range entries {
		link := filepath.Join(dir, entry.Name())
		target, err := filepath.EvalSymlinks(link)
		if err != nil {
			continue
		}
		out[target] = unescapeUdev(entry.Name())
	}
	return out
}

// unescapeUdev decodes the \xNN escapes udev uses in link names.
func unescapeUdev(name string) string {
	if !strings.Contains(name, `\x`) {
		return name
	}
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if name[i] == '\\' && i+3 < len(name) && name[i+1] == 'x' {
			if v, err := strconv.ParseUint(name[i+2:i+4], 16, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		b.WriteByte(name[i])
	}
	return b.String()
}
