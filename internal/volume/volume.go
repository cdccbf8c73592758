// Package volume models the bootable volumes visible to the boot menu and
// the file access they expose.
package volume

import (
	"fmt"
	"image"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Volume is one discovered filesystem.
type Volume struct {
	Name     string
	PartName string
	PartGUID uuid.UUID
	Number   int
	Readable bool
	Root     FileSource
	Badge    image.Image
	Icon     image.Image

	Device     string
	Mountpoint string
	FSType     string
	Size       uint64
}

// DisplayName returns the label, or fsN when the volume has none.
func (v *Volume) DisplayName() string {
	if v == nil {
		return ""
	}
	if v.Name != "" {
		return v.Name
	}
	return fmt.Sprintf("fs%d", v.Number)
}

// Find resolves a volume identifier: "<N>:" picks the N-th readable volume,
// a GUID matches the partition GUID, anything else matches the label or the
// partition name without regard to case. The first match wins.
func Find(vols []*Volume, id string) (*Volume, bool) {
	if n, ok := ordinal(id); ok {
		counted := 0
		for _, v := range vols {
			if v == nil || !v.Readable {
				continue
			}
			if counted == n {
				return v, true
			}
			counted++
		}
		return nil, false
	}
	if guid, err := uuid.Parse(id); err == nil && isGUIDText(id) {
		if guid == uuid.Nil {
			return nil, false
		}
		for _, v := range vols {
			if v != nil && v.PartGUID != uuid.Nil && v.PartGUID == guid {
				return v, true
			}
		}
		return nil, false
	}
	for _, v := range vols {
		if v == nil {
			continue
		}
		if strings.EqualFold(id, v.Name) || strings.EqualFold(id, v.PartName) {
			return v, true
		}
	}
	return nil, false
}

func ordinal(id string) (int, bool) {
	if utf8.RuneCountInString(id) < 2 || !strings.HasSuffix(id, ":") {
		return 0, false
	}
	if id[0] < '0' || id[0] > '9' {
		return 0, false
	}
	end := 0
	for end < len(id) && id[end] >= '0' && id[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(id[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// isGUIDText accepts only the canonical 8-4-4-4-12 form, optionally braced;
// uuid.Parse also takes urn and bare-hex forms that are ordinary labels here.
func isGUIDText(id string) bool {
	id = strings.TrimSuffix(strings.TrimPrefix(id, "{"), "}")
	return len(id) == 36 && id[8] == '-' && id[13] == '-' && id[18] == '-' && id[23] == '-'
}
