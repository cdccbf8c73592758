package settings

import (
	"testing"

	"github.com/atomicstack/bootmenu/internal/menu"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	if s.SmallIconSize() != DefaultSmallIconSize || s.BigIconSize() != DefaultBigIconSize {
		t.Fatalf("unexpected icon sizes %v", s.IconSizes)
	}
	if s.IconSizes[IconBadge] != DefaultBigIconSize/4 {
		t.Fatalf("expected badge size %d, got %d", DefaultBigIconSize/4, s.IconSizes[IconBadge])
	}
	if !s.ScansFor('i') || s.ScansFor('b') {
		t.Fatalf("unexpected scanfor %q", string(s.ScanFor[:]))
	}
	if s.ConfigFilename != PrimaryConfig {
		t.Fatalf("expected primary config %q, got %q", PrimaryConfig, s.ConfigFilename)
	}
	found := false
	for _, tag := range s.ShowTools {
		if tag == menu.TagReboot {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected reboot in default tools: %v", s.ShowTools)
	}
}

func TestHiddenRequiresAllBits(t *testing.T) {
	s := Defaults()
	s.HideUI = HideHints | HideLabel
	if !s.Hidden(HideHints) || !s.Hidden(HideLabel) {
		t.Fatalf("expected hints and label hidden")
	}
	if s.Hidden(HideArrows) {
		t.Fatalf("arrows should be visible")
	}
	s.HideUI = HideAll
	if !s.Hidden(HideEditor) {
		t.Fatalf("expected all flags hidden")
	}
}

func TestSplitList(t *testing.T) {
	if got := SplitList(MokNames); len(got) != 3 || got[1] != "HashTool.efi" {
		t.Fatalf("unexpected split %v", got)
	}
	if SplitList("") != nil {
		t.Fatalf("expected nil for empty list")
	}
}
