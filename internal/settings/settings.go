// Package settings holds the boot-session configuration record that the
// config parser mutates and the menu loop reads.
package settings

import (
	"strings"

	"github.com/atomicstack/bootmenu/internal/menu"
)

// Unset is the sentinel stored by integer directives given the literal -1.
const Unset = -1

// HideFlag is a bit in the hideui mask.
type HideFlag uint

const (
	HideBanner HideFlag = 1 << iota
	HideLabel
	HideSingleUser
	HideHWTest
	HideArrows
	HideHints
	HideEditor
	HideSafeMode

	HideNone HideFlag = 0
	HideAll  HideFlag = 0xffff
)

// GraphicsFor is the use_graphics_for bitmask.
type GraphicsFor uint

const (
	GraphicsForOSX     GraphicsFor = 1
	GraphicsForLinux   GraphicsFor = 2
	GraphicsForELILO   GraphicsFor = 4
	GraphicsForGRUB    GraphicsFor = 8
	GraphicsForWindows GraphicsFor = 16
)

// BannerScale selects how the banner image is fitted.
type BannerScale int

const (
	BannerNoScale BannerScale = iota
	BannerFillScreen
)

// Icon size slots.
const (
	IconBadge = iota
	IconSmall
	IconBig
)

const (
	PrimaryConfig        = "refind.conf"
	DefaultIconsDir      = "icons"
	AlsoScanDirs         = "boot"
	DontScanVolumes      = "LRS_ESP"
	DontScanFiles        = "shim.efi,shim-fedora.efi,PreLoader.efi,TextMode.efi,ebounce.efi,GraphicsConsole.efi"
	MokNames             = "MokManager.efi,HashTool.efi,HashTool-signed.efi"
	MokLocations         = `\,EFI\tools,EFI\fedora,EFI\redhat,EFI\ubuntu,EFI\suse,EFI\opensuse,EFI\altlinux`
	MemtestLocations     = `EFI\tools,EFI\tools\memtest86,EFI\tools\memtest,EFI\memtest86,EFI\memtest`
	WindowsRecoveryFiles = `EFI\Microsoft\Boot\LrsBootmgr.efi`
	LinuxOptionsFiles    = "refind_linux.conf,refind-linux.conf"

	DefaultSmallIconSize = 48
	DefaultBigIconSize   = 128
	MinIconSize          = 32

	NumScanOptions = 10
	LastMinute     = 23*60 + 59
)

// Settings is the process-wide configuration for one boot session.
type Settings struct {
	ConfigFilename string

	TextOnly       bool
	ScanAllLinux   bool
	DeepLegacyScan bool

	RequestedScreenWidth  int
	RequestedScreenHeight int
	RequestedTextMode     int
	BannerBottomEdge      int

	Timeout         int
	HideUI          HideFlag
	MaxTags         int
	GraphicsFor     GraphicsFor
	ScanDelay       int
	ScreensaverTime int

	BannerScale      BannerScale
	BannerFile       string
	Font             string
	SelectionSmall   string
	SelectionBig     string
	DefaultSelection string
	IconsDir         string
	IconSizes        [3]int

	AlsoScan             []string
	DontScanVolumes      []string
	DontScanDirs         []string
	DontScanFiles        []string
	WindowsRecoveryFiles []string
	DriverDirs           []string

	ShowTools []menu.Tag
	ScanFor   [NumScanOptions]byte
}

// Defaults returns the settings in effect before any config file is read.
func Defaults() Settings {
	s := Settings{
		ConfigFilename:    PrimaryConfig,
		ScanAllLinux:      true,
		RequestedTextMode: Unset,
		Timeout:           20,
		GraphicsFor:       GraphicsForOSX,
		BannerScale:       BannerNoScale,
		IconsDir:          DefaultIconsDir,
		IconSizes:         [3]int{DefaultBigIconSize / 4, DefaultSmallIconSize, DefaultBigIconSize},
		ShowTools: []menu.Tag{
			menu.TagShell, menu.TagAppleRecovery, menu.TagWindowsRecovery, menu.TagMokTool,
			menu.TagAbout, menu.TagShutdown, menu.TagReboot, menu.TagFirmware,
		},
	}
	copy(s.ScanFor[:], "ieom      ")
	return s
}

// Hidden reports whether every bit of flag is set in the hideui mask.
func (s *Settings) Hidden(flag HideFlag) bool {
	return s.HideUI&flag == flag
}

// UsesGraphicsFor reports whether the loader kind should start in graphics mode.
func (s *Settings) UsesGraphicsFor(kind GraphicsFor) bool {
	return s.GraphicsFor&kind != 0
}

// SmallIconSize and BigIconSize return the configured icon edge lengths.
func (s *Settings) SmallIconSize() int { return s.IconSizes[IconSmall] }
func (s *Settings) BigIconSize() int   { return s.IconSizes[IconBig] }

// ScansFor reports whether the scanfor list contains the given code.
func (s *Settings) ScansFor(code byte) bool {
	for _, c := range s.ScanFor {
		if c == code {
			return true
		}
	}
	return false
}

// SplitList splits a comma-delimited constant into its elements.
func SplitList(list string) []string {
	if list == "" {
		return nil
	}
	return strings.Split(list, ",")
}
