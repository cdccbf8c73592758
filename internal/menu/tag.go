package menu

// Tag identifies what an entry does when chosen.
type Tag int

const (
	TagNone Tag = iota
	TagAbout
	TagReboot
	TagShutdown
	TagTool
	TagLoader
	TagLegacy
	TagExit
	TagShell
	TagGPTSync
	TagLegacyUEFI
	TagAppleRecovery
	TagWindowsRecovery
	TagMokTool
	TagFirmware
	TagMemtest
	TagGdisk
)

// NumTools bounds the number of slots in the showtools list.
const NumTools = 17

// TagReturn marks the synthetic "return to main menu" entry.
const TagReturn Tag = 99

var tagNames = map[Tag]string{
	TagNone:            "none",
	TagAbout:           "about",
	TagReboot:          "reboot",
	TagShutdown:        "shutdown",
	TagTool:            "tool",
	TagLoader:          "loader",
	TagLegacy:          "legacy",
	TagExit:            "exit",
	TagShell:           "shell",
	TagGPTSync:         "gptsync",
	TagLegacyUEFI:      "legacy_uefi",
	TagAppleRecovery:   "apple_recovery",
	TagWindowsRecovery: "windows_recovery",
	TagMokTool:         "mok_tool",
	TagFirmware:        "firmware",
	TagMemtest:         "memtest",
	TagGdisk:           "gdisk",
	TagReturn:          "return",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "unknown"
}

// MarshalText lets reports print tags by name.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
