package menu

import "image"

// ReturnTitle is the label of the synthetic entry that closes a submenu.
const ReturnTitle = "Return to Main Menu"

// Entry represents one selectable choice on a Screen.
type Entry struct {
	Title          string
	Tag            Tag
	Row            int
	ShortcutDigit  rune
	ShortcutLetter rune
	Image          image.Image
	Badge          image.Image
	SubScreen      *Screen
	Loader         *Loader
}

// Loader carries the boot parameters of a loader entry.
type Loader struct {
	// Title is the stanza title before it is decorated with the volume name.
	Title       string
	Path        string
	VolName     string
	Options     string
	Initrd      string
	OSType      byte
	Enabled     bool
	UseGraphics bool
}

// Clone returns a copy of the loader parameters; submenu entries start from
// their parent's values.
func (l *Loader) Clone() *Loader {
	if l == nil {
		return &Loader{Enabled: true}
	}
	c := *l
	return &c
}

// Screen is one navigable list of entries.
type Screen struct {
	Title          string
	TitleImage     image.Image
	InfoLines      []string
	Entries        []*Entry
	TimeoutSeconds int
	TimeoutText    string
	Hint1          string
	Hint2          string
}

// AddEntry appends an entry; insertion order is display order.
func (s *Screen) AddEntry(e *Entry) {
	if e == nil {
		return
	}
	s.Entries = append(s.Entries, e)
}

// AddInfoLine appends a line shown above the entries.
func (s *Screen) AddInfoLine(line string) {
	s.InfoLines = append(s.InfoLines, line)
}

// Rows returns the row assignment of every entry in display order.
func (s *Screen) Rows() []int {
	rows := make([]int, len(s.Entries))
	for i, e := range s.Entries {
		rows[i] = e.Row
	}
	return rows
}

// NewLoaderEntry returns a row-0 loader entry with enabled defaults.
func NewLoaderEntry(title string) *Entry {
	return &Entry{
		Title:  title,
		Tag:    TagLoader,
		Loader: &Loader{Title: title, Enabled: true},
	}
}

// ReturnEntry builds the entry appended to submenus.
func ReturnEntry() *Entry {
	return &Entry{Title: ReturnTitle, Tag: TagReturn}
}
