package menu

import (
	"strings"
	"unicode/utf8"
)

// FindShortcut resolves a comma-delimited shortcut specification against the
// screen's entries. A single-character element matches an entry's shortcut
// digit or letter (letters are upper-cased first); a longer element matches
// the first entry whose title contains it, ignoring case. The first match
// across all elements wins; -1 means no match.
func FindShortcut(screen *Screen, spec string) int {
	if screen == nil || spec == "" {
		return -1
	}
	for _, part := range strings.Split(spec, ",") {
		switch n := utf8.RuneCountInString(part); {
		case n == 1:
			r, _ := utf8.DecodeRuneInString(part)
			if r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
			if r == 0 {
				continue
			}
			for i, e := range screen.Entries {
				if e.ShortcutDigit == r || e.ShortcutLetter == r {
					return i
				}
			}
		case n > 1:
			needle := strings.ToLower(part)
			for i, e := range screen.Entries {
				if strings.Contains(strings.ToLower(e.Title), needle) {
					return i
				}
			}
		}
	}
	return -1
}
