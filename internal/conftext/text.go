// Package conftext turns configuration file bytes into token lines.
package conftext

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/atomicstack/bootmenu/internal/volume"
)

var (
	// ErrMissingFile reports a configuration file that does not exist.
	ErrMissingFile = errors.New("config file not found")
	// ErrRead reports a file that exists but could not be read or decoded.
	ErrRead = errors.New("config file unreadable")
)

// Encoding is the detected character encoding of a buffer.
type Encoding int

const (
	Latin1 Encoding = iota
	UTF8
	UTF16LE
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case UTF16LE:
		return "utf-16le"
	default:
		return "iso-8859-1"
	}
}

// Text is a decoded configuration buffer with a read cursor.
type Text struct {
	encoding Encoding
	runes    []rune
	pos      int
	line     int
	next     int
}

// Open detects the encoding of data and decodes it.
func Open(data []byte) (*Text, error) {
	enc, body := detect(data)
	var (
		decoded []byte
		err     error
	)
	switch enc {
	case UTF8:
		decoded = body
	case UTF16LE:
		decoded, err = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(body)
	default:
		decoded, err = charmap.ISO8859_1.NewDecoder().Bytes(body)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", enc, ErrRead, err)
	}
	return &Text{encoding: enc, runes: []rune(string(decoded)), next: 1}, nil
}

// ReadFile loads dir\name from src.
func ReadFile(src volume.FileSource, dir, name string) (*Text, error) {
	if src == nil || !src.Exists(dir, name) {
		return nil, fmt.Errorf("%s: %w", volume.JoinPath(dir, name), ErrMissingFile)
	}
	data, err := src.ReadAll(dir, name)
	if err != nil {
		if volume.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", volume.JoinPath(dir, name), ErrMissingFile)
		}
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return Open(data)
}

func detect(data []byte) (Encoding, []byte) {
	if len(data) < 4 {
		return Latin1, data
	}
	switch {
	case data[0] == 0xFF && data[1] == 0xFE:
		return UTF16LE, data[2:]
	case data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return UTF8, data[3:]
	case data[1] == 0 && data[3] == 0:
		return UTF16LE, data
	}
	return Latin1, data
}

// Encoding returns the detected encoding.
func (t *Text) Encoding() Encoding { return t.encoding }

// Line is the 1-based number of the line last returned by NextLine.
func (t *Text) Line() int { return t.line }

// NextLine returns the characters up to the next CR or LF and skips the run
// of terminators that follows.
func (t *Text) NextLine() (string, bool) {
	if t == nil || t.pos >= len(t.runes) {
		return "", false
	}
	start := t.pos
	for t.pos < len(t.runes) && !isEOL(t.runes[t.pos]) {
		t.pos++
	}
	line := string(t.runes[start:t.pos])
	t.line = t.next
	for t.pos < len(t.runes) && isEOL(t.runes[t.pos]) {
		r := t.runes[t.pos]
		if r == '\n' || (r == '\r' && (t.pos+1 >= len(t.runes) || t.runes[t.pos+1] != '\n')) {
			t.next++
		}
		t.pos++
	}
	return line, true
}

// NextTokenLine returns the next line holding at least one token, or nil at
// the end of the buffer.
func (t *Text) NextTokenLine() []string {
	quoted := false
	for {
		line, ok := t.NextLine()
		if !ok {
			return nil
		}
		var tokens []string
		tokens, quoted = Tokenize(line, quoted)
		if len(tokens) > 0 {
			return tokens
		}
	}
}

func isEOL(r rune) bool { return r == '\r' || r == '\n' }
