package conftext

import (
	"errors"
	"reflect"
	"testing"

	"github.com/atomicstack/bootmenu/internal/volume"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name   string
		line   string
		want   []string
		quoted bool
	}{
		{name: "separators", line: `foo = "a b" c,d`, want: []string{"foo", "a b", "c", "d"}},
		{name: "doubled quotes", line: `"he said ""hi"""`, want: []string{`he said "hi"`}},
		{name: "comment", line: "timeout 5 # seconds", want: []string{"timeout", "5"}},
		{name: "comment only", line: "   # nothing here", want: nil},
		{name: "slashes", line: "loader /EFI/arch/vmlinuz", want: []string{"loader", `\EFI\arch\vmlinuz`}},
		{name: "quoted slashes kept", line: `options "root=/dev/sda1 ro"`, want: []string{"options", "root=/dev/sda1 ro"}},
		{name: "quoted hash", line: `title "a # b"`, want: []string{"title", "a # b"}},
		{name: "empty quoted token", line: `options ""`, want: []string{"options", ""}},
		{name: "tabs", line: "\tscanfor\tinternal,external", want: []string{"scanfor", "internal", "external"}},
		{name: "unterminated", line: `options "ro quiet`, want: []string{"options", "ro quiet"}, quoted: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, quoted := Tokenize(tc.line, false)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("tokens = %q, want %q", got, tc.want)
			}
			if quoted != tc.quoted {
				t.Fatalf("quoted = %v, want %v", quoted, tc.quoted)
			}
		})
	}
}

func TestTokenizeCarriedQuote(t *testing.T) {
	got, quoted := Tokenize(`rest of it" tail`, true)
	want := []string{"rest of it", "tail"}
	if !reflect.DeepEqual(got, want) || quoted {
		t.Fatalf("tokens = %q quoted=%v", got, quoted)
	}
}

func TestNextLineCollapsesTerminators(t *testing.T) {
	text, err := Open([]byte("one\r\n\r\ntwo\nthree"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var lines []string
	var numbers []int
	for {
		line, ok := text.NextLine()
		if !ok {
			break
		}
		lines = append(lines, line)
		numbers = append(numbers, text.Line())
	}
	if !reflect.DeepEqual(lines, []string{"one", "two", "three"}) {
		t.Fatalf("lines = %q", lines)
	}
	if !reflect.DeepEqual(numbers, []int{1, 3, 4}) {
		t.Fatalf("line numbers = %v", numbers)
	}
}

func TestNextTokenLineSkipsBlankLines(t *testing.T) {
	text, err := Open([]byte("\n# comment\n\ntimeout 20\n  \nmenuentry \"Arch Linux\" {\n"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	first := text.NextTokenLine()
	if !reflect.DeepEqual(first, []string{"timeout", "20"}) {
		t.Fatalf("first = %q", first)
	}
	second := text.NextTokenLine()
	if !reflect.DeepEqual(second, []string{"menuentry", "Arch Linux", "{"}) {
		t.Fatalf("second = %q", second)
	}
	if text.NextTokenLine() != nil {
		t.Fatalf("expected end of buffer")
	}
}

func TestEncodingDetection(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		enc  Encoding
		line string
	}{
		{name: "latin1", data: []byte("caf\xe9 x"), enc: Latin1, line: "café x"},
		{name: "utf8 bom", data: []byte("\xef\xbb\xbfcafé"), enc: UTF8, line: "café"},
		{name: "utf16 bom", data: []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, enc: UTF16LE, line: "hi"},
		{name: "utf16 heuristic", data: []byte{'o', 0, 'k', 0}, enc: UTF16LE, line: "ok"},
		{name: "short buffer", data: []byte{0xFF, 0xFE, 'a'}, enc: Latin1, line: "ÿþa"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text, err := Open(tc.data)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			if text.Encoding() != tc.enc {
				t.Fatalf("encoding = %v, want %v", text.Encoding(), tc.enc)
			}
			line, _ := text.NextLine()
			if line != tc.line {
				t.Fatalf("line = %q, want %q", line, tc.line)
			}
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	src := volume.MemSource{}
	src.Put(`\EFI\refind\refind.conf`, "timeout 5\n")

	if _, err := ReadFile(src, `\EFI\refind`, "absent.conf"); !errors.Is(err, ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
	text, err := ReadFile(src, `\EFI\refind`, "refind.conf")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := text.NextTokenLine(); !reflect.DeepEqual(got, []string{"timeout", "5"}) {
		t.Fatalf("tokens = %q", got)
	}
}
