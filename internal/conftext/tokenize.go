package conftext

import "strings"

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == '=' || r == ','
}

// Tokenize splits one line. quoted is the quote state carried in from a
// previous line; the returned state is the one left at the end of the line.
//
// Separators are space, tab, '=' and ','. A '#' outside quotes starts a
// comment. A doubled quote inside a token yields one literal quote. Forward
// slashes outside quotes become backslashes.
func Tokenize(line string, quoted bool) ([]string, bool) {
	runes := []rune(line)
	at := func(i int) rune {
		if i < len(runes) {
			return runes[i]
		}
		return 0
	}

	var tokens []string
	p := 0
	for {
		for isSeparator(at(p)) && !quoted {
			p++
		}
		if at(p) == 0 || at(p) == '#' {
			break
		}
		if at(p) == '"' {
			quoted = !quoted
			p++
		}

		var tok strings.Builder
		for {
			c := at(p)
			if c == 0 {
				break
			}
			more := !isSeparator(c) && c != '#' || quoted
			if c == '"' {
				if at(p+1) == '"' {
					tok.WriteRune('"')
					p += 2
					continue
				}
				quoted = !quoted
				more = false
			}
			if !more {
				break
			}
			if c == '/' && !quoted {
				c = '\\'
			}
			tok.WriteRune(c)
			p++
		}

		finished := at(p) == 0 || at(p) == '#'
		tokens = append(tokens, tok.String())
		if finished {
			break
		}
		p++
	}
	return tokens, quoted
}
