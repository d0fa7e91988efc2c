package main

import (
	"strings"
	"unicode"
)

// tokens scans source text into tokens on demand. The zero remainder is an
// exhausted scanner; a copy of a tokens value resumes independently from the
// same point, so a scan may be restarted by keeping the original value.
type tokens struct {
	s string
}

func scanTokens(s string) tokens { return tokens{s} }

// next returns the next token, a slice of the source, or false once no
// tokens remain.
func (ts *tokens) next() (string, bool) {
	s := strings.TrimLeftFunc(ts.s, unicode.IsSpace)
	if s == "" {
		ts.s = ""
		return "", false
	}
	var end int
	switch s[0] {
	case '"':
		if i := strings.IndexByte(s[1:], '"'); i >= 0 {
			end = i + 2
		} else {
			end = len(s)
		}
	case '[':
		end = groupEnd(s, '[', ']')
	case '{':
		end = groupEnd(s, '{', '}')
	default:
		if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
			end = i
		} else {
			end = len(s)
		}
	}
	tok := s[:end]
	ts.s = s[end:]
	return tok, true
}

// groupEnd finds the end of the group opened at s[0], counting only nested
// groups of the same kind; an unclosed group runs to the end of s.
func groupEnd(s string, open, close byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			if depth--; depth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}

// tokenize collects every token of s.
func tokenize(s string) []string {
	var toks []string
	for ts := scanTokens(s); ; {
		tok, ok := ts.next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

// unwrap strips exactly one pair of enclosing delimiters.
func unwrap(tok string, open, close byte) (string, bool) {
	if len(tok) >= 2 && tok[0] == open && tok[len(tok)-1] == close {
		return tok[1 : len(tok)-1], true
	}
	return "", false
}
