package parse

import "github.com/btre/btre/internal/class"

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }

func hexValue(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}

// parseInt reads the digits in src[lo:hi] (lo inclusive, hi exclusive) in
// the given base and returns their value. original_source's parse_int
// walks from end-1 down to begin+1 — an off-by-one that silently drops
// the digit at begin+1 whenever the span is non-empty (see SPEC_FULL.md
// §8); this reads the full span instead.
func parseInt(src []byte, lo, hi, base int) int {
	n := 0
	for i := lo; i < hi; i++ {
		n = n*base + hexValue(src[i])
	}
	return n
}

// isNumber reports whether src[lo:hi] is entirely digits (decimal or hex,
// matching original_source's lenient is_number, which accepts isdigit or
// isxdigit per character — callers that need strictly decimal digits
// check isDigit themselves before calling parseInt with base 10).
// It returns ok=false for an empty span, and tooLong=true when the span
// has more than 9 characters (parse_int would overflow a 32-bit int).
func isNumber(src []byte, lo, hi int) (ok bool, tooLong bool) {
	if lo >= hi {
		return false, false
	}
	for i := lo; i < hi; i++ {
		if !isHexDigit(src[i]) {
			return false, false
		}
	}
	return true, hi-lo > 9
}

// isOctalEscape reports whether src[pos:pos+3] is three octal digits,
// the shape of a "\0dd"-style octal escape (pos is the digit right after
// the backslash).
func isOctalEscape(src []byte, pos int) bool {
	return pos+3 <= len(src) &&
		isOctalDigit(src[pos]) && isOctalDigit(src[pos+1]) && isOctalDigit(src[pos+2])
}

// parseEscape interprets the escape sequence starting at src[pos] (just
// past the backslash). It returns the escaped codepoint value, the
// number of bytes consumed, whether this was a recognized escape at all,
// and an error if the escape was malformed (bad hex digits).
func parseEscape(src []byte, pos int) (value uint32, consumed int, ok bool, err ErrorCode) {
	if isOctalEscape(src, pos) {
		v := parseInt(src, pos, pos+3, 8)
		return uint32(v), 3, true, NoError
	}
	if pos >= len(src) {
		return 0, 0, false, NoError
	}
	switch src[pos] {
	case '0':
		return 0x00, 1, true, NoError
	case 'a':
		return 0x07, 1, true, NoError
	case 'b':
		return 0x08, 1, true, NoError
	case 't':
		return 0x09, 1, true, NoError
	case 'n':
		return 0x0A, 1, true, NoError
	case 'v':
		return 0x0B, 1, true, NoError
	case 'f':
		return 0x0C, 1, true, NoError
	case 'r':
		return 0x0D, 1, true, NoError
	case 'x':
		hexStart := pos + 1
		hexEnd := pos + 3
		if hexEnd > len(src) {
			hexEnd = len(src)
		}
		ok, _ := isNumber(src, hexStart, hexEnd)
		if !ok || hexEnd-hexStart != 2 {
			return 0, 3, true, BadHexEscape
		}
		v := parseInt(src, hexStart, hexEnd, 16)
		return uint32(v), 3, true, NoError
	default:
		return 0, 0, false, NoError
	}
}

func isShorthand(b byte) bool {
	switch b {
	case 'd', 'D', 'w', 'W', 's', 'S', 'h', 'H':
		return true
	}
	return false
}

// shorthandPattern returns the literal bracket-expression text a Perl
// shorthand class expands to, matching original_source's parse_shorthand
// table exactly (including '.'-excluded classes handled elsewhere).
func shorthandPattern(b byte) (string, bool) {
	switch b {
	case 'd':
		return "[0-9]", true
	case 'D':
		return "[^0-9]", true
	case 'w':
		return "[a-zA-Z0-9_]", true
	case 'W':
		return "[^a-zA-Z0-9_]", true
	case 's':
		return "[ \t\r\n\f]", true
	case 'S':
		return "[^ \t\r\n\f]", true
	case 'h':
		return "[a-fA-F0-9]", true
	case 'H':
		return "[^a-fA-F0-9]", true
	default:
		return "", false
	}
}

// parseShorthand builds the class a Perl shorthand escape denotes.
func parseShorthand(b byte) (c *class.Class, negate bool, ok bool) {
	pat, ok := shorthandPattern(b)
	if !ok {
		return nil, false, false
	}
	cls, neg, errc := parseClassLiteral([]byte(pat))
	if errc != NoError {
		// shorthand patterns are fixed and always well-formed.
		panic("parse: built-in shorthand class failed to parse: " + pat)
	}
	return cls, neg, true
}

// parseClassLiteral parses a complete "[...]" bracket expression (used
// both for shorthand expansion and as a building block for nested
// classes).
func parseClassLiteral(src []byte) (*class.Class, bool, ErrorCode) {
	end := len(src) - 1
	return parseClassBody(src, 0, end)
}
