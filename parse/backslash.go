package parse

import (
	"github.com/btre/btre/internal/u8"
	"github.com/btre/btre/token"
)

// parseBackslash parses the escape sequence starting at src[pos] == '\\'
// (top-level pattern context, not inside a character class). Mirrors
// parser.c's '\\' case: word anchors, the NUL-as-end-anchor alias,
// mnemonic/hex/octal escapes, "\N", shorthand classes, numbered and
// named backreferences, "\Q...\E" literal runs, and the literal-escape
// fallback.
//
// built is false only for an empty "\Q\E", which advances pos but
// produces no token.
func (p *parser) parseBackslash(pos, end int, tok *token.Token) (next int, errc ErrorCode, errPos int, built bool) {
	regex := pos + 1
	if regex >= end {
		return 0, BogusEscape, pos, true
	}

	switch p.src[regex] {
	case 'b':
		tok.Tag = token.WordAnch
		return regex + 1, NoError, 0, true
	case 'B':
		tok.Tag = token.NWordAnch
		return regex + 1, NoError, 0, true
	case '0':
		// NUL is treated as a virtual end-of-string marker throughout
		// this engine (see dotExcludedClass / the denullify pass), so a
		// bare "\0" is an anchor, not a literal or an octal escape.
		tok.Tag = token.EdgeAnch
		return regex + 1, NoError, 0, true
	}

	if val, n, ok, escErr := parseEscape(p.src, regex); ok {
		if escErr != NoError {
			return 0, escErr, pos, true
		}
		tok.Tag = token.Literal
		tok.Literal = val
		return regex + n, NoError, 0, true
	}

	if p.src[regex] == 'N' {
		tok.Tag = token.NClass
		tok.Class = dotExcludedClass()
		return regex + 1, NoError, 0, true
	}

	if cls, negate, ok := parseShorthand(p.src[regex]); ok {
		tok.Class = cls
		if negate {
			tok.Tag = token.NClass
		} else {
			tok.Tag = token.Class
		}
		return regex + 1, NoError, 0, true
	}

	if isDigit(p.src[regex]) {
		tok.Tag = token.Reference
		tok.GroupNum = int(p.src[regex] - '0')
		return regex + 1, NoError, 0, true
	}

	if p.src[regex] == 'g' || p.src[regex] == 'k' {
		delimPos := regex + 1
		var closeDelim byte
		switch {
		case delimPos < end && p.src[delimPos] == '\'':
			closeDelim = '\''
		case delimPos < end && p.src[delimPos] == '<':
			closeDelim = '>'
		default:
			// No recognizable delimiter: treat the 'g'/'k' itself as a
			// literal character, matching original_source's fallback.
			cp, _ := u8.Decode(p.src[regex : regex+1])
			tok.Tag = token.Literal
			tok.Literal = cp
			return regex + 1, NoError, 0, true
		}
		closeIdx := -1
		for i := delimPos + 1; i < end; i++ {
			if p.src[i] == closeDelim {
				closeIdx = i
				break
			}
		}
		if closeIdx < 0 {
			cp, _ := u8.Decode(p.src[regex : regex+1])
			tok.Tag = token.Literal
			tok.Literal = cp
			return regex + 1, NoError, 0, true
		}
		ok, tooLong := isNumber(p.src, delimPos+1, closeIdx)
		switch {
		case !ok:
			tok.Tag = token.Name
			tok.GroupName = string(p.src[delimPos+1 : closeIdx])
			return closeIdx + 1, NoError, 0, true
		case tooLong:
			return 0, BadInteger, pos, true
		default:
			tok.Tag = token.Reference
			tok.GroupNum = parseInt(p.src, delimPos+1, closeIdx, 10)
			return closeIdx + 1, NoError, 0, true
		}
	}

	if p.src[regex] == 'Q' {
		litStart := regex + 1
		i := litStart
		for i < end {
			if p.src[i] == '\\' && i+1 < end && p.src[i+1] == 'E' {
				break
			}
			i++
		}
		if i == litStart && i < end {
			// "\Q\E" with nothing in between.
			return i + 2, NoError, 0, false
		}
		text := []rune(string(p.src[litStart:i]))
		tok.Tag = token.String
		tok.Text = text
		if i < end {
			return i + 2, NoError, 0, true
		}
		return i, NoError, 0, true
	}

	// Fallback: treat the escaped character as a literal.
	cp, sz := u8.Decode(p.src[regex:])
	tok.Tag = token.Literal
	tok.Literal = cp
	if sz == 0 {
		sz = 1
	}
	return regex + sz, NoError, 0, true
}
