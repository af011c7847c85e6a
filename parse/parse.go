// Package parse turns a pattern string into a token.List, catching every
// syntax error along the way. Grounded throughout on original_source's
// parser.c: the recursive-descent structure (_parse_regex / _parse_class),
// the find_closing balanced scanner, and the post-parse weedeat/badref
// passes are all ported from there into idiomatic Go.
package parse

import (
	"github.com/btre/btre/internal/class"
	"github.com/btre/btre/internal/u8"
	"github.com/btre/btre/token"
)

// Parse compiles a pattern string into a token list and a name table
// mapping named groups to their group numbers. On a syntax error it
// returns a *SyntaxError.
// Parse compiles pattern into a token list ready for compile.Build, along
// with the name-to-group-number table named groups registered and the
// total number of capturing groups (group 0, the whole match, is not
// counted).
func Parse(pattern string) (*token.List, map[string]int, int, error) {
	p := &parser{src: []byte(pattern), nextGroup: 1, names: map[string]int{}}
	list, errc, pos := p.parseRegex(0, len(p.src), true)
	if errc != NoError {
		return nil, nil, 0, &SyntaxError{Code: errc, Pos: pos, Pattern: pattern}
	}
	return list, p.names, p.nextGroup - 1, nil
}

type parser struct {
	src       []byte
	nextGroup int
	names     map[string]int
}

// parseRegex parses the sub-pattern src[pos:end] (end is exclusive, and
// is either the index of a group's closing ')' or len(src) at the top
// level). Mirrors _parse_regex's single do/while dispatch over the next
// pattern character.
func (p *parser) parseRegex(pos, end int, topLevel bool) (*token.List, ErrorCode, int) {
	list := token.NewList()

	if pos == end {
		list.PushBack(token.Token{Tag: token.Empty})
		return list, NoError, pos
	}

	// A quantifier with nothing preceding it at the very start of this
	// sub-pattern is always an error.
	if b := p.src[pos]; b == '*' || b == '?' || b == '+' {
		return nil, NothingToRepeat, pos
	}
	if p.src[pos] == '{' {
		if _, _, next := parseRangeSpecEnd(p.src, pos, end); next != pos {
			return nil, NothingToRepeat, pos
		}
	}

	var prevTag token.Tag
	havePrev := false

	for pos < end {
		startPos := pos
		tok := token.Token{}

		switch p.src[pos] {
		case '|':
			pos++
			tok.Tag = token.Alternator

		case '[':
			closeIdx := findClosing(p.src, pos, '[', ']')
			if closeIdx < 0 {
				return nil, UnbalancedBracket, startPos
			}
			cls, negate, errc := parseClassBody(p.src, pos, closeIdx)
			if errc != NoError {
				return nil, errc, startPos
			}
			tok.Class = cls
			if negate {
				tok.Tag = token.NClass
			} else {
				tok.Tag = token.Class
			}
			pos = closeIdx + 1

		case '.':
			pos++
			tok.Tag = token.NClass
			tok.Class = dotExcludedClass()

		case '^':
			pos++
			tok.Tag = token.StartAnch

		case '$':
			pos++
			tok.Tag = token.EdgeAnch

		case ')':
			return nil, UnbalancedParen, startPos

		case '(':
			next, errc, errPos := p.parseGroup(pos, end, &tok)
			if errc != NoError {
				return nil, errc, errPos
			}
			pos = next

		case '?':
			pos++
			switch {
			case havePrev && rangeApplicable(prevTag):
				tok.Tag = token.Range
				tok.Span = token.RangeSpan{Begin: 0, End: 1}
			case havePrev && lazyApplicable(prevTag):
				tok.Tag = token.Lazy
			default:
				return nil, NothingToRepeat, startPos
			}

		case '+':
			pos++
			switch {
			case havePrev && rangeApplicable(prevTag):
				tok.Tag = token.Range
				tok.Span = token.RangeSpan{Begin: 1, End: -1}
			case havePrev && lazyApplicable(prevTag):
				tok.Tag = token.Possessive
			default:
				return nil, NothingToRepeat, startPos
			}

		case '*':
			if !havePrev || !rangeApplicable(prevTag) {
				return nil, NothingToRepeat, startPos
			}
			pos++
			tok.Tag = token.Range
			tok.Span = token.RangeSpan{Begin: 0, End: -1}

		case '{':
			a, b, next := parseRangeSpecEnd(p.src, pos, end)
			if next == pos {
				cp, sz := u8.Decode(p.src[pos:])
				tok.Tag = token.Literal
				tok.Literal = cp
				pos += sz
				break
			}
			if !havePrev || !rangeApplicable(prevTag) {
				return nil, NothingToRepeat, startPos
			}
			if b >= 0 && a > b {
				return nil, BadQuantifier, startPos
			}
			tok.Tag = token.Range
			tok.Span = token.RangeSpan{Begin: a, End: b}
			pos = next

		case '\\':
			next, errc, errPos, built := p.parseBackslash(pos, end, &tok)
			if errc != NoError {
				return nil, errc, errPos
			}
			if !built {
				// \Q...\E already pushed its own STRING token; nothing
				// further to append this iteration.
				pos = next
				continue
			}
			pos = next

		default:
			cp, sz := u8.Decode(p.src[pos:])
			tok.Tag = token.Literal
			tok.Literal = cp
			if sz == 0 {
				sz = 1
			}
			pos += sz
		}

		list.PushBack(tok)
		prevTag = tok.Tag
		havePrev = true
	}

	if topLevel {
		if errc := p.badrefCheck(list, p.nextGroup); errc != NoError {
			return nil, errc, 0
		}
	}
	weedeat(list)
	return list, NoError, 0
}

// dotExcludedClass builds the class '.' and '\N' both use: anything
// except NUL, CR, LF, FF, or VT. original_source's spec.md prose only
// mentions '\n'; parser.c itself excludes all five, carried through here.
func dotExcludedClass() *class.Class {
	c := class.New()
	for _, cp := range []uint32{0, '\r', '\n', '\f', '\v'} {
		c.InsertCodepoint(cp)
	}
	return c
}

func rangeApplicable(tag token.Tag) bool {
	switch tag {
	case token.Literal, token.Class, token.NClass, token.Group,
		token.Reference, token.Atomic, token.Subroutine:
		return true
	}
	return false
}

func lazyApplicable(tag token.Tag) bool {
	return tag == token.Range
}

// parseRangeSpecEnd parses "{n,m}" / "{n,}" / "{n}" starting at
// src[pos] == '{', returning the bounds and the index just past the
// closing '}'. Returns ok=false (signalled via a sentinel next == pos)
// if the shape isn't a valid quantifier, so callers can fall back to
// treating '{' as a literal.
func parseRangeSpecEnd(src []byte, pos, end int) (a, b, next int) {
	closeIdx := -1
	commaIdx := -1
	for i := pos + 1; i < end; i++ {
		if src[i] == '}' && closeIdx < 0 {
			closeIdx = i
			break
		}
	}
	for i := pos + 1; i < end; i++ {
		if src[i] == ',' {
			commaIdx = i
			break
		}
	}
	if closeIdx < 0 || pos+1 == commaIdx {
		return -1, -1, pos
	}
	if commaIdx >= 0 && commaIdx < closeIdx {
		ok, tooLong := isNumber(src, pos+1, commaIdx)
		if !ok || tooLong {
			return -1, -1, pos
		}
		a = parseInt(src, pos+1, commaIdx, 10)
		if commaIdx+1 == closeIdx {
			return a, -1, closeIdx + 1
		}
		ok, tooLong = isNumber(src, commaIdx+1, closeIdx)
		if !ok || tooLong {
			return -1, -1, pos
		}
		b = parseInt(src, commaIdx+1, closeIdx, 10)
		return a, b, closeIdx + 1
	}
	ok, tooLong := isNumber(src, pos+1, closeIdx)
	if !ok || tooLong {
		return -1, -1, pos
	}
	b = parseInt(src, pos+1, closeIdx, 10)
	return b, b, closeIdx + 1
}
