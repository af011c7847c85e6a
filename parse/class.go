package parse

import (
	"github.com/btre/btre/internal/class"
	"github.com/btre/btre/internal/u8"
)

// parseClassBody parses the bracket expression src[begin:end+1], where
// src[begin] == '[' and src[end] == ']', following original_source's
// _parse_class state machine: literal codepoints, '-' ranges, '-['
// difference, '&&[' intersection, nested '[...]' classes (unioned in by
// default), and '\' escapes/shorthand classes.
//
// Unlike original_source, which reads a single raw byte as a class
// literal (the rest of the engine decodes full UTF-8 codepoints), this
// decodes codepoints inside classes too, so a class containing a literal
// multi-byte character behaves the same whether or not it's bracketed.
func parseClassBody(src []byte, begin, end int) (*class.Class, bool, ErrorCode) {
	cls := class.New()
	negate := false

	pos := begin + 1
	if pos < end && src[pos] == '^' {
		negate = true
		pos++
	}
	if pos >= end {
		return nil, false, EmptyClass
	}

	prevEscape := -1
	havePrevEscape := false

	for pos < end {
		switch src[pos] {
		case '&':
			havePrevEscape = false
			if isIntersectionOperator(src, pos, begin, end) {
				pos += 2
				nestEnd, errc := matchingBracket(src, pos, end)
				if errc != NoError {
					return nil, false, errc
				}
				nest, nestNeg, errc := parseClassBody(src, pos, nestEnd)
				if errc != NoError {
					return nil, false, errc
				}
				applyNested(cls, nest, nestNeg, false, true)
				pos = nestEnd + 1
			} else {
				cls.InsertCodepoint('&')
				pos++
			}

		case '-':
			if pos == begin+1 || pos == end-1 {
				cls.InsertCodepoint('-')
				pos++
				havePrevEscape = false
				break
			}
			if isDifferenceOperator(src, pos, end) {
				pos++
				nestEnd, errc := matchingBracket(src, pos, end)
				if errc != NoError {
					return nil, false, errc
				}
				nest, nestNeg, errc := parseClassBody(src, pos, nestEnd)
				if errc != NoError {
					return nil, false, errc
				}
				applyNested(cls, nest, nestNeg, true, false)
				pos = nestEnd + 1
				havePrevEscape = false
				break
			}
			var lo uint32
			if havePrevEscape {
				lo = uint32(prevEscape)
			} else {
				lo, _ = u8.Decode(src[pos-1 : pos])
			}
			var hi uint32
			if pos+1 < end && src[pos+1] == '\\' {
				val, n, ok, errc := parseEscape(src, pos+2)
				if errc != NoError {
					return nil, false, errc
				}
				if ok {
					hi = val
					pos += 2 + n
				} else {
					cp, sz := u8.Decode(src[pos+1:])
					hi = cp
					pos += 1 + sz
				}
			} else {
				cp, sz := u8.Decode(src[pos+1:])
				hi = cp
				pos += 1 + sz
			}
			if lo > hi {
				return nil, false, BadRange
			}
			cls.InsertRange(class.Range{Lo: lo, Hi: hi})
			havePrevEscape = false

		case '[':
			havePrevEscape = false
			if pos == begin+1 {
				cls.InsertCodepoint('[')
				pos++
				break
			}
			nestEnd := findClosing(src, pos, '[', ']')
			if nestEnd < 0 || nestEnd >= end {
				cls.InsertCodepoint('[')
				pos++
				break
			}
			nest, nestNeg, errc := parseClassBody(src, pos, nestEnd)
			if errc != NoError {
				return nil, false, errc
			}
			applyNested(cls, nest, nestNeg, false, false)
			pos = nestEnd + 1

		case '\\':
			pos++
			if val, n, ok, errc := parseEscape(src, pos); ok {
				if errc != NoError {
					return nil, false, errc
				}
				cls.InsertCodepoint(val)
				prevEscape, havePrevEscape = int(val), true
				pos += n
				break
			}
			if pos < end {
				if nest, nestNeg, ok := parseShorthand(src[pos]); ok {
					applyNested(cls, nest, nestNeg, false, false)
					pos++
					havePrevEscape = false
					break
				}
			}
			cp, sz := u8.Decode(src[pos:])
			cls.InsertCodepoint(cp)
			pos += sz
			havePrevEscape = false

		default:
			havePrevEscape = false
			cp, sz := u8.Decode(src[pos:])
			if sz == 0 {
				sz = 1
			}
			cls.InsertCodepoint(cp)
			pos += sz
		}
	}
	return cls, negate, NoError
}

// applyNested folds a nested bracket class into the outer class under
// construction, mirroring original_source's NestedClass macro: explicit
// intersection/difference operators take precedence; otherwise a
// negated nested class intersects (after flipping the outer negation),
// and a plain nested class unions in.
func applyNested(outer, nested *class.Class, nestedNegate, difference, intersection bool) {
	switch {
	case intersection:
		outer.Intersection(nested)
	case difference:
		outer.Difference(nested)
	case nestedNegate:
		outer.Intersection(nested)
	default:
		outer.Union(nested)
	}
}

// matchingBracket locates the closing ']' for a nested class starting at
// src[pos] == '[', and reports EmptyClass-shaped errors via findClosing
// semantics (an unterminated nested class is UnbalancedBracket).
func matchingBracket(src []byte, pos, end int) (int, ErrorCode) {
	nestEnd := findClosing(src, pos, '[', ']')
	if nestEnd < 0 || nestEnd >= end {
		return 0, UnbalancedBracket
	}
	return nestEnd, NoError
}

func isIntersectionOperator(src []byte, pos, begin, end int) bool {
	if pos+1 >= len(src) || src[pos+1] != '&' {
		return false
	}
	if pos-1 == begin {
		return false
	}
	if pos+2 < len(src) && src[pos+2] == '[' {
		closeIdx := findClosing(src, pos+2, '[', ']')
		return closeIdx >= 0 && closeIdx != end
	}
	if pos+3 < len(src) && src[pos+2] == '\\' {
		return isShorthand(src[pos+3])
	}
	return false
}

func isDifferenceOperator(src []byte, pos, end int) bool {
	if pos+1 >= len(src) {
		return false
	}
	if src[pos+1] == '[' {
		closeIdx := findClosing(src, pos+1, '[', ']')
		return closeIdx >= 0 && closeIdx != end
	}
	if pos+2 < len(src) && src[pos+1] == '\\' {
		return isShorthand(src[pos+2])
	}
	return false
}
