package parse

import (
	"github.com/btre/btre/internal/class"
	"github.com/btre/btre/token"
)

func newSingletonClass(cp uint32) *class.Class {
	c := class.New()
	c.InsertCodepoint(cp)
	return c
}

// weedeat performs the post-parse normalization pass original_source
// calls weedeat: combining runs of literal tokens into STRING tokens,
// converting possessive quantifiers into atomic groups, promoting bare
// literals to single-codepoint classes, and denullifying classes that
// match NUL (see dotExcludedClass's doc comment for why NUL is special
// in this engine). Recurses into every nested Group/Atomic/LookAhead/
// NLookAhead body.
func weedeat(list *token.List) {
	for i := 0; i < list.Len(); i++ {
		tok := list.At(i)
		switch tok.Tag {
		case token.Group, token.Atomic, token.LookAhead, token.NLookAhead:
			weedeat(tok.Group)

		case token.Class, token.NClass:
			if needDenullify(tok) {
				list.Set(i, denullify(tok))
			}

		case token.Possessive:
			// Converts "(...)*+" into "(?>(...)*)": the token two back is
			// the quantified atom, one back is the RANGE, and this token
			// becomes an ATOMIC group wrapping both.
			rangeIdx := i - 1
			atomIdx := i - 2
			body := list.Slice(atomIdx, i) // [atom, range)
			list.RemoveAt(i)
			list.RemoveAt(rangeIdx)
			list.RemoveAt(atomIdx)
			list.Insert(atomIdx, token.Token{Tag: token.Atomic, Group: body})
			i = atomIdx

		case token.Literal:
			if isPartOfString(list, i) {
				j := stringifyRun(list, i)
				i = j
			} else {
				list.Set(i, literalToClass(tok))
			}
		}
	}
}

// isPartOfString reports whether the literal at index i should merge
// into a STRING run: it must not be immediately followed by a RANGE
// token (a quantified literal needs its own CLASS token to quantify).
func isPartOfString(list *token.List, i int) bool {
	if i+1 < list.Len() && list.At(i+1).Tag == token.Range {
		return false
	}
	return true
}

// stringifyRun collapses list[i:] while each token is a mergeable
// literal, replacing the run with one STRING token. Returns the index of
// the inserted STRING token.
func stringifyRun(list *token.List, i int) int {
	end := i
	for end+1 < list.Len() && list.At(end+1).Tag == token.Literal && isPartOfString(list, end+1) {
		end++
	}
	var text []rune
	for k := i; k <= end; k++ {
		text = append(text, rune(list.At(k).Literal))
	}
	for k := end; k >= i; k-- {
		list.RemoveAt(k)
	}
	list.Insert(i, token.Token{Tag: token.String, Text: text})
	return i
}

func literalToClass(tok token.Token) token.Token {
	cls := newSingletonClass(tok.Literal)
	return token.Token{Tag: token.Class, Class: cls}
}

func needDenullify(tok token.Token) bool {
	if tok.Tag == token.Class {
		return tok.Class.Search(0)
	}
	return !tok.Class.Search(0)
}

// denullify rewrites a class matching NUL into "(?:[...]|$)", so NUL in
// the input is always treated as end-of-string rather than a literal
// match, consistent with dotExcludedClass and the \0-as-anchor escape.
func denullify(tok token.Token) token.Token {
	cls := tok.Class.Clone()
	if tok.Tag == token.Class {
		cls.DeleteCodepoint(0)
	} else {
		cls.InsertCodepoint(0)
	}
	group := token.NewList()
	group.PushBack(token.Token{Tag: token.Class, Class: cls})
	group.PushBack(token.Token{Tag: token.Alternator})
	group.PushBack(token.Token{Tag: token.EdgeAnch})
	return token.Token{Tag: token.Group, Capturing: false, Group: group}
}
