package matcher

import (
	"bytes"

	"github.com/btre/btre/internal/u8"
)

// cont is a match continuation: "given that the pattern matched up to
// pos with these captures, is the rest of the overall search satisfied?"
// Every atom/core match routine takes one and calls it with the
// position and captures that result from its own match, propagating
// failure by returning false so the caller can try its next
// alternative — the same role bts_t's pushed frames play in
// original_source, rendered as ordinary Go recursion instead of an
// explicit heap stack (see the package doc comment).
type cont func(pos int, caps Captures) bool

type matchState struct {
	input []byte
}

// MatchAt attempts to match c anchored exactly at start, the way
// core_match is invoked for a single candidate start offset.
// numGroups is the number of capturing groups in the whole pattern
// (group 0, the overall match, is implicit and always present).
func (c *Core) MatchAt(input []byte, start, numGroups int) (Captures, bool) {
	m := &matchState{input: input}
	caps := make(Captures, numGroups+1)
	for i := range caps {
		caps[i] = NoSpan
	}
	var result Captures
	ok := m.matchCore(c, start, caps, func(end int, finalCaps Captures) bool {
		result = finalCaps.Clone()
		result[0] = Span{Begin: start, End: end}
		return true
	})
	if !ok {
		return nil, false
	}
	return result, true
}

// matchCore tries each branch of core in order (the alternation's
// leftmost-first, not longest-match, semantics) until one lets k
// succeed.
func (m *matchState) matchCore(core *Core, pos int, caps Captures, k cont) bool {
	for i := range core.Branches {
		if m.matchSeq(core.Branches[i], 0, pos, caps, k) {
			return true
		}
	}
	return false
}

// matchSeq matches atoms[i:] in order, threading the continuation
// through each atom so a later atom's failure can trigger backtracking
// into an earlier atom's alternatives.
func (m *matchState) matchSeq(atoms []Atom, i, pos int, caps Captures, k cont) bool {
	if i == len(atoms) {
		return k(pos, caps)
	}
	atom := &atoms[i]
	rest := func(newPos int, newCaps Captures) bool {
		return m.matchSeq(atoms, i+1, newPos, newCaps, k)
	}
	if atom.unquantified() {
		return m.matchOne(atom, pos, caps, rest)
	}
	return m.matchRepeat(atom, pos, caps, rest)
}

// matchOne performs exactly one application of atom's kind-specific
// match, without considering repetition.
func (m *matchState) matchOne(atom *Atom, pos int, caps Captures, k cont) bool {
	switch atom.Kind {
	case KClass:
		return m.matchClass(atom, pos, caps, k)
	case KString:
		return m.matchString(atom, pos, caps, k)
	case KGroup:
		return m.matchGroup(atom, pos, caps, k)
	case KAtomic:
		return m.matchAtomic(atom, pos, caps, k)
	case KLookAhead:
		return m.matchLookAhead(atom, pos, caps, k, false)
	case KNLookAhead:
		return m.matchLookAhead(atom, pos, caps, k, true)
	case KReference:
		return m.matchReference(atom, pos, caps, k)
	case KSubroutine:
		return m.matchSubroutine(atom, pos, caps, k)
	case KWordAnch:
		return m.matchWordAnchor(pos, caps, k, false)
	case KNWordAnch:
		return m.matchWordAnchor(pos, caps, k, true)
	case KStartAnch:
		if pos == 0 {
			return k(pos, caps)
		}
		return false
	case KEdgeAnch:
		if pos == len(m.input) {
			return k(pos, caps)
		}
		return false
	case KEmpty:
		return k(pos, caps)
	default:
		return false
	}
}

func (m *matchState) matchClass(atom *Atom, pos int, caps Captures, k cont) bool {
	if pos >= len(m.input) {
		return false
	}
	cp, n := u8.Decode(m.input[pos:])
	if n == 0 {
		return false
	}
	in := atom.Class.Search(cp)
	if in == atom.Invert {
		return false
	}
	return k(pos+n, caps)
}

func (m *matchState) matchString(atom *Atom, pos int, caps Captures, k cont) bool {
	end := pos + len(atom.String)
	if end > len(m.input) {
		return false
	}
	if !bytes.Equal(m.input[pos:end], atom.String) {
		return false
	}
	return k(end, caps)
}

func (m *matchState) matchGroup(atom *Atom, pos int, caps Captures, k cont) bool {
	return m.matchCore(atom.Nested, pos, caps, func(end int, innerCaps Captures) bool {
		finalCaps := innerCaps
		if atom.Capturing {
			finalCaps = innerCaps.Clone()
			finalCaps[atom.GroupNum] = Span{Begin: pos, End: end}
		}
		return k(end, finalCaps)
	})
}

// matchAtomic locks in the first internal solution the nested core
// finds (an identity continuation that stops the inner search as soon
// as it succeeds once) and never backtracks into it again, even if k
// later fails.
func (m *matchState) matchAtomic(atom *Atom, pos int, caps Captures, k cont) bool {
	found := false
	var lockEnd int
	var lockCaps Captures
	m.matchCore(atom.Nested, pos, caps, func(end int, c Captures) bool {
		found, lockEnd, lockCaps = true, end, c
		return true
	})
	if !found {
		return false
	}
	return k(lockEnd, lockCaps)
}

// matchLookAhead is zero-width: it only tests whether the nested core
// can match starting at pos, then continues the outer match from pos
// unchanged (negate flips success/failure).
func (m *matchState) matchLookAhead(atom *Atom, pos int, caps Captures, k cont, negate bool) bool {
	found := false
	lockCaps := caps
	m.matchCore(atom.Nested, pos, caps, func(end int, c Captures) bool {
		found, lockCaps = true, c
		return true
	})
	if found == negate {
		return false
	}
	return k(pos, lockCaps)
}

// matchReference matches the literal text a previously captured group
// spans. An unset group (never captured on this path) fails to match,
// per shre.h's "if a backreference refers to a group that hasn't been
// captured yet, it won't match anything."
func (m *matchState) matchReference(atom *Atom, pos int, caps Captures, k cont) bool {
	if atom.GroupNum >= len(caps) {
		return false
	}
	span := caps[atom.GroupNum]
	if span.Unset() {
		return false
	}
	text := m.input[span.Begin:span.End]
	end := pos + len(text)
	if end > len(m.input) {
		return false
	}
	if !bytes.Equal(m.input[pos:end], text) {
		return false
	}
	return k(end, caps)
}

// matchSubroutine calls back into the target group's core, operating on
// a throwaway copy of captures; whatever that call mutates is discarded
// once it returns, so captures made outside the subroutine call are
// unaffected by a (possibly recursive) trip through it — the Go
// rendering of bts_t's saved "nest" range_t copy.
func (m *matchState) matchSubroutine(atom *Atom, pos int, caps Captures, k cont) bool {
	inner := caps.Clone()
	return m.matchCore(atom.Nested, pos, inner, func(end int, _ Captures) bool {
		return k(end, caps)
	})
}

func (m *matchState) matchWordAnchor(pos int, caps Captures, k cont, negate bool) bool {
	atBoundary := isWordByte(m.input, pos-1) != isWordByte(m.input, pos)
	if atBoundary == negate {
		return false
	}
	return k(pos, caps)
}
