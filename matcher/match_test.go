package matcher

import (
	"testing"

	"github.com/btre/btre/internal/class"
	"github.com/stretchr/testify/require"
)

func classAtom(lo, hi uint32, rep0, rep1 int, greedy bool) Atom {
	c := class.New()
	c.InsertRange(class.Range{Lo: lo, Hi: hi})
	return Atom{Kind: KClass, Class: c, RepMin: rep0, RepMax: rep1, Greedy: greedy}
}

func litAtom(s string) Atom {
	return Atom{Kind: KString, String: []byte(s), RepMin: 1, RepMax: 1, Greedy: true}
}

func TestMatchStringLiteral(t *testing.T) {
	core := &Core{Branches: [][]Atom{{litAtom("hello")}}}
	caps, ok := core.MatchAt([]byte("hello world"), 0, 0)
	require.True(t, ok)
	require.Equal(t, Span{0, 5}, caps[0])
}

func TestMatchAlternation(t *testing.T) {
	core := &Core{Branches: [][]Atom{{litAtom("cat")}, {litAtom("dog")}}}
	_, ok := core.MatchAt([]byte("dog"), 0, 0)
	require.True(t, ok)
	_, ok = core.MatchAt([]byte("fish"), 0, 0)
	require.False(t, ok)
}

func TestMatchGreedyQuantifier(t *testing.T) {
	// a{1,3} against "aaaa" starting at 0 should consume 3 a's.
	core := &Core{Branches: [][]Atom{{classAtom('a', 'a', 1, 3, true)}}}
	caps, ok := core.MatchAt([]byte("aaaa"), 0, 0)
	require.True(t, ok)
	require.Equal(t, Span{0, 3}, caps[0])
}

func TestMatchLazyQuantifier(t *testing.T) {
	core := &Core{Branches: [][]Atom{{classAtom('a', 'a', 0, -1, false)}}}
	caps, ok := core.MatchAt([]byte("aaaa"), 0, 0)
	require.True(t, ok)
	require.Equal(t, Span{0, 0}, caps[0])
}

func TestMatchGreedyBacktracks(t *testing.T) {
	// a* followed by "ab" against "aaab": a* must give back one 'a' so
	// the literal "ab" can match the tail.
	core := &Core{Branches: [][]Atom{{
		classAtom('a', 'a', 0, -1, true),
		litAtom("ab"),
	}}}
	caps, ok := core.MatchAt([]byte("aaab"), 0, 0)
	require.True(t, ok)
	require.Equal(t, Span{0, 4}, caps[0])
}

func TestMatchCapturingGroup(t *testing.T) {
	inner := &Core{Branches: [][]Atom{{classAtom('a', 'z', 1, -1, true)}}}
	core := &Core{Branches: [][]Atom{{
		{Kind: KGroup, Nested: inner, Capturing: true, GroupNum: 1, RepMin: 1, RepMax: 1, Greedy: true},
	}}}
	caps, ok := core.MatchAt([]byte("hello"), 0, 1)
	require.True(t, ok)
	require.Equal(t, Span{0, 5}, caps[0])
	require.Equal(t, Span{0, 5}, caps[1])
}

func TestMatchBackreference(t *testing.T) {
	// (a+)\1 against "aaaa" should capture "aa" then require "aa" again.
	inner := &Core{Branches: [][]Atom{{classAtom('a', 'a', 1, -1, true)}}}
	core := &Core{Branches: [][]Atom{{
		{Kind: KGroup, Nested: inner, Capturing: true, GroupNum: 1, RepMin: 1, RepMax: 1, Greedy: true},
		{Kind: KReference, GroupNum: 1, RepMin: 1, RepMax: 1, Greedy: true},
	}}}
	caps, ok := core.MatchAt([]byte("aaaa"), 0, 1)
	require.True(t, ok)
	require.Equal(t, Span{0, 2}, caps[1])
	require.Equal(t, Span{0, 4}, caps[0])
}

func TestMatchBackreferenceUnsetFails(t *testing.T) {
	core := &Core{Branches: [][]Atom{{
		{Kind: KReference, GroupNum: 1, RepMin: 1, RepMax: 1, Greedy: true},
	}}}
	_, ok := core.MatchAt([]byte("aaaa"), 0, 1)
	require.False(t, ok)
}

func TestMatchAtomicNoBacktrack(t *testing.T) {
	// (?>a+)a against "aaaa": the atomic group takes all four a's and
	// never gives any back, so the trailing literal "a" has nothing left.
	inner := &Core{Branches: [][]Atom{{classAtom('a', 'a', 1, -1, true)}}}
	core := &Core{Branches: [][]Atom{{
		{Kind: KAtomic, Nested: inner, RepMin: 1, RepMax: 1, Greedy: true},
		litAtom("a"),
	}}}
	_, ok := core.MatchAt([]byte("aaaa"), 0, 0)
	require.False(t, ok)
}

func TestMatchPositiveLookAhead(t *testing.T) {
	// "a" followed by (?=b) then "b": lookahead doesn't consume input.
	la := &Core{Branches: [][]Atom{{litAtom("b")}}}
	core := &Core{Branches: [][]Atom{{
		litAtom("a"),
		{Kind: KLookAhead, Nested: la, RepMin: 1, RepMax: 1, Greedy: true},
		litAtom("b"),
	}}}
	caps, ok := core.MatchAt([]byte("ab"), 0, 0)
	require.True(t, ok)
	require.Equal(t, Span{0, 2}, caps[0])
}

func TestMatchNegativeLookAheadRejects(t *testing.T) {
	la := &Core{Branches: [][]Atom{{litAtom("b")}}}
	core := &Core{Branches: [][]Atom{{
		litAtom("a"),
		{Kind: KNLookAhead, Nested: la, RepMin: 1, RepMax: 1, Greedy: true},
	}}}
	_, ok := core.MatchAt([]byte("ab"), 0, 0)
	require.False(t, ok)
	caps, ok := core.MatchAt([]byte("ac"), 0, 0)
	require.True(t, ok)
	require.Equal(t, Span{0, 1}, caps[0])
}

func TestMatchWordAnchor(t *testing.T) {
	core := &Core{Branches: [][]Atom{{
		{Kind: KWordAnch, RepMin: 1, RepMax: 1, Greedy: true},
		litAtom("cat"),
	}}}
	_, ok := core.MatchAt([]byte("cat"), 0, 0)
	require.True(t, ok)
	_, ok = core.MatchAt([]byte(" cat"), 1, 0)
	require.True(t, ok)
}

func TestMatchSubroutineRestoresCaptures(t *testing.T) {
	// Group 1 matches "a"; a subroutine call to group 1 matches another
	// "a" but must not leave group 1's capture changed afterward.
	g1 := &Core{Branches: [][]Atom{{litAtom("a")}}}
	core := &Core{Branches: [][]Atom{{
		{Kind: KGroup, Nested: g1, Capturing: true, GroupNum: 1, RepMin: 1, RepMax: 1, Greedy: true},
		{Kind: KSubroutine, Nested: g1, GroupNum: 1, RepMin: 1, RepMax: 1, Greedy: true},
	}}}
	caps, ok := core.MatchAt([]byte("aa"), 0, 1)
	require.True(t, ok)
	require.Equal(t, Span{0, 1}, caps[1])
	require.Equal(t, Span{0, 2}, caps[0])
}
