// Package matcher implements the executable matcher graph compile
// produces, and the backtracking search over it.
//
// original_source drives the search with an explicit heap-allocated
// stack (bts_t/state_t in bts.c/bts.h): each choice point pushes a frame
// recording which atom and branch to resume, the starting match count,
// and — for a frame belonging to a nested core (group, subroutine,
// lookahead) — an inner bts_t of its own plus a saved copy of the
// capture table to restore on return.
//
// This implementation renders that same state machine as Go's native
// call stack: matchSeq/matchCore recurse with an explicit continuation
// (the "rest of the pattern to satisfy") instead of managing a parallel
// heap stack by hand. Each activation record plays the role of one
// state_t push; returning false and letting control fall back to the
// caller plays the role of bts_pop. A nested core's captures-copy-and-
// restore (bts_t's "nest" field) is rendered directly as a Captures.Clone
// around a subroutine call. This is a from-scratch idiomatic Go
// structuring of the same backtracking algorithm, not a line-for-line
// port of bts.c.
package matcher

import "github.com/btre/btre/internal/class"

// MaxReps caps an unbounded repetition's effective maximum, matching
// original_source atom.h's MAXREPS.
const MaxReps = 1_000_000_000

// Span is a captured (begin, end) byte offset pair. Unset is the
// sentinel for "group did not participate in the match" (the Go
// equivalent of a NULL range_t entry).
type Span struct {
	Begin, End int
}

// Unset reports whether the span represents a group that never matched.
func (s Span) Unset() bool { return s.Begin < 0 }

// NoSpan is the sentinel unset span.
var NoSpan = Span{Begin: -1, End: -1}

// Captures is a group-capture table, indexed by group number (index 0 is
// always the whole match).
type Captures []Span

// Clone returns an independent copy, used when a subroutine call needs
// to mutate captures during its own recursive search but must restore
// the caller's captures if that search fails or returns.
func (c Captures) Clone() Captures {
	out := make(Captures, len(c))
	copy(out, c)
	return out
}

// Kind identifies what a single Atom matches.
type Kind int

const (
	KClass      Kind = iota // match one codepoint against a class (Invert negates)
	KString                 // match a fixed literal byte run
	KGroup                  // nested core; backtrackable; may capture
	KAtomic                 // nested core; first internal solution is final
	KLookAhead              // nested core; zero-width, consumes no input
	KNLookAhead             // negated zero-width lookahead
	KReference              // backreference to a previously captured group
	KSubroutine             // (re-)entrant call into another group's core
	KWordAnch               // \b
	KNWordAnch              // \B
	KStartAnch              // ^
	KEdgeAnch               // $
	KEmpty                  // matches the empty string unconditionally
)

// Atom is one matchable unit in a Core's branch, with an optional
// repetition range. Only the fields relevant to Kind are populated,
// mirroring atom_t's payload union (atom.h).
type Atom struct {
	Kind Kind

	Class  *class.Class // KClass
	Invert bool         // KClass, KNLookAhead (shares the "invert" slot atom_set_invert describes)

	String []byte // KString

	Nested    *Core // KGroup, KAtomic, KLookAhead, KNLookAhead, KSubroutine (patched in post-construction)
	Capturing bool  // KGroup: records Captures[GroupNum] on match
	GroupNum  int   // KGroup: own capture index; KReference/KSubroutine: target group index

	RepMin, RepMax int // inclusive; RepMax == -1 means unbounded. (1,1) when unquantified.
	Greedy         bool
}

// unquantified reports whether this atom matches exactly once (no
// repetition operator was attached during parsing).
func (a *Atom) unquantified() bool {
	return a.RepMin == 1 && a.RepMax == 1
}

// Core is one matcher subgraph: an alternation of atom sequences,
// exactly one of which must match for the core to succeed. Grounded on
// core.h's core_t (a list of branches, each a list of atoms).
type Core struct {
	Branches [][]Atom
}
