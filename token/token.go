// Package token defines the parser's intermediate representation: a
// sequence of tagged tokens produced by parsing a pattern string and
// consumed by the compile package's factory.
//
// original_source's tokens.c/h represent this as a hand-rolled doubly
// linked list of heap nodes (tlist_t/tnode_t) so the parser can slice out
// sub-ranges for groups and splice normalized tokens back in without
// copying. A Go slice gives the same "random splice, stable iteration"
// behavior via List.Slice/List.Replace without manual pointer
// bookkeeping, so the List here is slice-backed rather than node-linked.
package token

import "github.com/btre/btre/internal/class"

// Tag identifies which variant of Token payload is valid. Grounded on
// tokens.h's tflag enum.
type Tag int

const (
	Literal     Tag = iota // single literal codepoint
	String                 // a run of literal codepoints
	Name                   // group name, carried by a GROUP/SUBROUTINE token
	Alternator             // '|'
	Class                  // match any codepoint in a class
	NClass                 // match any codepoint not in a class
	Group                  // parenthesized sub-pattern (capturing or non-capturing)
	Atomic                 // group the matcher never backtracks into
	Range                  // {n,m} repetition applied to the preceding token
	Lazy                   // '?' following a quantifier: match as little as possible
	Possessive             // '+' following a quantifier: no backtracking into it
	Reference              // backreference to a prior group
	LookAhead              // (?=...)
	NLookAhead             // (?!...)
	WordAnch               // \b
	NWordAnch              // \B
	StartAnch              // ^
	EdgeAnch               // $
	Subroutine              // (?N), (?&name), (?R) — call into a group
	Empty                  // empty pattern / empty alternative; matches everything
)

func (t Tag) String() string {
	switch t {
	case Literal:
		return "LITERAL"
	case String:
		return "STRING"
	case Name:
		return "NAME"
	case Alternator:
		return "ALTERNATOR"
	case Class:
		return "CLASS"
	case NClass:
		return "NCLASS"
	case Group:
		return "GROUP"
	case Atomic:
		return "ATOMIC"
	case Range:
		return "RANGE"
	case Lazy:
		return "LAZY"
	case Possessive:
		return "POSSESSIVE"
	case Reference:
		return "REFERENCE"
	case LookAhead:
		return "LOOKAHEAD"
	case NLookAhead:
		return "NLOOKAHEAD"
	case WordAnch:
		return "WORDANCH"
	case NWordAnch:
		return "NWORDANCH"
	case StartAnch:
		return "STANCH"
	case EdgeAnch:
		return "EDGEANCH"
	case Subroutine:
		return "SUBROUTINE"
	case Empty:
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}

// RangeSpan is the payload of a Range token: repeat the preceding token
// between Begin and End times, inclusive. End of -1 means unbounded
// ("{n,}").
type RangeSpan struct {
	Begin, End int
}

// Token is a single node in the parser's intermediate representation.
// Only the fields relevant to Tag are populated; this mirrors tokens.h's
// union discipline without requiring an interface per variant (per
// SPEC_FULL.md §9's tagged-variant-discipline rendering note).
type Token struct {
	Tag Tag

	// Literal holds the codepoint for a Literal token.
	Literal uint32

	// Text holds the run of codepoints for a String token, or the group
	// name for a Name token (as runes, to preserve the original
	// identifier text without re-decoding UTF-8).
	Text []rune

	// Class holds the character class for a Class/NClass token.
	Class *class.Class

	// Span holds the repetition bounds for a Range token.
	Span RangeSpan

	// Group holds the nested token list for a Group/Atomic/LookAhead/
	// NLookAhead token.
	Group *List

	// GroupNum identifies which capturing group this token refers to: the
	// group's own index for a Group token, the referenced group's index
	// for a Reference or Subroutine token. 0 means "whole match" (only
	// valid as a Subroutine/Reference target, never a real capture).
	GroupNum int

	// GroupName, when non-empty, is the name this Group was declared
	// with, or the name a Reference/Subroutine token resolves by (before
	// name resolution fills in GroupNum).
	GroupName string

	// NameIsSubroutine distinguishes, for an unresolved Name token, a
	// subroutine call ("(?&name)") from a named backreference
	// ("\g<name>"/"\k<name>") — they share the Name tag until name
	// resolution rewrites the token to Subroutine or Reference.
	NameIsSubroutine bool

	// Capturing is true for a Group token that records (begin,end)
	// offsets; false for "(?:...)" non-capturing groups.
	Capturing bool
}
