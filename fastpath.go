package btre

import (
	"github.com/btre/btre/meta"
	"github.com/btre/btre/token"
)

// backtrackOnly reports whether list (or any nested group body) uses a
// construct only the backtracking matcher can run: backreferences,
// subroutine calls, atomic groups, or lookaround. Patterns that avoid all
// of these, and declare no capturing groups, are eligible for the
// meta-engine fast path built in tryFastPath below — the teacher's own
// nfa/dfa/literal/simd stack has no way to represent any of these
// features, so a pattern that uses one always falls back to matcher.Core.
func backtrackOnly(list *token.List) bool {
	for i := 0; i < list.Len(); i++ {
		tok := list.At(i)
		switch tok.Tag {
		case token.Reference, token.Subroutine, token.Atomic,
			token.LookAhead, token.NLookAhead:
			return true
		case token.Group:
			if backtrackOnly(tok.Group) {
				return true
			}
		}
	}
	return false
}

// tryFastPath compiles source against the meta-engine (PikeVM/lazy-DFA
// orchestration, the teacher's own search strategy) as an accelerated
// alternative to matcher.Core.MatchAt, used only for the leftmost-match
// search underlying Pattern.Search/MatchString/Scanner.Next.
//
// Eligibility is deliberately narrow: numGroups must be zero (meta.Match
// carries no capture groups) and the token tree must be free of every
// backtracking-only construct (see backtrackOnly). meta.Compile parses
// source independently against Go's regexp/syntax grammar rather than
// this package's own parser, so eligible patterns are restricted to the
// shared subset of both grammars; tryFastPath returns nil, false rather
// than erroring when meta.Compile rejects an eligible-looking pattern,
// since matcher.Core already compiled it successfully and remains the
// fallback.
func tryFastPath(source string, tokens *token.List, numGroups int) (*meta.Engine, bool) {
	if numGroups != 0 || backtrackOnly(tokens) {
		return nil, false
	}
	engine, err := meta.Compile(source)
	if err != nil {
		return nil, false
	}
	return engine, true
}
