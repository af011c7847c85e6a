package prefilter

import (
	"github.com/btre/btre/matcher"
	"github.com/coregx/ahocorasick"
)

// AhoCorasickPrefilter is the "many literals" strategy this package's own
// doc comment and selectPrefilter's fallthrough comment mark as future
// work. It answers "where could the next candidate match start" with a
// single Aho-Corasick automaton built over the pattern's top-level literal
// alternatives, in place of probing every offset with the backtracking
// matcher (meta/compile.go wires the same automaton for its own
// UseAhoCorasick strategy, over literals meta's extractor produces instead
// of a matcher.Core's branches).
type AhoCorasickPrefilter struct {
	automaton *ahocorasick.Automaton
	// complete is true when every alternative is the same length, so a
	// prefilter hit already is the full match and needs no verification
	// against the backtracking matcher.
	complete   bool
	literalLen int
	heapBytes  int
}

// Build inspects a compiled matcher graph and, if every branch is exactly
// one unquantified literal atom (a pure literal alternation such as
// "cat|dog|bird" or a bare literal "hello", with no quantifier, anchor, or
// group wrapping it), returns a Prefilter over those literals. ok is false
// for anything else, and the caller should fall back to running the
// backtracking matcher at every offset.
func Build(core *matcher.Core) (pf Prefilter, ok bool) {
	literals, ok := pureLiteralAlternation(core)
	if !ok {
		return nil, false
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(lit)
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil, false
	}
	complete, literalLen, heapBytes := true, -1, 0
	for _, lit := range literals {
		heapBytes += len(lit)
		if literalLen == -1 {
			literalLen = len(lit)
		} else if literalLen != len(lit) {
			complete = false
		}
	}
	if literalLen < 0 {
		literalLen = 0
	}
	return &AhoCorasickPrefilter{
		automaton: automaton, complete: complete,
		literalLen: literalLen, heapBytes: heapBytes,
	}, true
}

// pureLiteralAlternation extracts one literal per branch, or reports ok =
// false if any branch isn't exactly a single unquantified STRING atom.
func pureLiteralAlternation(core *matcher.Core) (literals [][]byte, ok bool) {
	if len(core.Branches) == 0 {
		return nil, false
	}
	for _, branch := range core.Branches {
		if len(branch) != 1 {
			return nil, false
		}
		atom := branch[0]
		if atom.Kind != matcher.KString {
			return nil, false
		}
		if atom.RepMin != 1 || atom.RepMax != 1 {
			return nil, false
		}
		literals = append(literals, atom.String)
	}
	return literals, true
}

// Find returns the start of the first candidate at or after start, or -1.
func (p *AhoCorasickPrefilter) Find(haystack []byte, start int) int {
	m := p.automaton.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// FindMatch returns the full (start, end) range of the first candidate at
// or after start, satisfying the MatchFinder interface the way Teddy does
// for its own multi-pattern matches of varying length.
func (p *AhoCorasickPrefilter) FindMatch(haystack []byte, start int) (int, int) {
	m := p.automaton.Find(haystack, start)
	if m == nil {
		return -1, -1
	}
	return m.Start, m.End
}

// IsMatch reports whether any literal occurs anywhere in haystack,
// grounded on meta/ismatch.go's ahoCorasick.IsMatch fast path.
func (p *AhoCorasickPrefilter) IsMatch(haystack []byte) bool {
	return p.automaton.IsMatch(haystack)
}

func (p *AhoCorasickPrefilter) IsComplete() bool { return p.complete }

func (p *AhoCorasickPrefilter) LiteralLen() int {
	if !p.complete {
		return 0
	}
	return p.literalLen
}

func (p *AhoCorasickPrefilter) HeapBytes() int {
	return p.heapBytes
}
