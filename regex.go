// Package btre is a backtracking, PCRE-flavored regular expression engine.
//
// Alternation, capturing/non-capturing/atomic groups, greedy/lazy/
// possessive quantifiers, character classes with set algebra, UTF-8
// codepoints, numbered and named backreferences, subroutine calls
// (including recursion), and lookahead assertions are all supported.
// There is no DFA/NFA compilation and no catastrophic-backtracking
// defense: an unbounded nested quantifier can run unboundedly, exactly as
// original_source's shre_search never bounded it either.
//
// Basic usage:
//
//	re, err := btre.Compile(`\d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if m, ok := re.Search([]byte("hello 123 world")); ok {
//	    fmt.Println(string(m.Bytes())) // "123"
//	}
package btre

import (
	"fmt"
	"sync"

	"github.com/btre/btre/compile"
	"github.com/btre/btre/matcher"
	"github.com/btre/btre/meta"
	"github.com/btre/btre/parse"
	"github.com/btre/btre/prefilter"
)

// Config tunes Engine.Compile. Grounded on the teacher's meta.Config /
// meta.DefaultConfig() pattern, but deliberately small: there is no
// timeout or step-budget field, since spec.md is explicit that
// cancellation is unsupported and there is no catastrophic-backtracking
// defense — adding one would contradict that.
type Config struct {
	// EnablePrefilter gates the Aho-Corasick literal-alternation fast
	// path (see prefilter.Build). Patterns that aren't a pure literal
	// alternation are unaffected either way.
	EnablePrefilter bool
	// EnableFastPath gates compiling a second copy of the pattern against
	// the meta-engine (see tryFastPath) for patterns with no capturing
	// groups and no backtracking-only construct. Patterns outside that
	// subset are unaffected either way.
	EnableFastPath bool
	// InitialCacheSize sizes the pattern cache map up front.
	InitialCacheSize int
}

// DefaultConfig returns the configuration Compile/MustCompile use.
func DefaultConfig() Config {
	return Config{EnablePrefilter: true, EnableFastPath: true, InitialCacheSize: 16}
}

// Engine is a pattern cache: original_source's shre_compile caches by
// exact pattern string so a hot pattern used in a loop is only parsed and
// compiled once. An Engine is safe for concurrent use.
type Engine struct {
	mu       sync.RWMutex
	patterns map[string]*Pattern
	config   Config
}

// NewEngine returns an Engine with its own pattern cache, configured by
// cfg.
func NewEngine(cfg Config) *Engine {
	return &Engine{patterns: make(map[string]*Pattern, cfg.InitialCacheSize), config: cfg}
}

// Compile returns the cached Pattern for source, parsing and building it
// first if this is the first time source has been seen by this Engine.
func (e *Engine) Compile(source string) (*Pattern, error) {
	e.mu.RLock()
	if p, ok := e.patterns[source]; ok {
		e.mu.RUnlock()
		return p, nil
	}
	e.mu.RUnlock()

	tokens, names, numGroups, err := parse.Parse(source)
	if err != nil {
		return nil, err
	}
	core, err := compile.Build(tokens)
	if err != nil {
		return nil, err
	}
	var pf prefilter.Prefilter
	if e.config.EnablePrefilter {
		if built, ok := prefilter.Build(core); ok {
			pf = built
		}
	}
	var fast *meta.Engine
	if e.config.EnableFastPath {
		if built, ok := tryFastPath(source, tokens, numGroups); ok {
			fast = built
		}
	}
	p := &Pattern{source: source, core: core, numGroups: numGroups, names: names, pf: pf, fast: fast}

	e.mu.Lock()
	e.patterns[source] = p
	e.mu.Unlock()
	return p, nil
}

// NumPatterns returns the number of distinct patterns currently cached,
// original_source's num_patterns.
func (e *Engine) NumPatterns() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.patterns)
}

// ClearCache discards every cached pattern, original_source's
// clear_cache.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.patterns = make(map[string]*Pattern, e.config.InitialCacheSize)
}

// defaultEngine backs the package-level Compile/MustCompile/NumPatterns/
// ClearCache functions, the way original_source's single process-wide
// ptable backs shre_compile directly without a caller-visible engine
// handle.
var defaultEngine = NewEngine(DefaultConfig())

// Compile parses and builds source against the package's default Engine,
// returning a *parse.SyntaxError if source is malformed.
func Compile(source string) (*Pattern, error) {
	return defaultEngine.Compile(source)
}

// MustCompile is like Compile but panics if source fails to compile. Used
// for patterns known to be valid at compile time.
func MustCompile(source string) *Pattern {
	p, err := Compile(source)
	if err != nil {
		panic(fmt.Sprintf("btre: Compile(%q): %v", source, err))
	}
	return p
}

// CompileWithConfig compiles source against a fresh Engine configured by
// cfg, bypassing the package-level cache — the same one-off shape as the
// teacher's CompileWithConfig.
func CompileWithConfig(source string, cfg Config) (*Pattern, error) {
	return NewEngine(cfg).Compile(source)
}

// NumPatterns returns the number of patterns cached by the package's
// default Engine.
func NumPatterns() int { return defaultEngine.NumPatterns() }

// ClearCache discards every pattern cached by the package's default
// Engine.
func ClearCache() { defaultEngine.ClearCache() }

// MatchString reports whether s contains a match of pattern, compiling
// (and caching) pattern first. Grounded on original_source's
// quick_search "use the same pattern over and over without recompiling"
// convenience.
func MatchString(pattern, s string) (bool, error) {
	p, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return p.MatchString(s), nil
}

// EntireString reports whether pattern matches s in its entirety,
// compiling (and caching) pattern first. Grounded on original_source's
// quick_entire.
func EntireString(pattern, s string) (bool, error) {
	p, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return p.EntireString(s), nil
}

// Pattern is a compiled regular expression: an immutable matcher graph
// plus the bookkeeping (source text, named groups, optional literal
// prefilter) needed to run searches over it. A *Pattern is safe for
// concurrent use — every search allocates its own capture table and
// recursion, original_source's "compiled patterns are immutable" rule.
type Pattern struct {
	source    string
	core      *matcher.Core
	numGroups int
	names     map[string]int
	pf        prefilter.Prefilter
	// fast is the meta-engine compiled for this pattern, or nil if the
	// pattern fell outside tryFastPath's eligible subset. Only ever
	// consulted by searchFrom; Entire always goes through core directly,
	// since its single-offset anchoring semantics have no meta-engine
	// equivalent.
	fast *meta.Engine
}

// String returns the source text Pattern was compiled from,
// original_source's shre_expression.
func (p *Pattern) String() string { return p.source }

// NumSubexp returns the number of capturing groups in the pattern (group
// 0, the whole match, is not counted).
func (p *Pattern) NumSubexp() int { return p.numGroups }

// searchFrom returns the leftmost match starting at or after from, using
// the literal prefilter to skip ahead when one is available.
func (p *Pattern) searchFrom(input []byte, from int) (matcher.Captures, bool) {
	if p.fast != nil {
		m := p.fast.FindAt(input, from)
		if m == nil {
			return nil, false
		}
		return matcher.Captures{{Begin: m.Start(), End: m.End()}}, true
	}
	if p.pf != nil {
		for pos := from; ; {
			cand := p.pf.Find(input, pos)
			if cand < 0 {
				return nil, false
			}
			if caps, ok := p.core.MatchAt(input, cand, p.numGroups); ok {
				return caps, true
			}
			pos = cand + 1
		}
	}
	for pos := from; pos <= len(input); pos++ {
		if caps, ok := p.core.MatchAt(input, pos, p.numGroups); ok {
			return caps, true
		}
	}
	return nil, false
}

// Search returns the leftmost match of Pattern in input, original_source's
// shre_search.
func (p *Pattern) Search(input []byte) (*Match, bool) {
	caps, ok := p.searchFrom(input, 0)
	if !ok {
		return nil, false
	}
	return &Match{caps: caps, input: input, names: p.names}, true
}

// Entire reports a match only if it starts at input's first byte and ends
// at input's last, original_source's shre_entire.
func (p *Pattern) Entire(input []byte) (*Match, bool) {
	caps, ok := p.core.MatchAt(input, 0, p.numGroups)
	if !ok || caps[0].End != len(input) {
		return nil, false
	}
	return &Match{caps: caps, input: input, names: p.names}, true
}

// MatchString reports whether s contains a match of Pattern.
func (p *Pattern) MatchString(s string) bool {
	_, ok := p.Search([]byte(s))
	return ok
}

// EntireString reports whether Pattern matches s in its entirety.
func (p *Pattern) EntireString(s string) bool {
	_, ok := p.Entire([]byte(s))
	return ok
}

// NewScanner returns a Scanner that walks successive, non-overlapping
// matches of Pattern over input, starting at offset 0.
func (p *Pattern) NewScanner(input []byte) *Scanner {
	return &Scanner{pattern: p, input: input}
}

// Match is the result of a successful Search, Entire, or Scanner step: a
// capture table (index 0 is the whole match) paired with the input it was
// found in.
type Match struct {
	caps  matcher.Captures
	input []byte
	names map[string]int
}

// Start returns the byte offset where the match begins.
func (m *Match) Start() int { return m.caps[0].Begin }

// End returns the byte offset just past the match.
func (m *Match) End() int { return m.caps[0].End }

// Bytes returns the matched text (group 0).
func (m *Match) Bytes() []byte { return m.input[m.caps[0].Begin:m.caps[0].End] }

// String returns the matched text (group 0) as a string.
func (m *Match) String() string { return string(m.Bytes()) }

// NumGroups returns the number of capturing groups in the pattern that
// produced this match (group 0 is not counted).
func (m *Match) NumGroups() int { return len(m.caps) - 1 }

// Group returns the text captured by group n, or nil if n is out of range
// or that group did not participate in the match.
func (m *Match) Group(n int) []byte {
	if n < 0 || n >= len(m.caps) || m.caps[n].Unset() {
		return nil
	}
	return m.input[m.caps[n].Begin:m.caps[n].End]
}

// GroupString is Group as a string, or "" if Group would return nil.
func (m *Match) GroupString(n int) string {
	g := m.Group(n)
	if g == nil {
		return ""
	}
	return string(g)
}

// NamedGroup returns the text captured by the group declared with the
// given name, or nil if no such named group exists or it did not
// participate in the match.
func (m *Match) NamedGroup(name string) []byte {
	n, ok := m.names[name]
	if !ok {
		return nil
	}
	return m.Group(n)
}

// Scanner walks successive matches of a Pattern over a fixed input,
// original_source's scanner_t.
type Scanner struct {
	pattern *Pattern
	input   []byte
	pos     int
}

// Next returns the next leftmost match at or after the scanner's current
// position, advancing the position past the match. A zero-width match
// advances the position by one extra byte to guarantee forward progress,
// original_source's scan_next/scan_increment.
func (s *Scanner) Next() (*Match, bool) {
	caps, ok := s.pattern.searchFrom(s.input, s.pos)
	if !ok {
		return nil, false
	}
	if caps[0].End == caps[0].Begin {
		s.pos = caps[0].End + 1
	} else {
		s.pos = caps[0].End
	}
	return &Match{caps: caps, input: s.input, names: s.pattern.names}, true
}

// Try attempts a match anchored exactly at the scanner's current
// position, without advancing it either way — original_source's
// scan_try.
func (s *Scanner) Try() (*Match, bool) {
	caps, ok := s.pattern.core.MatchAt(s.input, s.pos, s.pattern.numGroups)
	if !ok {
		return nil, false
	}
	return &Match{caps: caps, input: s.input, names: s.pattern.names}, true
}

// Seek moves the scanner's position to offset, clamped to [0, len(input)],
// original_source's scan_seek.
func (s *Scanner) Seek(offset int) {
	switch {
	case offset < 0:
		s.pos = 0
	case offset > len(s.input):
		s.pos = len(s.input)
	default:
		s.pos = offset
	}
}

// Tell returns the scanner's current position, original_source's
// scan_tell.
func (s *Scanner) Tell() int { return s.pos }
