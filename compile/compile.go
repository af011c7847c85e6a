// Package compile turns a parsed token list into the matcher graph that
// actually runs a search, the Go counterpart of factory.c's build_core.
package compile

import (
	"fmt"

	"github.com/btre/btre/matcher"
	"github.com/btre/btre/token"
)

// pendingSubroutine records a KSubroutine atom whose Nested core couldn't
// be filled in yet because the target group's core may not exist at the
// point the call token is compiled (forward references, recursion).
// Resolved once the whole tree is built, the same two-pass shape
// build_core uses with its clist_t of (atom, target index) pairs.
type pendingSubroutine struct {
	core      *matcher.Core
	branch    int
	atomIndex int
	target    int
}

// coreEntry records a core and the group number it was built for, in the
// preorder it was created — the same role core_find_core's index walk
// plays over core_t's implicit tree.
type coreEntry struct {
	core  *matcher.Core
	index int
}

type builder struct {
	preorder []coreEntry
	pending  []pendingSubroutine
}

// Build converts a weeded, backreference-resolved token list into a
// matcher graph ready for matcher.Core.MatchAt. The returned error is
// non-nil only if the token list refers to a subroutine target that does
// not exist, which parse's badrefCheck should already have ruled out.
func Build(tokens *token.List) (*matcher.Core, error) {
	b := &builder{}
	root := b.buildCore(tokens, 0)
	for _, p := range b.pending {
		target := b.findCore(p.target)
		if target == nil {
			return nil, fmt.Errorf("compile: subroutine call to undefined group %d", p.target)
		}
		p.core.Branches[p.branch][p.atomIndex].Nested = target
	}
	return root, nil
}

// findCore returns the first core, in creation preorder, built for the
// given group number — core_find_core's linear clist_t walk.
func (b *builder) findCore(index int) *matcher.Core {
	for _, e := range b.preorder {
		if e.index == index {
			return e.core
		}
	}
	return nil
}

// buildCore compiles one token list into one Core, recursing into nested
// group bodies. index is the group number this core corresponds to (0 for
// the top level and for any non-capturing construct), recorded so a
// subroutine call elsewhere can find its way back here.
func (b *builder) buildCore(tokens *token.List, index int) *matcher.Core {
	core := &matcher.Core{Branches: [][]matcher.Atom{{}}}
	b.preorder = append(b.preorder, coreEntry{core: core, index: index})
	branch := 0

	appendAtom := func(a matcher.Atom) *matcher.Atom {
		core.Branches[branch] = append(core.Branches[branch], a)
		return &core.Branches[branch][len(core.Branches[branch])-1]
	}
	// lastAtom re-derives the pointer to the most recently appended atom
	// in the current branch on demand, since appendAtom's returned
	// pointer is invalidated by the next append to the same branch slice.
	lastAtom := func() *matcher.Atom {
		n := len(core.Branches[branch])
		if n == 0 {
			panic("compile: RANGE/LAZY token with nothing to apply to")
		}
		return &core.Branches[branch][n-1]
	}

	for i := 0; i < tokens.Len(); i++ {
		tok := tokens.At(i)
		switch tok.Tag {

		case token.Empty:
			// matches any string; nothing to add.

		case token.Alternator:
			core.Branches = append(core.Branches, []matcher.Atom{})
			branch++

		case token.String:
			appendAtom(matcher.Atom{
				Kind: matcher.KString, String: []byte(string(tok.Text)),
				RepMin: 1, RepMax: 1, Greedy: true,
			})

		case token.Class:
			appendAtom(matcher.Atom{
				Kind: matcher.KClass, Class: tok.Class, Invert: false,
				RepMin: 1, RepMax: 1, Greedy: true,
			})

		case token.NClass:
			appendAtom(matcher.Atom{
				Kind: matcher.KClass, Class: tok.Class, Invert: true,
				RepMin: 1, RepMax: 1, Greedy: true,
			})

		case token.Range:
			a := lastAtom()
			a.RepMin = tok.Span.Begin
			a.RepMax = tok.Span.End

		case token.Lazy:
			lastAtom().Greedy = false

		case token.Group:
			nested := b.buildCore(tok.Group, tok.GroupNum)
			appendAtom(matcher.Atom{
				Kind: matcher.KGroup, Nested: nested,
				Capturing: tok.Capturing, GroupNum: tok.GroupNum,
				RepMin: 1, RepMax: 1, Greedy: true,
			})

		case token.Atomic:
			nested := b.buildCore(tok.Group, tok.GroupNum)
			appendAtom(matcher.Atom{
				Kind: matcher.KAtomic, Nested: nested,
				RepMin: 1, RepMax: 1, Greedy: true,
			})

		case token.Reference:
			appendAtom(matcher.Atom{
				Kind: matcher.KReference, GroupNum: tok.GroupNum,
				RepMin: 1, RepMax: 1, Greedy: true,
			})

		case token.LookAhead:
			nested := b.buildCore(tok.Group, tok.GroupNum)
			appendAtom(matcher.Atom{
				Kind: matcher.KLookAhead, Nested: nested,
				RepMin: 1, RepMax: 1, Greedy: true,
			})

		case token.NLookAhead:
			nested := b.buildCore(tok.Group, tok.GroupNum)
			appendAtom(matcher.Atom{
				Kind: matcher.KNLookAhead, Nested: nested,
				RepMin: 1, RepMax: 1, Greedy: true,
			})

		case token.Subroutine:
			appendAtom(matcher.Atom{
				Kind: matcher.KSubroutine, GroupNum: tok.GroupNum,
				RepMin: 1, RepMax: 1, Greedy: true,
			})
			b.pending = append(b.pending, pendingSubroutine{
				core: core, branch: branch,
				atomIndex: len(core.Branches[branch]) - 1,
				target:    tok.GroupNum,
			})

		case token.WordAnch:
			appendAtom(matcher.Atom{Kind: matcher.KWordAnch, RepMin: 1, RepMax: 1, Greedy: true})

		case token.NWordAnch:
			appendAtom(matcher.Atom{Kind: matcher.KNWordAnch, RepMin: 1, RepMax: 1, Greedy: true})

		case token.StartAnch:
			appendAtom(matcher.Atom{Kind: matcher.KStartAnch, RepMin: 1, RepMax: 1, Greedy: true})

		case token.EdgeAnch:
			appendAtom(matcher.Atom{Kind: matcher.KEdgeAnch, RepMin: 1, RepMax: 1, Greedy: true})

		case token.Literal, token.Name, token.Possessive:
			// weedeat and badrefCheck rewrite all of these away before
			// compile ever sees a token list.
			panic(fmt.Sprintf("compile: unresolved token tag %v reached the factory", tok.Tag))

		default:
			panic(fmt.Sprintf("compile: unhandled token tag %v", tok.Tag))
		}
	}

	return core
}
