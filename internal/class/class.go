// Package class implements a codepoint class — a set of Unicode
// codepoints stored as a balanced BST of disjoint, non-adjacent ranges.
//
// The balancing strategy is tree → vine → mutate → vine → tree, following
// the scheme in the original engine's class.c: tree_to_vine repeatedly
// rotates the minimum node to the root producing a right-only chain
// (a "vine"), the mutation (insert/delete/union/difference) runs against
// that vine, and vine_to_tree rebuilds a balanced tree by rotating until
// each node's balance factor is in [-1, 1] and recursing on the children.
//
// Rotations swap the range payload of parent and child rather than
// re-pointing the caller's *Class, so a *Class handed out by New always
// stays valid as the tree's root across any number of mutations.
package class

import "sort"

// emptyVal marks the sentinel empty class: a single node whose low bound
// exceeds the highest valid Unicode codepoint (0x10FFFF).
const emptyVal = 0xFFFFFFFF

// Range is an inclusive codepoint range, lo <= hi.
type Range struct {
	Lo, Hi uint32
}

// Class is a node in the disjoint-range BST. A *Class always denotes the
// root of a (sub)tree; leaf Class values have nil children.
type Class struct {
	rng         Range
	left, right *Class
}

// New returns an empty class.
func New() *Class {
	return &Class{rng: Range{Lo: emptyVal, Hi: 0}}
}

func isEmptyNode(c *Class) bool { return c.rng.Lo == emptyVal }

// Empty reports whether the class contains no codepoints.
func (c *Class) Empty() bool {
	return isEmptyNode(c)
}

// Search reports whether cp is a member of the class. O(log R) in the
// number of disjoint ranges R.
func (c *Class) Search(cp uint32) bool {
	for n := c; n != nil; {
		switch {
		case cp < n.rng.Lo:
			n = n.left
		case cp > n.rng.Hi:
			n = n.right
		default:
			return true
		}
	}
	return false
}

// Size returns the number of disjoint ranges in the class.
func (c *Class) Size() int {
	if c == nil || isEmptyNode(c) {
		return 0
	}
	return 1 + c.left.Size() + c.right.Size()
}

// Cardinality returns the total number of codepoints the class contains.
func (c *Class) Cardinality() int {
	if c == nil || isEmptyNode(c) {
		return 0
	}
	return int(c.rng.Hi-c.rng.Lo+1) + c.left.Cardinality() + c.right.Cardinality()
}

// Ranges returns the class's ranges in ascending order. Used by tests and
// by diagnostics; not on the hot matching path.
func (c *Class) Ranges() []Range {
	var out []Range
	var walk func(*Class)
	walk = func(n *Class) {
		if n == nil || isEmptyNode(n) {
			return
		}
		walk(n.left)
		out = append(out, n.rng)
		walk(n.right)
	}
	walk(c)
	sort.Slice(out, func(i, j int) bool { return out[i].Lo < out[j].Lo })
	return out
}

// Clone returns a deep, independent copy of the class.
func (c *Class) Clone() *Class {
	if c == nil {
		return nil
	}
	out := &Class{rng: c.rng}
	out.left = c.left.Clone()
	out.right = c.right.Clone()
	return out
}

//
// balancing primitives
//

func height(c *Class) int {
	if c == nil {
		return 0
	}
	lh, rh := height(c.left), height(c.right)
	if lh > rh {
		return lh + 1
	}
	return rh + 1
}

func balanceFactor(c *Class) int {
	return height(c.left) - height(c.right)
}

func swapRanges(left, right *Class) {
	left.rng, right.rng = right.rng, left.rng
}

// rotateRight pulls the left child up to the root position, preserving
// the identity of parent as the subtree root by swapping payloads.
func rotateRight(parent *Class) {
	child := parent.left
	parentNewRight := parent.right
	childNewLeft := child.right
	parent.left = child.left
	parent.right = child
	child.right = parentNewRight
	child.left = childNewLeft
	swapRanges(parent, child)
}

// rotateLeft pulls the right child up to the root position.
func rotateLeft(parent *Class) {
	child := parent.right
	parentNewLeft := parent.left
	childNewRight := child.left
	parent.right = child.right
	parent.left = child
	child.left = parentNewLeft
	child.right = childNewRight
	swapRanges(parent, child)
}

// moveMinToRoot rotates the minimum node of the tree rooted at root up to
// the root position, using the BST property that the minimum is reached
// by following left children.
func moveMinToRoot(root *Class) {
	if root.left == nil {
		return
	}
	moveMinToRoot(root.left)
	rotateRight(root)
}

// treeToVine converts an arbitrary tree into an increasing vine: a
// right-only chain in ascending order.
func treeToVine(tree *Class) {
	for n := tree; n != nil; n = n.right {
		moveMinToRoot(n)
	}
}

// vineToTree restores a perfectly balanced BST from an increasing vine.
func vineToTree(vine *Class) {
	if vine == nil {
		return
	}
	bf := balanceFactor(vine)
	rotate := rotateRight
	if bf < -1 {
		bf = -bf
		rotate = rotateLeft
	}
	for ; bf > 1; bf -= 2 {
		rotate(vine)
	}
	vineToTree(vine.left)
	vineToTree(vine.right)
}

// oneAwayRanges merges adjacent vine nodes whose endpoints differ by
// exactly one, preserving the disjoint-non-adjacent invariant.
func oneAwayRanges(vine *Class) {
	for n := vine; n.right != nil; n = n.right {
		if n.rng.Hi+1 == n.right.rng.Lo {
			child := n.right
			n.rng.Hi = child.rng.Hi
			n.right = child.right
		}
	}
}

//
// insertion and deletion
//

type caseKind int

const (
	caseOverlapAll caseKind = iota
	caseOverlapMultiple
	caseOverlapOne
	caseDisjoint
	caseLessThanMin
)

// findCaseSetPtrs classifies range against the vine's existing ranges,
// returning the classification plus the pointers vineInsert/vineDelete
// need: ln/rn bracket the affected span, lpar/rpar are their parents
// (nil when the affected node is the vine root).
func findCaseSetPtrs(vine *Class, rng Range) (kind caseKind, ln, rn, lpar, rpar *Class) {
	var temp *Class
	ln = vine
	for ln != nil && rng.Lo >= ln.rng.Hi {
		lpar = ln
		ln = ln.right
	}
	if lpar != nil {
		rn = lpar
	} else {
		rn = vine
	}
	for rn != nil && rng.Hi >= rn.rng.Lo {
		temp = rpar
		rpar = rn
		rn = rn.right
	}
	if rpar == nil && rng.Hi < rn.rng.Lo {
		return caseLessThanMin, ln, rn, lpar, rpar
	}
	if rpar != nil {
		rn = rpar
	} else {
		rn = vine
	}
	if rpar != nil {
		rpar = temp
	}
	switch {
	case rn == lpar:
		return caseDisjoint, ln, rn, lpar, rpar
	case rn == ln:
		return caseOverlapOne, ln, rn, lpar, rpar
	case rn.right == nil && lpar == nil:
		return caseOverlapAll, ln, rn, lpar, rpar
	default:
		return caseOverlapMultiple, ln, rn, lpar, rpar
	}
}

func minu(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func maxu(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func vineInsert(vine *Class, rng Range) {
	kind, ln, rn, lpar, rpar := findCaseSetPtrs(vine, rng)
	switch kind {
	case caseOverlapAll:
		vine.rng.Lo = minu(ln.rng.Lo, rng.Lo)
		vine.rng.Hi = maxu(rn.rng.Hi, rng.Hi)
		vine.right = nil

	case caseOverlapMultiple:
		ln.rng.Lo = minu(ln.rng.Lo, rng.Lo)
		ln.rng.Hi = maxu(rn.rng.Hi, rng.Hi)
		ln.right = rn.right
		rn.right = nil

	case caseOverlapOne:
		ln.rng.Lo = minu(ln.rng.Lo, rng.Lo)
		ln.rng.Hi = maxu(rn.rng.Hi, rng.Hi)

	case caseDisjoint:
		end := rn.right
		rn.right = &Class{rng: rng, right: end}

	case caseLessThanMin:
		vine.left = &Class{rng: rng}
		rotateRight(vine)
	}
	_ = lpar
	oneAwayRanges(vine)
}

func vineDelete(vine *Class, rng Range) {
	kind, ln, rn, lpar, rpar := findCaseSetPtrs(vine, rng)
	switch kind {
	case caseLessThanMin, caseDisjoint:
		return

	case caseOverlapAll:
		if rng.Lo <= ln.rng.Lo && rng.Hi >= rn.rng.Hi {
			vine.rng.Lo = emptyVal
			vine.right = nil
			return
		}
		fallthrough
	case caseOverlapMultiple:
		if rng.Hi <= rn.rng.Hi {
			rn.rng.Lo = rng.Hi
			rn = rpar
		}
		if rng.Lo <= ln.rng.Lo {
			if lpar == nil {
				swapRanges(ln, rn.right)
				temp := rn.right
				ln.right = rn.right.right
				temp.right = nil
				return
			}
			ln = lpar
		} else {
			ln.rng.Hi = rng.Lo
		}
		if ln != rn {
			ln.right = rn.right
			rn.right = nil
		}

	case caseOverlapOne:
		switch {
		case rng.Lo <= ln.rng.Lo && rng.Hi >= ln.rng.Hi:
			if lpar == nil {
				if ln.right == nil {
					vine.rng.Lo = emptyVal
					return
				}
				swapRanges(ln, ln.right)
			} else {
				ln = lpar
			}
			ln.right = ln.right.right

		case rng.Lo > ln.rng.Lo && rng.Hi < ln.rng.Hi:
			newRange := Range{Lo: rng.Hi + 1, Hi: ln.rng.Hi}
			ln.rng.Hi = rng.Lo - 1
			end := ln.right
			ln.right = &Class{rng: newRange, right: end}

		case rng.Lo <= ln.rng.Lo:
			ln.rng.Lo = rng.Hi

		default:
			ln.rng.Hi = rng.Lo
		}
	}
}

//
// public insertion/deletion interface
//

// InsertCodepoint adds a single codepoint to the class.
func (c *Class) InsertCodepoint(cp uint32) {
	c.InsertRange(Range{Lo: cp, Hi: cp})
}

// InsertRange adds an inclusive range of codepoints to the class.
func (c *Class) InsertRange(rng Range) {
	if isEmptyNode(c) {
		c.rng = rng
		return
	}
	treeToVine(c)
	vineInsert(c, rng)
	if c.right != nil {
		vineToTree(c)
	}
}

// DeleteCodepoint removes a single codepoint from the class.
func (c *Class) DeleteCodepoint(cp uint32) {
	c.DeleteRange(Range{Lo: cp, Hi: cp})
}

// DeleteRange removes an inclusive range of codepoints from the class.
func (c *Class) DeleteRange(rng Range) {
	if isEmptyNode(c) {
		return
	}
	treeToVine(c)
	vineDelete(c, rng)
	if !isEmptyNode(c) && c.right != nil {
		vineToTree(c)
	}
}

//
// set operations
//

func unionRecurse(left *Class, right *Class) {
	if right == nil {
		return
	}
	vineInsert(left, right.rng)
	unionRecurse(left, right.left)
	unionRecurse(left, right.right)
}

// Union mutates c in place to contain the union of c and other.
func (c *Class) Union(other *Class) {
	if isEmptyNode(other) {
		return
	}
	treeToVine(c)
	if isEmptyNode(c) {
		c.rng = other.rng
		unionRecurse(c, other.left)
		unionRecurse(c, other.right)
	} else {
		unionRecurse(c, other)
	}
	vineToTree(c)
}

func differenceRecurse(left *Class, right *Class) {
	if right == nil {
		return
	}
	vineDelete(left, right.rng)
	differenceRecurse(left, right.left)
	differenceRecurse(left, right.right)
}

// Difference mutates c in place to remove every codepoint present in other.
func (c *Class) Difference(other *Class) {
	if isEmptyNode(other) {
		return
	}
	treeToVine(c)
	if isEmptyNode(c) {
		// Difference of an empty set with anything is still empty;
		// nothing to remove from c, but keep the vine well-formed.
	} else {
		differenceRecurse(c, other)
	}
	vineToTree(c)
}

// Intersection mutates c in place to contain only codepoints present in
// both c and other. original_source's class_intersection has an empty
// body (a documented bug, see SPEC_FULL.md §8); implemented here via
// A ∩ B = A \ (A \ B), the identity spec.md §9 calls out as the fix.
func (c *Class) Intersection(other *Class) {
	complement := c.Clone()
	complement.Difference(other)
	c.Difference(complement)
}
