package token

// List is a sequence of tokens — the parser's output for a pattern or a
// parenthesized sub-pattern. It plays the role of original_source's
// tlist_t, but as a slice rather than a linked list: the parser only ever
// walks a List front-to-back or slices out a contiguous sub-range for a
// group, both of which a slice does directly.
type List struct {
	toks []Token
}

// NewList returns an empty token list.
func NewList() *List {
	return &List{}
}

// ListOf returns a list containing exactly the given tokens, in order.
func ListOf(toks ...Token) *List {
	return &List{toks: toks}
}

// Len returns the number of tokens in the list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.toks)
}

// Empty reports whether the list has no tokens.
func (l *List) Empty() bool {
	return l.Len() == 0
}

// At returns the token at position i.
func (l *List) At(i int) Token {
	return l.toks[i]
}

// Set replaces the token at position i.
func (l *List) Set(i int, t Token) {
	l.toks[i] = t
}

// Front returns the first token, and whether the list was non-empty.
func (l *List) Front() (Token, bool) {
	if l.Empty() {
		return Token{}, false
	}
	return l.toks[0], true
}

// Back returns the last token, and whether the list was non-empty.
func (l *List) Back() (Token, bool) {
	if l.Empty() {
		return Token{}, false
	}
	return l.toks[len(l.toks)-1], true
}

// PushBack appends a token to the end of the list.
func (l *List) PushBack(t Token) {
	l.toks = append(l.toks, t)
}

// PushFront prepends a token to the front of the list.
func (l *List) PushFront(t Token) {
	l.toks = append([]Token{t}, l.toks...)
}

// Insert inserts t so that it becomes element i, shifting the rest right.
func (l *List) Insert(i int, t Token) {
	l.toks = append(l.toks, Token{})
	copy(l.toks[i+1:], l.toks[i:])
	l.toks[i] = t
}

// RemoveAt deletes the token at position i.
func (l *List) RemoveAt(i int) {
	l.toks = append(l.toks[:i], l.toks[i+1:]...)
}

// PopFront removes and returns the first token.
func (l *List) PopFront() (Token, bool) {
	t, ok := l.Front()
	if ok {
		l.toks = l.toks[1:]
	}
	return t, ok
}

// Slice returns the half-open range [from, to) as a new, independent
// List — the equivalent of original_source's tlist_slice, which cuts a
// bracketed sub-pattern's tokens out into their own list so the factory
// can recurse on it.
func (l *List) Slice(from, to int) *List {
	out := make([]Token, to-from)
	copy(out, l.toks[from:to])
	return &List{toks: out}
}

// All returns the list's tokens as a slice. The caller must not mutate
// the result's tokens' nested Group lists in place through this view
// without also calling Set, since slices share backing storage.
func (l *List) All() []Token {
	return l.toks
}

// Append concatenates other's tokens onto the end of l.
func (l *List) Append(other *List) {
	if other == nil {
		return
	}
	l.toks = append(l.toks, other.toks...)
}
