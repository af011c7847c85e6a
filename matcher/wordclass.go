package matcher

import "github.com/btre/btre/internal/class"

// wordClass backs \b and \B: a byte is a "word character" under exactly
// the same definition parser.c's parse_shorthand gives \w,
// "[a-zA-Z0-9_]". Word-boundary testing only ever needs to classify a
// single byte (word characters are all ASCII), so this is checked
// directly against raw input bytes rather than going through the
// codepoint decoder.
var wordClass = buildWordClass()

func buildWordClass() *class.Class {
	c := class.New()
	c.InsertRange(class.Range{Lo: 'a', Hi: 'z'})
	c.InsertRange(class.Range{Lo: 'A', Hi: 'Z'})
	c.InsertRange(class.Range{Lo: '0', Hi: '9'})
	c.InsertCodepoint('_')
	return c
}

func isWordByte(input []byte, i int) bool {
	if i < 0 || i >= len(input) {
		return false
	}
	return wordClass.Search(uint32(input[i]))
}
