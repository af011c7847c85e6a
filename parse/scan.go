package parse

// findClosing returns the index in src of the character that balances
// the opener at src[open], or -1 if the pattern is unbalanced. Ported
// from original_source's find_closing: nested '(' / '[' pairs (and vice
// versa) are skipped over recursively, and a backslash always protects
// the byte that follows it from being read as a delimiter.
//
// openPos must point at the opening delimiter itself; the search starts
// just past it.
func findClosing(src []byte, openPos int, open, closeByte byte) int {
	i := openPos + 1
	for i < len(src) {
		switch src[i] {
		case closeByte:
			return i
		case open:
			end := findClosing(src, i, open, closeByte)
			if end < 0 {
				return -1
			}
			i = end + 1
		case '[':
			if open != '[' {
				end := findClosing(src, i, '[', ']')
				if end >= 0 {
					i = end + 1
					continue
				}
			}
			i++
		case '\\':
			if i+1 < len(src) {
				i++
			}
			i++
		default:
			i++
		}
	}
	return -1
}
