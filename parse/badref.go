package parse

import "github.com/btre/btre/token"

// badrefCheck walks the full token tree (recursing into every group body)
// resolving Name tokens — unresolved named backreferences and subroutine
// calls — against p.names, and rejecting any reference/subroutine call
// or capturing group whose group number is out of range. Mirrors
// original_source's badref_check, run once over the whole pattern before
// weedeat.
func (p *parser) badrefCheck(list *token.List, max int) ErrorCode {
	for i := 0; i < list.Len(); i++ {
		tok := list.At(i)
		switch tok.Tag {
		case token.Group, token.LookAhead, token.NLookAhead, token.Atomic:
			if errc := p.badrefCheck(tok.Group, max); errc != NoError {
				return errc
			}

		case token.Name:
			num, ok := p.names[tok.GroupName]
			if !ok {
				return BadReference
			}
			if tok.NameIsSubroutine {
				tok.Tag = token.Subroutine
			} else {
				tok.Tag = token.Reference
			}
			tok.GroupNum = num
			tok.GroupName = ""
			list.Set(i, tok)

		default:
			if tok.Tag == token.Reference || tok.Tag == token.Subroutine {
				if tok.GroupNum >= max {
					return BadReference
				}
			}
		}
	}
	return NoError
}
