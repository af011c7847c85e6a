package parse

import "github.com/btre/btre/token"

// parseGroup parses a parenthesized construct starting at src[pos] ==
// '(', filling tok with the resulting token and returning the index just
// past the closing ')'. Mirrors parser.c's '(' case: plain/named/
// non-capturing/atomic groups, lookaheads, numbered and named subroutine
// calls, and bare recursion "(?R)".
func (p *parser) parseGroup(pos, end int, tok *token.Token) (next int, errc ErrorCode, errPos int) {
	closeIdx := findClosing(p.src, pos, '(', ')')
	if closeIdx < 0 || closeIdx >= end {
		// An unterminated "(?" already commits to extended-group syntax
		// even though it never closes, so report the more specific
		// BadGroupSyntax rather than a generic unbalanced-paren error.
		if pos+1 < end && p.src[pos+1] == '?' {
			return 0, BadGroupSyntax, pos
		}
		return 0, UnbalancedParen, pos
	}
	bodyStart := pos + 1
	capturing := false

	if bodyStart < closeIdx && p.src[bodyStart] == '?' {
		afterQ := bodyStart + 1

		// (?N) numbered subroutine call
		if ok, tooLong := isNumber(p.src, afterQ, closeIdx); ok {
			if tooLong {
				return 0, BadInteger, pos
			}
			tok.Tag = token.Subroutine
			tok.GroupNum = parseInt(p.src, afterQ, closeIdx, 10)
			return closeIdx + 1, NoError, 0
		}

		if afterQ >= closeIdx {
			return 0, BadGroupSyntax, pos
		}

		switch p.src[afterQ] {
		case '=':
			tok.Tag = token.LookAhead
			bodyStart = afterQ + 1
		case '!':
			tok.Tag = token.NLookAhead
			bodyStart = afterQ + 1
		case '>':
			tok.Tag = token.Atomic
			bodyStart = afterQ + 1
		case ':':
			tok.Tag = token.Group
			bodyStart = afterQ + 1
		case '&':
			name := string(p.src[afterQ+1 : closeIdx])
			tok.Tag = token.Name
			tok.GroupName = name
			tok.NameIsSubroutine = true
			return closeIdx + 1, NoError, 0
		case 'R':
			if afterQ+1 != closeIdx {
				return 0, BadGroupSyntax, pos
			}
			tok.Tag = token.Subroutine
			tok.GroupNum = 0
			return closeIdx + 1, NoError, 0
		case 'P':
			nameStart := afterQ + 1
			if nameStart >= closeIdx || (p.src[nameStart] != '<' && p.src[nameStart] != '\'') {
				return 0, BadGroupSyntax, pos
			}
			n, errc, errPos := p.parseNamedGroup(nameStart, closeIdx, tok)
			if errc != NoError {
				return 0, errc, errPos
			}
			bodyStart = n
			capturing = true
		case '<', '\'':
			n, errc, errPos := p.parseNamedGroup(afterQ, closeIdx, tok)
			if errc != NoError {
				return 0, errc, errPos
			}
			bodyStart = n
			capturing = true
		default:
			return 0, BadGroupSyntax, pos
		}
	} else {
		tok.Tag = token.Group
		tok.Capturing = true
		capturing = true
	}

	if capturing {
		tok.GroupNum = p.nextGroup
		p.nextGroup++
	}

	body, errc2, errPos2 := p.parseRegex(bodyStart, closeIdx, false)
	if errc2 != NoError {
		return 0, errc2, errPos2
	}
	tok.Group = body
	return closeIdx + 1, NoError, 0
}

// parseNamedGroup parses the "<name>" / "'name'" portion of a named
// group starting at src[pos] (pointing at '<' or '\''), filling tok.
// Returns the index just past the name delimiter (the start of the
// group body).
func (p *parser) parseNamedGroup(pos, closeIdx int, tok *token.Token) (bodyStart int, errc ErrorCode, errPos int) {
	open := p.src[pos]
	nameStart := pos + 1
	if nameStart >= closeIdx {
		return 0, BadGroupSyntax, pos
	}
	if isDigit(p.src[nameStart]) {
		return 0, GroupNameDigit, pos
	}
	closeDelim := byte('\'')
	if open == '<' {
		closeDelim = '>'
	}
	nameEnd := -1
	for i := nameStart; i < closeIdx; i++ {
		if p.src[i] == closeDelim {
			nameEnd = i
			break
		}
	}
	if nameEnd < 0 {
		return 0, BadGroupSyntax, pos
	}
	name := string(p.src[nameStart:nameEnd])
	if _, exists := p.names[name]; exists {
		return 0, NameExists, pos
	}
	tok.Tag = token.Group
	tok.Capturing = true
	tok.GroupName = name
	p.names[name] = p.nextGroup
	return nameEnd + 1, NoError, 0
}
