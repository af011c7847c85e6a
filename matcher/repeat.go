package matcher

// matchRepeat drives an atom's repetition, trying RepMin..RepMax
// applications in greedy-first or lazy-first order depending on
// atom.Greedy. RepMax < 0 means unbounded, capped at MaxReps.
func (m *matchState) matchRepeat(atom *Atom, pos int, caps Captures, k cont) bool {
	max := atom.RepMax
	if max < 0 {
		max = MaxReps
	}
	if atom.Greedy {
		return m.repeatGreedy(atom, 0, pos, caps, k, max)
	}
	return m.repeatLazy(atom, 0, pos, caps, k, max)
}

// repeatGreedy tries to extend the repetition one more time before
// falling back to satisfying k with what it already has, so the longest
// sequence of repetitions that lets the rest of the pattern succeed
// wins.
func (m *matchState) repeatGreedy(atom *Atom, count, pos int, caps Captures, k cont, max int) bool {
	if count < max {
		matched := m.matchOne(atom, pos, caps, func(newPos int, newCaps Captures) bool {
			if newPos == pos {
				// Zero-width repetition: repeating again can never make
				// progress, so stop here rather than recurse forever.
				return k(newPos, newCaps)
			}
			return m.repeatGreedy(atom, count+1, newPos, newCaps, k, max)
		})
		if matched {
			return true
		}
	}
	if count >= atom.RepMin {
		return k(pos, caps)
	}
	return false
}

// repeatLazy tries satisfying k with as few repetitions as possible
// before extending, so the shortest sequence that lets the rest of the
// pattern succeed wins.
func (m *matchState) repeatLazy(atom *Atom, count, pos int, caps Captures, k cont, max int) bool {
	if count >= atom.RepMin {
		if k(pos, caps) {
			return true
		}
	}
	if count < max {
		return m.matchOne(atom, pos, caps, func(newPos int, newCaps Captures) bool {
			if newPos == pos && count >= atom.RepMin {
				return false
			}
			return m.repeatLazy(atom, count+1, newPos, newCaps, k, max)
		})
	}
	return false
}
