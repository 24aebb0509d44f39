package glob

// Match reports whether pattern matches the whole of data.
//
// On a mismatch the matcher backtracks to the most recent '*' and resumes
// one byte further into the data. Because '*' matches every byte (there is
// no distinguished separator), a single pending backtrack point is always
// sufficient; a mismatch with no pending backtrack point fails immediately.
//
// Conditions the pattern grammar leaves undefined never match: a pattern
// exhausted before the data, an unterminated character class, and a
// trailing '\' with no byte to escape.
func Match(pattern, data []byte) bool {
	// Pattern resume index for the most recent '*', -1 when none is pending.
	backPat := -1
	backStr := 0

	pi, di := 0, 0
	for di < len(data) {
		matched := false
		if pi < len(pattern) {
			c := data[di]
			d := pattern[pi]
			di++
			pi++

			switch d {
			case '?':
				matched = true
			case '*':
				if pi == len(pattern) {
					// Trailing '*' swallows the rest of the data.
					return true
				}
				backPat = pi
				di-- // allow a zero-length match
				backStr = di
				matched = true
			case '[':
				pi, matched = matchClass(pattern, pi, c)
			case '\\':
				if pi < len(pattern) {
					matched = c == pattern[pi]
					pi++
				}
			default:
				matched = c == d
			}
		}

		if !matched {
			if backPat < 0 {
				return false
			}
			// Retry from the last '*', one byte later in the data.
			pi = backPat
			backStr++
			di = backStr
		}
	}
	return pi == len(pattern)
}

// MatchString is a convenience wrapper over Match for string inputs.
func MatchString(pattern, data string) bool {
	return Match([]byte(pattern), []byte(data))
}

// matchClass matches c against the character class starting at pattern[pi],
// where pi indexes the byte just past the opening '['. It returns the index
// past the closing ']' and whether c belongs to the class. An unterminated
// class matches nothing.
func matchClass(pattern []byte, pi int, c byte) (int, bool) {
	inverted := false
	j := pi
	if j < len(pattern) && pattern[j] == '^' {
		inverted = true
		j++
	}
	if j >= len(pattern) {
		return len(pattern), false
	}

	// The first member is taken literally, so ']' may open the class.
	a := pattern[j]
	j++
	match := false
	for {
		b := a
		if j+1 < len(pattern) && pattern[j] == '-' && pattern[j+1] != ']' {
			b = pattern[j+1]
			j += 2
			if a > b {
				a, b = b, a
			}
		}
		if a <= c && c <= b {
			match = true
		}
		if j >= len(pattern) {
			return len(pattern), false
		}
		a = pattern[j]
		j++
		if a == ']' {
			break
		}
	}
	if inverted {
		return j, !match
	}
	return j, match
}
