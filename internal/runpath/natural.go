package runpath

import "strings"

// Natural ordering: a path string is tokenized into alternating runs of
// non-digits and digits, and digit runs compare as integers rather than
// lexically. "run-2" therefore sorts before "run-10".

type naturalToken struct {
	text  string
	digit bool
}

// naturalTokens splits s into alternating non-digit and digit runs.
func naturalTokens(s string) []naturalToken {
	var tokens []naturalToken
	start := 0
	inDigit := false
	for i := 0; i < len(s); i++ {
		d := s[i] >= '0' && s[i] <= '9'
		if i == 0 {
			inDigit = d
			continue
		}
		if d != inDigit {
			tokens = append(tokens, naturalToken{text: s[start:i], digit: inDigit})
			start = i
			inDigit = d
		}
	}
	if len(s) > 0 {
		tokens = append(tokens, naturalToken{text: s[start:], digit: inDigit})
	}
	return tokens
}

// compareDigits compares two digit runs by integer value without parsing,
// so arbitrarily long runs cannot overflow: strip leading zeros, then the
// shorter run is smaller, then lexical order decides.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// Compare orders two paths by the natural key. Returns -1, 0, or 1.
func Compare(a, b Path) int {
	ta, tb := naturalTokens(string(a)), naturalTokens(string(b))
	for i := 0; i < len(ta) && i < len(tb); i++ {
		var c int
		if ta[i].digit && tb[i].digit {
			c = compareDigits(ta[i].text, tb[i].text)
		} else {
			c = strings.Compare(ta[i].text, tb[i].text)
		}
		if c != 0 {
			return c
		}
	}
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	// Digit runs like "01" and "1" tie numerically; fall back to the raw
	// string so the order is still total.
	return strings.Compare(string(a), string(b))
}

// Less reports whether a orders before b under the natural key.
func Less(a, b Path) bool { return Compare(a, b) < 0 }
