// Package repair fixes literal text-doubling artifacts introduced by the
// capture mechanism, which can render the same DOM node twice and yield
// strings like "Embassy SuitesEmbassy Suites".
package repair

import "strings"

// minDoublingLength is the shortest string the exact-half check applies to.
// Shorter strings double legitimately ("aaa", "gogo") too often to touch.
const minDoublingLength = 6

// Doubling collapses a doubled string back to its single form.
//
// Two passes run in order: an exact-half comparison for strings whose first
// half equals their second half, then a token-level scan for the smallest
// k >= 1 where the first k whitespace-separated tokens repeat immediately.
// The token pass keeps any tail after the repeated block, so
// "Acme Corp Acme Corp Full-time" repairs to "Acme Corp Full-time".
// Strings with no doubling are returned unchanged.
func Doubling(s string) string {
	runes := []rune(s)
	n := len(runes)
	if n > minDoublingLength && n%2 == 0 {
		half := n / 2
		if string(runes[:half]) == string(runes[half:]) {
			return string(runes[:half])
		}
	}

	tokens := strings.Fields(s)
	for k := 1; 2*k <= len(tokens); k++ {
		if tokensEqual(tokens[:k], tokens[k:2*k]) {
			repaired := append([]string{}, tokens[:k]...)
			repaired = append(repaired, tokens[2*k:]...)
			return strings.Join(repaired, " ")
		}
	}

	return s
}

// Lines applies Doubling to every line content in place-order, returning a
// new slice. Used before classification so doubled lines classify correctly.
func Lines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Doubling(line)
	}
	return out
}

func tokensEqual(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
