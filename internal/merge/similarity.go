package merge

import (
	"strings"
	"unicode"
)

// Similarity returns the normalized character-overlap ratio of two strings
// in [0, 1]: the size of the multiset intersection of their letters and
// digits, divided by the larger count. Case and punctuation are ignored, so
// "Sr. Software Engineer" and "Senior Software Engineer" score high while
// unrelated titles score low.
func Similarity(a, b string) float64 {
	ca := runeCounts(a)
	cb := runeCounts(b)
	if len(ca) == 0 || len(cb) == 0 {
		return 0
	}

	overlap, totalA, totalB := 0, 0, 0
	for r, n := range ca {
		totalA += n
		if m, ok := cb[r]; ok {
			if m < n {
				overlap += m
			} else {
				overlap += n
			}
		}
	}
	for _, n := range cb {
		totalB += n
	}

	max := totalA
	if totalB > max {
		max = totalB
	}
	return float64(overlap) / float64(max)
}

func runeCounts(s string) map[rune]int {
	counts := map[rune]int{}
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			counts[r]++
		}
	}
	return counts
}
