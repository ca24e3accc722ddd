package textutil

// LongestRepeat returns the longest substring of s that occurs at least twice
// at non-overlapping positions, or "" when no character repeats. When several
// repeats share the maximal length the one starting leftmost wins.
//
// dp[j] holds, for the current start i, the length of the common run of the
// suffixes starting at i and at j, capped at j-i so the two occurrences never
// overlap. Sweeping i downward lets dp[j+1] still carry the value for i+1.
// The computation works on runes so multi-byte names count like characters.
func LongestRepeat(s string) string {
	runes := []rune(s)
	n := len(runes)
	if n < 2 {
		return ""
	}

	dp := make([]int, n+1)
	bestStart, bestLen := 0, 0
	for i := n - 1; i >= 0; i-- {
		for j := i; j < n; j++ {
			if runes[i] != runes[j] {
				dp[j] = 0
				continue
			}
			dp[j] = 1 + min(dp[j+1], j-i-1)
			if dp[j] >= bestLen {
				bestLen = dp[j]
				bestStart = i
			}
		}
	}

	if bestLen == 0 {
		return ""
	}
	return string(runes[bestStart : bestStart+bestLen])
}
