package textutil

// Ratio computes the indel similarity between two strings as a percentage.
// It is 100 minus the normalized indel distance: two strings that share no
// characters score 0, identical strings score 100. Comparison is by rune.
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	lcs := longestCommonSubsequence(ra, rb)
	return float64(2*lcs) / float64(total) * 100
}

// longestCommonSubsequence returns the LCS length using a two-row DP table.
func longestCommonSubsequence(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
