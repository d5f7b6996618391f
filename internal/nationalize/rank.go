package nationalize

import "sort"

// Rank returns up to n guesses ordered by probability, highest first.
// Equal probabilities keep their original order, so output is deterministic
// for a given API response. The input slice is not modified.
func Rank(guesses []Guess, n int) []Guess {
	if n <= 0 || len(guesses) == 0 {
		return []Guess{}
	}
	ranked := make([]Guess, len(guesses))
	copy(ranked, guesses)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Probability > ranked[j].Probability
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
