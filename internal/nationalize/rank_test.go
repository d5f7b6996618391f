package nationalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankOrdersByProbability(t *testing.T) {
	in := []Guess{
		{CountryID: "AA", Probability: 0.2},
		{CountryID: "BB", Probability: 0.9},
		{CountryID: "CC", Probability: 0.5},
	}
	out := Rank(in, 5)
	assert.Equal(t, []string{"BB", "CC", "AA"}, ids(out))
}

func TestRankStableOnTies(t *testing.T) {
	in := []Guess{
		{CountryID: "AA", Probability: 0.2},
		{CountryID: "BB", Probability: 0.9},
		{CountryID: "CC", Probability: 0.5},
		{CountryID: "DD", Probability: 0.9},
		{CountryID: "EE", Probability: 0.1},
	}
	out := Rank(in, 5)
	assert.Equal(t, []string{"BB", "DD", "CC", "AA", "EE"}, ids(out))
}

func TestRankTruncates(t *testing.T) {
	in := []Guess{
		{CountryID: "AA", Probability: 0.1},
		{CountryID: "BB", Probability: 0.2},
		{CountryID: "CC", Probability: 0.3},
	}
	out := Rank(in, 2)
	assert.Equal(t, []string{"CC", "BB"}, ids(out))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	in := []Guess{
		{CountryID: "AA", Probability: 0.1},
		{CountryID: "BB", Probability: 0.9},
	}
	_ = Rank(in, 5)
	assert.Equal(t, "AA", in[0].CountryID)
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil, 5))
	assert.Empty(t, Rank([]Guess{{CountryID: "AA", Probability: 0.5}}, 0))
}

func ids(guesses []Guess) []string {
	out := make([]string, 0, len(guesses))
	for _, g := range guesses {
		out = append(out, g.CountryID)
	}
	return out
}
