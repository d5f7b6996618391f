package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nationbot/internal/nationalize"
)

func TestFormatResultsTopFive(t *testing.T) {
	guesses := []nationalize.Guess{
		{CountryID: "DE", Probability: 0.31},
		{CountryID: "AT", Probability: 0.22},
		{CountryID: "CH", Probability: 0.14},
		{CountryID: "NL", Probability: 0.09},
		{CountryID: "BE", Probability: 0.07},
		{CountryID: "LU", Probability: 0.05},
	}
	ranked := nationalize.Rank(guesses, TopN)
	require.Len(t, ranked, 5)

	text := formatResults("Hans", ranked)
	lines := strings.Split(text, "\n")
	require.Len(t, lines, 6)

	assert.Contains(t, lines[0], "Hans")
	for i := 1; i <= 5; i++ {
		assert.Regexp(t, `^\d\. .+ - \d+\.\d%$`, lines[i])
	}
	assert.True(t, strings.HasPrefix(lines[1], "1. "))
	assert.True(t, strings.HasSuffix(lines[1], " - 31.0%"))
	assert.True(t, strings.HasPrefix(lines[5], "5. "))
	assert.True(t, strings.HasSuffix(lines[5], " - 7.0%"))
	assert.Contains(t, lines[1], "Germany")
}

func TestFormatResultsSingleGuess(t *testing.T) {
	text := formatResults("Kenji", []nationalize.Guess{{CountryID: "JP", Probability: 0.777}})
	assert.Contains(t, text, "1. Japan - 77.7%")
}

func TestValidName(t *testing.T) {
	assert.False(t, validName(""))
	assert.False(t, validName("a"))
	assert.False(t, validName("я"))
	assert.True(t, validName("ян"))
	assert.True(t, validName("Kim"))
}
