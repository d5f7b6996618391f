package bot

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"nationbot/internal/country"
	"nationbot/internal/nationalize"
)

// formatResults builds the numbered top-N summary shown after a prediction.
func formatResults(name string, guesses []nationalize.Guess) string {
	lines := lo.Map(guesses, func(g nationalize.Guess, i int) string {
		return fmt.Sprintf("%d. %s - %.1f%%", i+1, country.Resolve(g.CountryID), g.Probability*100)
	})
	return fmt.Sprintf(msgResultsHeader, name) + strings.Join(lines, "\n")
}

// validName reports whether a trimmed query is long enough to look up.
func validName(name string) bool {
	return len([]rune(name)) >= 2
}
