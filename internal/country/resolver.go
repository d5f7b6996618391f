// Package country maps ISO 3166-1 alpha-2 codes to human-readable names.
package country

import (
	"fmt"
	"strings"

	"github.com/biter777/countries"
)

// Resolve converts a two-letter country code into a full country name.
// Unknown or malformed codes produce a readable fallback instead of an error,
// so callers can always render whatever the prediction API returned.
func Resolve(code string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return fallback(code)
	}
	// ByName maps some unassigned codes (XX) to non-Unknown sentinels,
	// so validity is checked instead of comparing against Unknown.
	cc := countries.ByName(trimmed)
	if !cc.IsValid() {
		return fallback(code)
	}
	return cc.String()
}

func fallback(code string) string {
	return fmt.Sprintf("Неизвестная страна (%s)", code)
}
