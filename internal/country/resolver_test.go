package country

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveKnownCodes(t *testing.T) {
	assert.Equal(t, "Germany", Resolve("DE"))
	assert.Equal(t, "Japan", Resolve("JP"))
	assert.Contains(t, Resolve("US"), "United States")
}

func TestResolveNormalizesInput(t *testing.T) {
	assert.Equal(t, Resolve("DE"), Resolve(" de "))
}

func TestResolveUnknownCode(t *testing.T) {
	// XX maps to a non-Unknown sentinel inside the registry, ZZ does not;
	// both must fall back the same way.
	assert.Equal(t, "Неизвестная страна (XX)", Resolve("XX"))
	assert.Equal(t, "Неизвестная страна (ZZ)", Resolve("ZZ"))
	assert.Equal(t, "Неизвестная страна ()", Resolve(""))
}
