package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nationbot/internal/nationalize"
)

func decodePNG(t *testing.T, img []byte) (int, int) {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestRenderProducesPNG(t *testing.T) {
	guesses := []nationalize.Guess{
		{CountryID: "RU", Probability: 0.42},
		{CountryID: "DE", Probability: 0.11},
		{CountryID: "UA", Probability: 0.08},
		{CountryID: "KZ", Probability: 0.05},
		{CountryID: "BY", Probability: 0.03},
	}

	img, err := Render(guesses)
	require.NoError(t, err)
	require.NotEmpty(t, img)

	w, h := decodePNG(t, img)
	assert.Greater(t, w, 0)
	assert.Greater(t, h, 0)
}

func TestRenderSingleBar(t *testing.T) {
	img, err := Render([]nationalize.Guess{{CountryID: "JP", Probability: 1.0}})
	require.NoError(t, err)
	_, _ = decodePNG(t, img)
}

func TestRenderUnknownCountryCode(t *testing.T) {
	img, err := Render([]nationalize.Guess{{CountryID: "XX", Probability: 0.5}})
	require.NoError(t, err)
	_, _ = decodePNG(t, img)
}

func TestRenderNoBars(t *testing.T) {
	img, err := Render(nil)
	require.NoError(t, err)
	_, _ = decodePNG(t, img)
}
