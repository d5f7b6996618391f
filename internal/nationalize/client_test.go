package nationalize

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Lena", r.URL.Query().Get("name"))
		assert.Equal(t, "secret", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1234,"name":"Lena","country":[{"country_id":"RU","probability":0.42},{"country_id":"DE","probability":0.11}]}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, APIKey: "secret"})
	guesses, err := c.Predict(context.Background(), "Lena")
	require.NoError(t, err)
	require.Len(t, guesses, 2)
	assert.Equal(t, "RU", guesses[0].CountryID)
	assert.InDelta(t, 0.42, guesses[0].Probability, 1e-9)
}

func TestPredictEmptyCountryList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count":0,"name":"zzzz","country":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	guesses, err := c.Predict(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, guesses)
	assert.NotNil(t, guesses)
}

func TestPredictMissingCountryField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"count":0,"name":"zzzz"}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	guesses, err := c.Predict(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, guesses)
}

func TestPredictServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	_, err := c.Predict(context.Background(), "Lena")
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "NETWORK_ERROR", netErr.Code())
}

func TestPredictTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	_, err := c.Predict(context.Background(), "Lena")
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestPredictMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"country": "not-an-array"`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	_, err := c.Predict(context.Background(), "Lena")
	var unexpected *UnexpectedError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, "UNEXPECTED_ERROR", unexpected.Code())
}

func TestPredictContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(Options{BaseURL: srv.URL})
	_, err := c.Predict(ctx, "Lena")
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}
