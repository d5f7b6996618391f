// Package nationalize talks to the nationalize.io nationality prediction API.
package nationalize

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nationbot/core/logger"

	"log/slog"
)

const (
	// DefaultBaseURL is the public nationalize.io endpoint.
	DefaultBaseURL = "https://api.nationalize.io/"

	// DefaultTimeout bounds a single prediction request end to end.
	DefaultTimeout = 15 * time.Second

	maxResponseBytes = 1 << 20
)

// Guess is a single country prediction returned by the API.
type Guess struct {
	CountryID   string  `json:"country_id"`
	Probability float64 `json:"probability"`
}

type apiResponse struct {
	Count   int     `json:"count"`
	Name    string  `json:"name"`
	Country []Guess `json:"country"`
}

// Options configure a prediction Client.
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client queries the prediction API. Safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient builds a Client with sane defaults for unset options.
func NewClient(opts Options) *Client {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: base,
		apiKey:  strings.TrimSpace(opts.APIKey),
		httpc:   httpc,
	}
}

// Predict asks the API which nationalities are likely for the given name.
// An empty slice with a nil error means the API has no data for the name.
func (c *Client) Predict(ctx context.Context, name string) ([]Guess, error) {
	start := time.Now()

	reqURL, err := c.buildURL(name)
	if err != nil {
		return nil, &UnexpectedError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &UnexpectedError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logOutcome(ctx, name, 0, start, err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.logOutcome(ctx, name, 0, start, err)
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status: %s", resp.Status)
		c.logOutcome(ctx, name, 0, start, err)
		return nil, &NetworkError{Err: err}
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.logOutcome(ctx, name, 0, start, err)
		return nil, &UnexpectedError{Err: fmt.Errorf("decode response: %w", err)}
	}

	guesses := parsed.Country
	if guesses == nil {
		guesses = []Guess{}
	}
	c.logOutcome(ctx, name, len(guesses), start, nil)
	return guesses, nil
}

func (c *Client) buildURL(name string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("name", name)
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) logOutcome(ctx context.Context, name string, count int, start time.Time, err error) {
	if logger.SVCPredict == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("event", "predict"),
		slog.Int("name_len", len([]rune(name))),
		slog.Int("countries", count),
		slog.Duration("duration", logger.Took(start)),
		slog.String("status", logger.Status(err)),
	}
	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("err", logger.Sanitize(err.Error())))
	} else if !logger.ShouldSampleDebug() {
		return
	}
	logger.SVCPredict.LogAttrs(ctx, level, "predict", attrs...)
}
