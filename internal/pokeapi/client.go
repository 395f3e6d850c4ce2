// Package pokeapi fetches creature records from the PokeAPI REST service.
// Requests are paced by a token bucket limiter and are never retried; every
// failure a user can see collapses into ErrNotFound.
package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nzvengeance/pokedex/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://pokeapi.co/api/v2"
	DefaultUserAgent = "Pokedex/1.0"
	DefaultRateLimit = 5 // requests per second
	DefaultBurst     = 5
)

// ErrNotFound is returned for unknown identifiers, non-200 responses and
// payloads missing expected keys.
var ErrNotFound = errors.New("pokemon not found")

// NetworkError is a transport-level failure. It matches ErrNotFound so callers
// that only care about the user-facing outcome can test for that alone.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("requesting %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNotFound }

// Recorder receives the raw payload of every successful fetch. It is a write-only
// sink; nothing in the application reads a recorded fetch back.
type Recorder interface {
	RecordFetch(ctx context.Context, fetch models.LastFetch) error
}

// Client is a rate-limited HTTP client for the Pokemon endpoint
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	userAgent   string
	recorder    Recorder
}

// NewClient creates a new rate-limited PokeAPI client. The transport keeps its
// default timeout behaviour.
func NewClient(baseURL string, rateLimit float64, burst int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if rateLimit <= 0 {
		rateLimit = DefaultRateLimit
	}
	if burst <= 0 {
		burst = DefaultBurst
	}

	return &Client{
		httpClient:  &http.Client{},
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), burst),
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   DefaultUserAgent,
	}
}

// SetRecorder installs the sink that receives successful payloads.
func (c *Client) SetRecorder(r Recorder) {
	c.recorder = r
}

// FetchByID is Fetch for a numeric id.
func (c *Client) FetchByID(ctx context.Context, id int) (models.Record, error) {
	if id < 1 {
		return models.Record{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return c.Fetch(ctx, strconv.Itoa(id))
}

// Fetch retrieves one creature by lower-cased name or numeric id.
func (c *Client) Fetch(ctx context.Context, identifier string) (models.Record, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		return models.Record{}, fmt.Errorf("%w: empty identifier", ErrNotFound)
	}

	endpoint := fmt.Sprintf("%s/pokemon/%s", c.baseURL, url.PathEscape(identifier))
	log.Debug().Str("url", endpoint).Str("identifier", identifier).Msg("fetching pokemon")

	body, err := c.doGet(ctx, endpoint)
	if err != nil {
		return models.Record{}, fmt.Errorf("fetching %q: %w", identifier, err)
	}

	rec, err := ParsePokemon(body)
	if err != nil {
		return models.Record{}, fmt.Errorf("parsing %q: %w", identifier, err)
	}

	log.Info().Int("id", rec.ID).Str("name", rec.Name).Msg("fetched pokemon")

	if c.recorder != nil {
		fetch := models.LastFetch{
			Identifier: identifier,
			PokemonID:  rec.ID,
			Name:       rec.Name,
			RawJSON:    string(body),
			FetchedAt:  time.Now().UTC(),
		}
		if err := c.recorder.RecordFetch(ctx, fetch); err != nil {
			log.Warn().Err(err).Int("id", rec.ID).Msg("failed to record last fetch")
		}
	}

	return rec, nil
}

// --- HTTP helpers ---

func (c *Client) doGet(ctx context.Context, endpoint string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, &NetworkError{URL: endpoint, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, &NetworkError{URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10)) // 1KB for error messages
		limit := len(body)
		if limit > 200 {
			limit = 200
		}
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrNotFound, resp.StatusCode, strings.TrimSpace(string(body[:limit])))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20)) // 10MB limit
	if err != nil {
		return nil, &NetworkError{URL: endpoint, Err: err}
	}
	return body, nil
}
