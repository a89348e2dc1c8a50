// Package upstream is the REST client of the community stats API.
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/fireballs/brady-stats/internal/models"
)

const (
	DefaultAPIRoot    = "https://tombrady.fireballs.me/api/"
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 2
	maxBodyBytes      = 8 << 20
)

// Endpoint names used in metrics and logs.
const (
	endpointMatches     = "matches"
	endpointMatchUber   = "match_uber"
	endpointTournaments = "tournaments"
	endpointTournament  = "tournament"
)

var (
	// ErrNotFound is models.ErrNotFound, re-exported for callers of this package.
	ErrNotFound = models.ErrNotFound

	errTransient = crerr.New("upstream transient failure")
	errStatus    = crerr.New("upstream unexpected status")
)

// ClientConfig configures a Client.
type ClientConfig struct {
	HTTPClient *http.Client
	APIRoot    string
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration // first retry delay; grows linearly
	Logger     *zap.Logger
}

// Client fetches match and tournament payloads. It keeps no cache: every call
// hits the API, but identical concurrent GETs share one request.
type Client struct {
	httpClient *http.Client
	root       string
	maxRetries int
	backoff    time.Duration
	timeout    time.Duration
	logger     *zap.SugaredLogger
	flight     singleflight.Group
}

// NewClient returns a client for cfg. Zero values fall back to defaults and a
// negative MaxRetries disables retries.
func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	if httpClient.Timeout > 0 {
		timeout = httpClient.Timeout
	}

	root := strings.TrimSpace(cfg.APIRoot)
	if root == "" {
		root = DefaultAPIRoot
	}
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}

	retries := cfg.MaxRetries
	if retries == 0 {
		retries = defaultMaxRetries
	}
	if retries < 0 {
		retries = 0
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	return &Client{
		httpClient: httpClient,
		root:       root,
		maxRetries: retries,
		backoff:    backoff,
		timeout:    timeout,
		logger:     logger.Sugar(),
	}
}

// ListMatches fetches the recent matches list. A non-200 answer is an empty list.
func (c *Client) ListMatches(ctx context.Context) ([]models.Match, error) {
	var out []models.Match
	found, err := c.getJSON(ctx, endpointMatches, "matches/all", &out)
	if err != nil {
		return nil, err
	}
	if !found || out == nil {
		return []models.Match{}, nil
	}
	return out, nil
}

// GetMatchUber fetches one match with every player's stats.
func (c *Client) GetMatchUber(ctx context.Context, id int) (*models.Uber, error) {
	var out *models.Uber
	found, err := c.getJSON(ctx, endpointMatchUber, fmt.Sprintf("matches/%d/uber", id), &out)
	if err != nil {
		return nil, err
	}
	if !found || out == nil {
		return nil, crerr.Wrapf(ErrNotFound, "match %d", id)
	}
	return out, nil
}

// ListTournaments fetches the tournament list. A non-200 answer is an empty list.
func (c *Client) ListTournaments(ctx context.Context) ([]models.TournamentListItem, error) {
	var out []models.TournamentListItem
	found, err := c.getJSON(ctx, endpointTournaments, "tournaments/all", &out)
	if err != nil {
		return nil, err
	}
	if !found || out == nil {
		return []models.TournamentListItem{}, nil
	}
	return out, nil
}

// GetTournament fetches one tournament.
func (c *Client) GetTournament(ctx context.Context, id int) (*models.TournamentDetail, error) {
	var out *models.TournamentDetail
	found, err := c.getJSON(ctx, endpointTournament, fmt.Sprintf("tournaments/%d", id), &out)
	if err != nil {
		return nil, err
	}
	if !found || out == nil {
		return nil, crerr.Wrapf(ErrNotFound, "tournament %d", id)
	}
	return out, nil
}

// Ping checks that the API answers at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.root+"matches/all", nil)
	if err != nil {
		return crerr.Wrap(err, "build request")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return crerr.Wrap(err, "ping upstream")
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
	if resp.StatusCode >= 500 {
		return crerr.Wrapf(errStatus, "ping upstream: status=%d", resp.StatusCode)
	}
	return nil
}

// getJSON fetches path and decodes it into target. found is false when the
// API answered with a non-200 status that is not worth retrying.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, target any) (found bool, err error) {
	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		switch {
		case err != nil:
			requestsTotal.WithLabelValues(endpoint, outcomeError).Inc()
		case !found:
			requestsTotal.WithLabelValues(endpoint, outcomeNotFound).Inc()
		default:
			requestsTotal.WithLabelValues(endpoint, outcomeOK).Inc()
		}
	}()

	url := c.root + path
	// The shared fetch is detached from ctx so one caller leaving does not
	// fail the others waiting on the same URL.
	ch := c.flight.DoChan(url, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.requestBudget())
		defer cancel()
		return c.execute(fctx, endpoint, url)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return false, res.Err
	}
	raw, _ := res.Val.([]byte)
	if len(bytes.TrimSpace(raw)) == 0 {
		return false, nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return false, crerr.Wrapf(err, "decode %s payload", endpoint)
	}
	return true, nil
}

// requestBudget bounds a shared fetch: every attempt plus the linear backoff
// between them.
func (c *Client) requestBudget() time.Duration {
	n := time.Duration(c.maxRetries)
	return c.timeout*(n+1) + c.backoff*n*(n+1)/2
}

// execute performs a GET with retries. It returns nil bytes and no error for
// a non-retryable non-200 status.
func (c *Client) execute(ctx context.Context, endpoint, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			retriesTotal.WithLabelValues(endpoint).Inc()
			timer := time.NewTimer(time.Duration(attempt) * c.backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = crerr.Mark(crerr.Wrapf(err, "send request to %s", endpoint), errTransient)
			continue
		}

		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		_ = resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			lastErr = crerr.Mark(crerr.Wrapf(errStatus, "%s: status=%d", endpoint, resp.StatusCode), errTransient)
			continue
		case resp.StatusCode != http.StatusOK:
			return nil, nil
		case readErr != nil:
			lastErr = crerr.Mark(crerr.Wrapf(readErr, "read %s response", endpoint), errTransient)
			continue
		}
		return raw, nil
	}

	c.logger.Warnw("Upstream request failed",
		"endpoint", endpoint,
		"url", url,
		"attempts", c.maxRetries+1,
		"error", lastErr,
	)
	return nil, lastErr
}
