package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/fireballs/brady-stats/internal/models"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		APIRoot:    srv.URL + "/api",
		Backoff:    time.Millisecond,
	})
}

func TestListMatches(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/matches/all" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{"id": 7, "data": {"server": "NA", "start_time": 1700000000000, "duration": 600, "map": "field"},
			 "players": ["alice", {"username": "bob", "uuid": "b-1"}]}
		]`))
	}))

	matches, err := c.ListMatches(context.Background())
	if err != nil {
		t.Fatalf("ListMatches error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if m.ID != 7 || m.Data.Duration != 600 || m.Data.Server != "NA" {
		t.Errorf("Unexpected match %+v", m)
	}
	if len(m.Players) != 2 || m.Players[0].Username != "alice" || m.Players[1].UUID != "b-1" {
		t.Errorf("Unexpected players %+v", m.Players)
	}
}

func TestListsNon200IsEmpty(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	matches, err := c.ListMatches(context.Background())
	if err != nil {
		t.Fatalf("ListMatches error: %v", err)
	}
	if matches == nil || len(matches) != 0 {
		t.Errorf("Expected empty non-nil list, got %#v", matches)
	}

	tournaments, err := c.ListTournaments(context.Background())
	if err != nil {
		t.Fatalf("ListTournaments error: %v", err)
	}
	if tournaments == nil || len(tournaments) != 0 {
		t.Errorf("Expected empty non-nil list, got %#v", tournaments)
	}
}

func TestGetMatchUber(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/matches/3/uber":
			w.Write([]byte(`{"id": 3, "data": {"duration": 300}, "players": [
				{"username": "alice", "uuid": "a-1", "stats": {"kills": "4", "damage_dealt": 120.5, "team": 1}}
			]}`))
		case "/api/matches/4/uber":
			w.Write([]byte(`null`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	uber, err := c.GetMatchUber(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetMatchUber error: %v", err)
	}
	if len(uber.Players) != 1 {
		t.Fatalf("Expected 1 player, got %d", len(uber.Players))
	}
	p := uber.Players[0]
	if p.Stats.Kills != 4 || p.Stats.DamageDealt != 120.5 || p.Stats.Team != 1 {
		t.Errorf("Unexpected stats %+v", p.Stats)
	}

	for _, id := range []int{4, 5} {
		_, err := c.GetMatchUber(context.Background(), id)
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("match %d: expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestGetTournamentNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	_, err := c.GetTournament(context.Background(), 9)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRetriesOn5xx(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"id": 1, "name": "Cup", "date": 1700000000000, "matchCount": 3}]`))
	}))

	items, err := c.ListTournaments(context.Background())
	if err != nil {
		t.Fatalf("ListTournaments error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Cup" || items[0].MatchCount != 3 {
		t.Errorf("Unexpected items %+v", items)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("Expected 3 calls, got %d", got)
	}
}

func TestRetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := c.GetMatchUber(context.Background(), 1)
	if err == nil {
		t.Fatal("Expected error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("5xx must not be reported as not found: %v", err)
	}
	if !crerr.Is(err, errTransient) {
		t.Errorf("Expected transient error, got %v", err)
	}
	if got := calls.Load(); got != defaultMaxRetries+1 {
		t.Errorf("Expected %d calls, got %d", defaultMaxRetries+1, got)
	}
}

func TestNoRetryOn4xx(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))

	_, _ = c.GetTournament(context.Background(), 1)
	if got := calls.Load(); got != 1 {
		t.Errorf("Expected 1 call, got %d", got)
	}
}

func TestContextCancel(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	c.backoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.ListMatches(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSharedFetchSurvivesCallerCancel(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case started <- struct{}{}:
		default:
		}
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
		w.Write([]byte(`[{"id": 3, "data": {"server": "EU"}, "players": []}]`))
	}))

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.ListMatches(ctxA)
		errA <- err
	}()
	<-started

	type result struct {
		matches []models.Match
		err     error
	}
	resB := make(chan result, 1)
	go func() {
		m, err := c.ListMatches(context.Background())
		resB <- result{m, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled for the canceled caller, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Canceled caller still waiting on the shared fetch")
	}

	close(release)
	select {
	case res := <-resB:
		if res.err != nil {
			t.Fatalf("Expected live caller to get the payload, got %v", res.err)
		}
		if len(res.matches) != 1 || res.matches[0].ID != 3 {
			t.Errorf("Unexpected matches %+v", res.matches)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Live caller never got a result")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("Expected 1 shared upstream call, got %d", n)
	}
}

func TestPing(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))

	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping error: %v", err)
	}
	status.Store(http.StatusInternalServerError)
	if err := c.Ping(context.Background()); err == nil {
		t.Error("Expected ping error on 500")
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(ClientConfig{})
	if c.root != DefaultAPIRoot {
		t.Errorf("Expected default root, got %s", c.root)
	}
	if c.maxRetries != defaultMaxRetries {
		t.Errorf("Expected %d retries, got %d", defaultMaxRetries, c.maxRetries)
	}

	c = NewClient(ClientConfig{APIRoot: "http://x/api", MaxRetries: -1})
	if c.root != "http://x/api/" {
		t.Errorf("Expected trailing slash, got %s", c.root)
	}
	if c.maxRetries != 0 {
		t.Errorf("Expected retries disabled, got %d", c.maxRetries)
	}
}
