package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"git.sr.ht/~gioverse/scroll/list"
	"git.sr.ht/~gioverse/scroll/source"
	"git.sr.ht/~gioverse/scroll/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakePager records the arguments it was called with.
type fakePager struct {
	limit int
	token string
	err   error
}

func (p *fakePager) Page(ctx context.Context, limit int, token string) ([]list.Item, string, error) {
	p.limit, p.token = limit, token
	if p.err != nil {
		return nil, "", p.err
	}
	items := make([]list.Item, limit)
	for ii := range items {
		items[ii] = list.Item{ID: "x", Content: "hi"}
	}
	return items, "next", nil
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(t, New(&fakePager{}, zerolog.Nop()).Routes(), "/healthz")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMessagesLimit(t *testing.T) {
	for _, tc := range []struct {
		query string
		limit int
	}{
		{query: "", limit: DefaultLimit},
		{query: "?limit=5", limit: 5},
		{query: "?limit=0", limit: 1},
		{query: "?limit=-3", limit: 1},
		{query: "?limit=1000", limit: MaxLimit},
	} {
		t.Run(tc.query, func(t *testing.T) {
			p := &fakePager{}
			rec := get(t, New(p, zerolog.Nop()).Routes(), "/messages"+tc.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
			}
			if p.limit != tc.limit {
				t.Errorf("expected limit %d, got %d", tc.limit, p.limit)
			}
			var r source.Response
			if err := json.Unmarshal(rec.Body.Bytes(), &r); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if r.Count != tc.limit || len(r.Messages) != tc.limit || r.PageToken != "next" {
				t.Errorf("unexpected response %+v", r)
			}
		})
	}
}

func TestMessagesErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		target string
		err    error
		code   int
	}{
		{name: "malformed limit", target: "/messages?limit=ten", code: http.StatusBadRequest},
		{name: "bad token", target: "/messages?pageToken=zz", err: store.ErrBadToken, code: http.StatusBadRequest},
		{name: "store failure", target: "/messages", err: errors.New("disk on fire"), code: http.StatusInternalServerError},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, New(&fakePager{err: tc.err}, zerolog.Nop()).Routes(), tc.target)
			if rec.Code != tc.code {
				t.Errorf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

// TestClientAgainstStore pages through a seeded store with the HTTP client.
func TestClientAgainstStore(t *testing.T) {
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer s.Close()
	ctx := context.Background()
	if err := s.Seed(ctx, 45); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	srv := httptest.NewServer(New(s, zerolog.Nop()).Routes())
	defer srv.Close()

	c := source.NewClient(srv.URL, time.Second, nil)
	var (
		token string
		total int
	)
	for {
		page, err := c.Fetch(ctx, 20, token)
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if len(page.Items) == 0 {
			break
		}
		total += len(page.Items)
		token = page.Token
	}
	if total != 45 {
		t.Errorf("expected 45 messages, got %d", total)
	}
}

func TestRunStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(&fakePager{}, zerolog.Nop()).Run(ctx, "127.0.0.1:0")
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
