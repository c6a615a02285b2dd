package source

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"git.sr.ht/~gioverse/scroll/list"
)

func TestClientFetch(t *testing.T) {
	updated := time.Date(2015, 2, 1, 7, 46, 23, 0, time.UTC)
	for _, tc := range []struct {
		name    string
		handler http.HandlerFunc
		id      string
	}{
		{
			name: "numeric ids",
			id:   "1",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{
					"count": 1,
					"pageToken": "next",
					"messages": [{
						"id": 1,
						"content": "hello",
						"updated": "2015-02-01T07:46:23Z",
						"author": {"name": "William Shakespeare", "photoUrl": "/photos/William_Shakespeare.jpg"}
					}]
				}`))
			},
		},
		{
			name: "string ids",
			id:   "4f1c",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(Response{
					Count:     1,
					PageToken: "next",
					Messages: []list.Item{{
						ID:        "4f1c",
						Content:   "hello",
						UpdatedAt: updated,
						Author:    list.Author{Name: "William Shakespeare", PhotoURL: "/photos/William_Shakespeare.jpg"},
					}},
				})
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var gotLimit, gotToken string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/messages" {
					t.Errorf("unexpected path %q", r.URL.Path)
				}
				gotLimit = r.URL.Query().Get("limit")
				gotToken = r.URL.Query().Get("pageToken")
				tc.handler(w, r)
			}))
			defer srv.Close()

			page, err := NewClient(srv.URL+"/", time.Second, nil).Fetch(context.Background(), 10, "abc")
			if err != nil {
				t.Fatalf("Fetch() error: %v", err)
			}
			if gotLimit != "10" || gotToken != "abc" {
				t.Errorf("unexpected query limit=%q pageToken=%q", gotLimit, gotToken)
			}
			if page.Token != "next" || len(page.Items) != 1 {
				t.Fatalf("unexpected page %+v", page)
			}
			item := page.Items[0]
			if item.ID != tc.id {
				t.Errorf("expected id %q, got %q", tc.id, item.ID)
			}
			if item.Content != "hello" || item.Author.PhotoURL != "/photos/William_Shakespeare.jpg" || !item.UpdatedAt.Equal(updated) {
				t.Errorf("unexpected item %+v", item)
			}
		})
	}
}

func TestClientOmitsEmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["pageToken"]; ok {
			t.Errorf("expected no pageToken on the first page")
		}
		w.Write([]byte(`{"messages": []}`))
	}))
	defer srv.Close()
	page, err := NewClient(srv.URL, 0, nil).Fetch(context.Background(), 5, "")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(page.Items) != 0 || page.Token != "" {
		t.Errorf("expected empty page, got %+v", page)
	}
}

func TestClientErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"messages": [`))
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			_, err := NewClient(srv.URL, time.Second, nil).Fetch(context.Background(), 5, "")
			if !errors.Is(err, list.ErrFetch) {
				t.Errorf("expected error wrapping ErrFetch, got %v", err)
			}
		})
	}
}

func TestClientRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"messages": []}`))
	}))
	defer srv.Close()
	// One token, refilled far in the future.
	c := NewClient(srv.URL, time.Second, rate.NewLimiter(rate.Every(time.Hour), 1))
	if _, err := c.Fetch(context.Background(), 1, ""); err != nil {
		t.Fatalf("expected first request to pass, got %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Fetch(ctx, 1, "")
	if !errors.Is(err, list.ErrFetch) {
		t.Errorf("expected limited request to fail with ErrFetch, got %v", err)
	}
}

func TestNewLimiter(t *testing.T) {
	if NewLimiter(0, 3) != nil {
		t.Errorf("expected no limiter for a zero rate")
	}
	l := NewLimiter(2, 0)
	if l == nil || l.Burst() != 1 || l.Limit() != 2 {
		t.Errorf("unexpected limiter %+v", l)
	}
}
