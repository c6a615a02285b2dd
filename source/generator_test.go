package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"git.sr.ht/~gioverse/scroll/list"
)

func TestGeneratorPages(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := &Generator{Limit: 25, Now: now, Authors: 3}
	ctx := context.Background()
	var (
		token string
		seen  []list.Item
	)
	for _, want := range []int{10, 10, 5, 0} {
		page, err := g.Fetch(ctx, 10, token)
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if len(page.Items) != want {
			t.Fatalf("expected %d items, got %d", want, len(page.Items))
		}
		seen = append(seen, page.Items...)
		token = page.Token
	}
	if token != "25" {
		t.Errorf("expected final token 25, got %q", token)
	}
	for ii, item := range seen {
		if item.Content == "" || item.Author.Name == "" {
			t.Errorf("item %d: expected generated content, got %+v", ii, item)
		}
		if ii > 0 && !item.UpdatedAt.Before(seen[ii-1].UpdatedAt) {
			t.Errorf("item %d: expected older messages further down", ii)
		}
	}
	if !seen[0].UpdatedAt.Equal(now) {
		t.Errorf("expected first message at %v, got %v", now, seen[0].UpdatedAt)
	}
}

func TestGeneratorInvalidToken(t *testing.T) {
	g := &Generator{}
	for _, token := range []string{"abc", "-4"} {
		if _, err := g.Fetch(context.Background(), 1, token); !errors.Is(err, list.ErrFetch) {
			t.Errorf("token %q: expected ErrFetch, got %v", token, err)
		}
	}
}

func TestGeneratorLatencyHonoursContext(t *testing.T) {
	g := &Generator{Latency: time.Hour}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := g.Fetch(ctx, 5, "")
	if !errors.Is(err, list.ErrFetch) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected cancelled fetch, got %v", err)
	}
}
