// Package source provides the page sources feeding a list: a client of the
// message API and an in-process generator of lorem ipsum messages.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"git.sr.ht/~gioverse/scroll/list"
)

// Response is the body of a message API page.
type Response struct {
	Count     int         `json:"count"`
	PageToken string      `json:"pageToken"`
	Messages  []list.Item `json:"messages"`
}

// message is the wire form of a list item. The reference API uses numeric
// ids, the demo server uses strings.
type message struct {
	ID      messageID   `json:"id"`
	Content string      `json:"content"`
	Updated time.Time   `json:"updated"`
	Author  list.Author `json:"author"`
}

type messageID string

func (id *messageID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = messageID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("message id: %w", err)
	}
	*id = messageID(n.String())
	return nil
}

// Client fetches pages of messages from the message API:
//
//	GET {Endpoint}/messages?limit=N&pageToken=T
type Client struct {
	Endpoint string
	HTTP     *http.Client
	// Limiter, if set, bounds the rate of requests.
	Limiter *rate.Limiter
	Logger  *zerolog.Logger
}

// NewClient constructs a client of the API at endpoint. A non-positive
// timeout leaves requests bounded only by their context.
func NewClient(endpoint string, timeout time.Duration, limiter *rate.Limiter) *Client {
	if timeout < 0 {
		timeout = 0
	}
	return &Client{
		Endpoint: strings.TrimRight(endpoint, "/"),
		HTTP:     &http.Client{Timeout: timeout},
		Limiter:  limiter,
	}
}

// NewLimiter returns a limiter allowing rps requests per second with the
// given burst, or nil if rps is not positive.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// Fetch implements list.PageSource. Every error wraps list.ErrFetch.
func (c *Client) Fetch(ctx context.Context, count int, token string) (list.Page, error) {
	page, err := c.fetch(ctx, count, token)
	if err != nil {
		return list.Page{}, fmt.Errorf("%w: %w", list.ErrFetch, err)
	}
	return page, nil
}

func (c *Client) fetch(ctx context.Context, count int, token string) (list.Page, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return list.Page{}, fmt.Errorf("rate limit: %w", err)
		}
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(count))
	if token != "" {
		q.Set("pageToken", token)
	}
	u := c.Endpoint + "/messages?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return list.Page{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return list.Page{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return list.Page{}, fmt.Errorf("message API error: %s (%s)", resp.Status, strings.TrimSpace(string(body)))
	}
	var r struct {
		PageToken string    `json:"pageToken"`
		Messages  []message `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return list.Page{}, fmt.Errorf("decode response: %w", err)
	}
	items := make([]list.Item, len(r.Messages))
	for ii, m := range r.Messages {
		items[ii] = list.Item{
			ID:        string(m.ID),
			Author:    m.Author,
			UpdatedAt: m.Updated,
			Content:   m.Content,
		}
	}
	if c.Logger != nil {
		c.Logger.Debug().
			Int("count", len(items)).
			Dur("elapsed", time.Since(start)).
			Msg("fetched messages")
	}
	return list.Page{Items: items, Token: r.PageToken}, nil
}
