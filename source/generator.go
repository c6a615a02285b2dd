package source

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	lorem "github.com/drhodes/golorem"

	"git.sr.ht/~gioverse/scroll/list"
)

// Generator is an in-process page source of lorem ipsum messages. Tokens are
// the decimal offset of the next message.
type Generator struct {
	// Latency simulates the round trip of each fetch.
	Latency time.Duration
	// Limit, if positive, bounds the number of messages available.
	Limit int
	// Now anchors the generated timestamps. Defaults to the time of the
	// first fetch.
	Now time.Time
	// Authors is the number of distinct authors. Defaults to 12.
	Authors int

	once    sync.Once
	authors []list.Author
}

// Fetch implements list.PageSource.
func (g *Generator) Fetch(ctx context.Context, count int, token string) (list.Page, error) {
	g.once.Do(g.init)
	offset := 0
	if token != "" {
		n, err := strconv.Atoi(token)
		if err != nil || n < 0 {
			return list.Page{}, fmt.Errorf("%w: invalid page token %q", list.ErrFetch, token)
		}
		offset = n
	}
	if g.Latency > 0 {
		t := time.NewTimer(g.Latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return list.Page{}, fmt.Errorf("%w: %w", list.ErrFetch, ctx.Err())
		case <-t.C:
		}
	}
	if g.Limit > 0 && offset+count > g.Limit {
		count = g.Limit - offset
	}
	if count < 0 {
		count = 0
	}
	items := make([]list.Item, count)
	for ii := range items {
		items[ii] = g.message(offset + ii)
	}
	return list.Page{Items: items, Token: strconv.Itoa(offset + count)}, nil
}

func (g *Generator) init() {
	if g.Now.IsZero() {
		g.Now = time.Now()
	}
	if g.Authors <= 0 {
		g.Authors = 12
	}
	for ii := 0; ii < g.Authors; ii++ {
		g.authors = append(g.authors, list.Author{
			Name:     capitalize(lorem.Word(4, 10)) + " " + capitalize(lorem.Word(4, 12)),
			PhotoURL: fmt.Sprintf("/photos/%d.jpg", ii),
		})
	}
}

// message generates the message at the given offset. Older messages sit
// further down the list.
func (g *Generator) message(index int) list.Item {
	return list.Item{
		ID:        strconv.Itoa(index),
		Author:    g.authors[rand.Intn(len(g.authors))],
		UpdatedAt: g.Now.Add(-time.Duration(index) * 37 * time.Minute),
		Content:   lorem.Paragraph(1, 3),
	}
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
