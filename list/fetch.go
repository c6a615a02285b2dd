package list

import "context"

// Page is a batch of items returned by a PageSource.
type Page struct {
	Items []Item
	// Token is the continuation token to pass to the next fetch.
	Token string
}

// PageSource provides the logical sequence one page at a time. Fetch is
// invoked at most once per logical page, never concurrently with itself,
// and off the goroutine that owns the list. count is a positive hint of how
// many items are wanted; token is empty on the first call.
type PageSource interface {
	Fetch(ctx context.Context, count int, token string) (Page, error)
}

// SourceFunc adapts a function to the PageSource interface.
type SourceFunc func(ctx context.Context, count int, token string) (Page, error)

// Fetch calls f(ctx, count, token).
func (f SourceFunc) Fetch(ctx context.Context, count int, token string) (Page, error) {
	return f(ctx, count, token)
}

// PageResult is the outcome of a fetch, delivered back to the goroutine that
// owns the list.
type PageResult struct {
	Page
	// Requested is the count the fetch was issued with.
	Requested int
	// Err is non-nil if the fetch failed. It always wraps ErrFetch.
	Err error
}

// FetchCursor tracks the single outstanding page request.
type FetchCursor struct {
	// Token is the continuation token of the next page.
	Token string
	// InFlight is set while a fetch is outstanding. No fetch is issued
	// while it is set.
	InFlight bool
}
