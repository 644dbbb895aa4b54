package pubfront

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrNoMorePages is returned by LoadMore when the cursor is exhausted.
	ErrNoMorePages = errors.New("pubfront: no more pages")
	// ErrLoadInFlight is returned by LoadMore while another load is running.
	ErrLoadInFlight = errors.New("pubfront: load already in progress")
)

// PageFetcher dereferences a pagination cursor.
type PageFetcher interface {
	FetchPage(ctx context.Context, cursor string) (PostPagination, error)
}

// Listing accumulates posts across pages for one page view. Posts are only
// ever appended, and the cursor only advances after a successful fetch.
type Listing struct {
	mu       sync.Mutex
	posts    []Post
	nextPage string
	loading  bool
}

// NewListing starts a listing from its first page.
func NewListing(first PostPagination) *Listing {
	return &Listing{
		posts:    append([]Post(nil), first.Results...),
		nextPage: first.NextPage,
	}
}

// Posts returns a copy of the accumulated posts.
func (l *Listing) Posts() []Post {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Post(nil), l.posts...)
}

// NextPage returns the current cursor, empty when exhausted.
func (l *Listing) NextPage() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.nextPage
}

// HasMore reports whether LoadMore can fetch another page.
func (l *Listing) HasMore() bool {
	return l.NextPage() != ""
}

// Pagination returns the accumulated state in PostPagination form.
func (l *Listing) Pagination() PostPagination {
	l.mu.Lock()
	defer l.mu.Unlock()
	return PostPagination{
		NextPage: l.nextPage,
		Results:  append([]Post(nil), l.posts...),
	}
}

// LoadMore fetches the page at the current cursor, appends its posts and
// replaces the cursor with the one the page carries. It returns the posts
// that were appended. On failure the listing is left unchanged.
func (l *Listing) LoadMore(ctx context.Context, f PageFetcher) ([]Post, error) {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return nil, ErrLoadInFlight
	}
	if l.nextPage == "" {
		l.mu.Unlock()
		return nil, ErrNoMorePages
	}
	cursor := l.nextPage
	l.loading = true
	l.mu.Unlock()

	page, err := f.FetchPage(ctx, cursor)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		return nil, err
	}
	l.posts = append(l.posts, page.Results...)
	l.nextPage = page.NextPage
	return page.Results, nil
}
