package pubfront

import (
	"context"
	"errors"
	"fmt"

	"github.com/eringen/pubfront/prismic"
)

// PostType is the provider's document type for blog posts.
const PostType = "posts"

// PageSize is the number of posts per listing page.
const PageSize = 2

// maxWalkPages bounds AllPosts against a provider that never stops paging.
const maxWalkPages = 500

var (
	// ErrNotFound is returned when a requested post does not exist.
	ErrNotFound = errors.New("pubfront: post not found")
	// ErrStaleCursor is returned when a cursor is not reachable from the
	// first page of the listing, e.g. after content was republished.
	ErrStaleCursor = errors.New("pubfront: cursor is not part of the listing")
)

var listingFields = []string{PostType + ".title", PostType + ".subtitle", PostType + ".author"}

// ResolveLink maps a provider document to its path in the site: posts live
// under /post/{uid}; every other type lands on the home page.
func ResolveLink(doc prismic.Document) string {
	if doc.Type == PostType {
		return "/post/" + doc.UID
	}
	return "/"
}

// NormalizePost keeps only the listing fields of a provider document.
func NormalizePost(doc prismic.Document) (Post, error) {
	var data PostData
	if err := doc.DecodeData(&data); err != nil {
		return Post{}, err
	}
	return Post{
		UID:                  doc.UID,
		FirstPublicationDate: doc.FirstPublicationDate,
		Data:                 data,
	}, nil
}

// NormalizePage converts a provider response into a PostPagination,
// preserving the provider's order.
func NormalizePage(resp *prismic.Response) (PostPagination, error) {
	page := PostPagination{
		NextPage: resp.NextPage,
		Results:  make([]Post, 0, len(resp.Results)),
	}
	for _, doc := range resp.Results {
		p, err := NormalizePost(doc)
		if err != nil {
			return PostPagination{}, err
		}
		page.Results = append(page.Results, p)
	}
	return page, nil
}

// Content reads posts through a provider client. It keeps no state between
// calls; every call is a live query.
type Content struct {
	client *prismic.Client
}

// NewContent returns a Content backed by client.
func NewContent(client *prismic.Client) *Content {
	return &Content{client: client}
}

// FirstPage queries the first listing page. An empty ref selects the
// client's default release (preview cookie or published content).
func (s *Content) FirstPage(ctx context.Context, ref string) (PostPagination, error) {
	resp, err := s.client.Query(ctx,
		[]prismic.Predicate{prismic.At("document.type", PostType)},
		prismic.QueryOptions{
			Ref:      ref,
			Fetch:    listingFields,
			PageSize: PageSize,
		},
	)
	if err != nil {
		return PostPagination{}, err
	}
	return NormalizePage(resp)
}

// FetchPage dereferences a cursor returned with a previous page.
func (s *Content) FetchPage(ctx context.Context, cursor string) (PostPagination, error) {
	resp, err := s.client.FetchCursor(ctx, cursor)
	if err != nil {
		return PostPagination{}, err
	}
	return NormalizePage(resp)
}

// Article returns the post with the given UID, or ErrNotFound.
func (s *Content) Article(ctx context.Context, uid, ref string) (Article, error) {
	doc, err := s.client.GetByUID(ctx, PostType, uid, prismic.QueryOptions{Ref: ref})
	if errors.Is(err, prismic.ErrDocumentNotFound) {
		return Article{}, ErrNotFound
	}
	if err != nil {
		return Article{}, err
	}
	a := Article{
		UID:                  doc.UID,
		FirstPublicationDate: doc.FirstPublicationDate,
		LastPublicationDate:  doc.LastPublicationDate,
	}
	if err := doc.DecodeData(&a.Data); err != nil {
		return Article{}, err
	}
	return a, nil
}

// AllPosts walks every published page through a Listing.
func (s *Content) AllPosts(ctx context.Context) ([]Post, error) {
	first, err := s.FirstPage(ctx, "")
	if err != nil {
		return nil, err
	}
	l := NewListing(first)
	for pages := 1; l.HasMore(); pages++ {
		if pages >= maxWalkPages {
			return nil, fmt.Errorf("pubfront: gave up after %d pages", pages)
		}
		if _, err := l.LoadMore(ctx, s); err != nil {
			return nil, err
		}
	}
	return l.Posts(), nil
}

// ListingThrough rebuilds the listing a reader has accumulated up to and
// including the page at cursor, walking the cursor chain from the first page.
func (s *Content) ListingThrough(ctx context.Context, ref, cursor string) (*Listing, error) {
	want, err := s.client.ResolveCursor(cursor)
	if err != nil {
		return nil, err
	}
	first, err := s.FirstPage(ctx, ref)
	if err != nil {
		return nil, err
	}
	l := NewListing(first)
	for pages := 1; ; pages++ {
		if pages >= maxWalkPages {
			return nil, fmt.Errorf("pubfront: gave up after %d pages", pages)
		}
		next := l.NextPage()
		if next == "" {
			return nil, ErrStaleCursor
		}
		if _, err := l.LoadMore(ctx, s); err != nil {
			return nil, err
		}
		if resolved, err := s.client.ResolveCursor(next); err == nil && resolved == want {
			return l, nil
		}
	}
}
