package pubfront

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/pubfront/prismic"
)

func TestResolveLink(t *testing.T) {
	tests := []struct {
		name string
		doc  prismic.Document
		want string
	}{
		{"post", prismic.Document{Type: "posts", UID: "como-utilizar-hooks"}, "/post/como-utilizar-hooks"},
		{"other type", prismic.Document{Type: "page", UID: "about"}, "/"},
		{"missing type", prismic.Document{UID: "x"}, "/"},
		{"unknown type", prismic.Document{Type: "banana"}, "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLink(tt.doc))
		})
	}
}

func TestNormalizePostDropsExtraFields(t *testing.T) {
	doc := prismic.Document{
		ID:                   "1",
		UID:                  "como-utilizar-hooks",
		Type:                 "posts",
		FirstPublicationDate: "2021-03-15T19:25:28+0000",
		LastPublicationDate:  "2021-03-16T19:25:28+0000",
		Data: json.RawMessage(`{"title":"Como utilizar Hooks","subtitle":"Pensando em sincronização",
			"author":"Joseph Oliveira","banner":{"url":"https://x/y.png"},"content":[]}`),
	}
	p, err := NormalizePost(doc)
	require.NoError(t, err)
	assert.Equal(t, Post{
		UID:                  "como-utilizar-hooks",
		FirstPublicationDate: "2021-03-15T19:25:28+0000",
		Data: PostData{
			Title:    "Como utilizar Hooks",
			Subtitle: "Pensando em sincronização",
			Author:   "Joseph Oliveira",
		},
	}, p)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "banner")
	assert.NotContains(t, string(b), "last_publication_date")
}

func TestNormalizePostIsIdempotent(t *testing.T) {
	doc := prismic.Document{
		UID:                  "a",
		Type:                 "posts",
		FirstPublicationDate: "2021-03-15T19:25:28+0000",
		Data:                 json.RawMessage(`{"title":"A","subtitle":"s","author":"x","extra":1}`),
	}
	once, err := NormalizePost(doc)
	require.NoError(t, err)

	b, err := json.Marshal(once)
	require.NoError(t, err)
	var again prismic.Document
	require.NoError(t, json.Unmarshal(b, &again))
	twice, err := NormalizePost(again)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestNormalizePostNullDate(t *testing.T) {
	var doc prismic.Document
	require.NoError(t, json.Unmarshal([]byte(`{"uid":"b","first_publication_date":null,"data":{"title":"B"}}`), &doc))
	p, err := NormalizePost(doc)
	require.NoError(t, err)
	assert.Empty(t, p.FirstPublicationDate)
	assert.Equal(t, "B", p.Data.Title)
}

func TestNormalizePagePreservesOrder(t *testing.T) {
	resp := &prismic.Response{
		NextPage: "https://repo.cdn.prismic.io/api/v2/documents/search?page=2",
		Results: []prismic.Document{
			{UID: "z", Data: json.RawMessage(`{"title":"Z"}`)},
			{UID: "a", Data: json.RawMessage(`{"title":"A"}`)},
			{UID: "m", Data: json.RawMessage(`{"title":"M"}`)},
		},
	}
	page, err := NormalizePage(resp)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, uids(page.Results))
	assert.Equal(t, resp.NextPage, page.NextPage)
	assert.True(t, page.HasMore())
}

func TestNormalizePageEmpty(t *testing.T) {
	page, err := NormalizePage(&prismic.Response{})
	require.NoError(t, err)
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
	assert.False(t, page.HasMore())
}

func newTestContent(t *testing.T, f *fakeProvider) *Content {
	t.Helper()
	client, err := prismic.NewClient(f.endpoint(), prismic.Options{HTTPClient: http.DefaultClient})
	require.NoError(t, err)
	return NewContent(client)
}

func TestContentFirstPageAndCursor(t *testing.T) {
	f := newFakeProvider(t)
	c := newTestContent(t, f)

	first, err := c.FirstPage(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, uids(first.Results))
	assert.Equal(t, f.srv.URL+"/cursor/1", first.NextPage)

	next, err := c.FetchPage(context.Background(), first.NextPage)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, uids(next.Results))
	assert.False(t, next.HasMore())
}

func TestContentAllPosts(t *testing.T) {
	f := newFakeProvider(t)
	posts, err := newTestContent(t, f).AllPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, uids(posts))
}

func TestContentArticle(t *testing.T) {
	f := newFakeProvider(t)
	c := newTestContent(t, f)

	a, err := c.Article(context.Background(), "como-utilizar-hooks", "")
	require.NoError(t, err)
	assert.Equal(t, "Como utilizar Hooks", a.Data.Title)
	require.Len(t, a.Data.Content, 1)
	assert.Equal(t, "Proin et varius", a.Data.Content[0].Heading)
	assert.Equal(t, 1, a.ReadingTime())
	assert.False(t, a.Edited())

	_, err = c.Article(context.Background(), "nope", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentListingThrough(t *testing.T) {
	f := newFakeProvider(t)
	c := newTestContent(t, f)

	l, err := c.ListingThrough(context.Background(), "", f.srv.URL+"/cursor/1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, uids(l.Posts()))
	assert.False(t, l.HasMore())

	_, err = c.ListingThrough(context.Background(), "", f.srv.URL+"/cursor/9")
	assert.ErrorIs(t, err, ErrStaleCursor)

	_, err = c.ListingThrough(context.Background(), "", "https://evil.example/cursor/1")
	assert.ErrorIs(t, err, prismic.ErrForeignCursor)
}
