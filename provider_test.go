package pubfront

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
)

// fakeProvider serves a two-page "posts" listing and one previewable draft.
type fakeProvider struct {
	srv *httptest.Server

	mu       sync.Mutex
	refs     []string
	failPage bool
}

const (
	validPreviewToken = "https://repo.prismic.io/previews/valid"
	draftDocumentID   = "42"
)

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()
	f := &fakeProvider{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"refs":[{"id":"master","ref":"master-ref","isMasterRef":true}]}`)
	})
	mux.HandleFunc("/api/v2/documents/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		ref := q.Get("ref")
		f.mu.Lock()
		f.refs = append(f.refs, ref)
		f.mu.Unlock()

		switch {
		case ref != "master-ref" && ref != validPreviewToken:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"type":"api_notfound_error","message":"Ref not found"}`)
		case strings.Contains(q.Get("q"), "document.id"):
			fmt.Fprint(w, `{"results":[{"id":"42","uid":"draft-post","type":"posts","data":{}}]}`)
		case strings.Contains(q.Get("q"), `my.posts.uid, "como-utilizar-hooks"`):
			fmt.Fprint(w, `{"results":[{"id":"1","uid":"como-utilizar-hooks","type":"posts",
				"first_publication_date":"2021-03-15T19:25:28+0000","last_publication_date":"2021-03-15T19:25:28+0000",
				"data":{"title":"Como utilizar Hooks","author":"Joseph Oliveira","banner":{"url":"https://images.prismic.io/b.png"},
				"content":[{"heading":"Proin et varius","body":[{"type":"paragraph","text":"Nullam dolor sapien","spans":[]}]}]}}]}`)
		case strings.Contains(q.Get("q"), "my.posts.uid"):
			fmt.Fprint(w, `{"results":[]}`)
		default:
			title := "A"
			if ref == validPreviewToken {
				title = "Draft A"
			}
			fmt.Fprintf(w, `{"page":1,"next_page":%q,"results":[
				{"id":"1","uid":"a","type":"posts","first_publication_date":"2021-03-15T19:25:28+0000","data":{"title":%q,"subtitle":"sa","author":"x","banner":{"url":"ignored"}}},
				{"id":"2","uid":"b","type":"posts","first_publication_date":null,"data":{"title":"B","subtitle":"sb","author":"y"}}]}`,
				f.srv.URL+"/cursor/1", title)
		}
	})
	mux.HandleFunc("/cursor/1", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		fail := f.failPage
		f.mu.Unlock()
		if fail {
			http.Error(w, "upstream down", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"page":2,"next_page":null,"results":[
			{"id":"3","uid":"c","type":"posts","first_publication_date":"2021-03-16T10:00:00+0000","data":{"title":"C","subtitle":"sc","author":"z"}},
			{"id":"4","uid":"d","type":"posts","first_publication_date":"2021-03-17T10:00:00+0000","data":{"title":"D","subtitle":"sd","author":"w"}}]}`)
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeProvider) endpoint() string {
	return f.srv.URL + "/api/v2"
}

func (f *fakeProvider) seenRefs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.refs...)
}

// stubViews renders pages as compact text so tests can assert on them.
func stubViews() ViewFuncs {
	listing := func(kind string) func(HomePage) templ.Component {
		return func(p HomePage) templ.Component {
			return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				titles := make([]string, len(p.Posts))
				for i, post := range p.Posts {
					titles[i] = post.Data.Title
				}
				_, err := fmt.Fprintf(w, "%s posts=%s next=%s preview=%t", kind, strings.Join(titles, ","), p.NextPage, p.Preview)
				return err
			})
		}
	}
	text := func(s string) func() templ.Component {
		return func() templ.Component { return templ.Raw(s) }
	}
	return ViewFuncs{
		Home:         listing("home"),
		PostsPartial: listing("partial"),
		Post: func(p PostPage) templ.Component {
			b, _ := json.Marshal(p)
			return templ.Raw("post " + string(b))
		},
		NotFound:    text("not found"),
		ServerError: text("server error"),
	}
}

func newTestApp(t *testing.T, f *fakeProvider) *App {
	t.Helper()
	a := New(SiteConfig{
		Name:            "spacetraveling",
		URL:             "https://blog.example/",
		PrismicEndpoint: f.endpoint(),
		SessionSecret:   "0123456789abcdef0123456789abcdef",
	}, stubViews())
	require.NoError(t, a.Setup())
	t.Cleanup(func() { _ = a.Close() })
	return a
}
