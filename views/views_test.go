package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/pubfront"
	"github.com/eringen/pubfront/richtext"
)

func testConfig() pubfront.SiteConfig {
	return pubfront.SiteConfig{Name: "spacetraveling", URL: "https://blog.example", DateLocale: "en_US"}
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

var samplePosts = []pubfront.Post{
	{UID: "como-utilizar-hooks", FirstPublicationDate: "2021-03-15T19:25:28+0000", Data: pubfront.PostData{Title: "Como utilizar Hooks", Subtitle: "Pensando em sincronização", Author: "Joseph Oliveira"}},
	{UID: "criando-um-app", FirstPublicationDate: "2021-03-25T19:27:35+0000", Data: pubfront.PostData{Title: "Criando um app <CRA>", Subtitle: "Tudo sobre", Author: "Danilo Vieira"}},
}

func TestHomeRendersPostsAndLoadMore(t *testing.T) {
	v := New(testConfig())
	out := render(t, v.Home(pubfront.HomePage{Posts: samplePosts, NextPage: "https://repo.cdn.prismic.io/api/v2/documents/search?page=2"}))

	assert.Contains(t, out, `href="/post/como-utilizar-hooks"`)
	assert.Contains(t, out, "15 Mar 2021")
	assert.Contains(t, out, "Joseph Oliveira")
	assert.Contains(t, out, "Criando um app &lt;CRA&gt;")
	assert.Contains(t, out, `hx-target="#posts"`)
	assert.Contains(t, out, `hx-sync="this:drop"`)
	assert.Contains(t, out, "cursor=https%3A%2F%2Frepo.cdn.prismic.io")
	assert.NotContains(t, out, "exit-preview")
	assert.Contains(t, out, `<script src="/public/loadmore.js" defer></script>`)
	assert.Less(t, strings.Index(out, "como-utilizar-hooks"), strings.Index(out, "criando-um-app"))
}

func TestHomeWithoutCursorHidesLoadMore(t *testing.T) {
	out := render(t, New(testConfig()).Home(pubfront.HomePage{Posts: samplePosts}))
	assert.Contains(t, out, `<div id="load-more"></div>`)
	assert.NotContains(t, out, "Carregar mais posts")
}

func TestHomeInPreviewShowsExitLink(t *testing.T) {
	out := render(t, New(testConfig()).Home(pubfront.HomePage{Posts: samplePosts, Preview: true}))
	assert.Contains(t, out, `href="/api/exit-preview"`)
}

func TestPostsPartialIsFragment(t *testing.T) {
	out := render(t, New(testConfig()).PostsPartial(pubfront.HomePage{Posts: samplePosts[1:]}))
	assert.NotContains(t, out, "<html")
	assert.Contains(t, out, `href="/post/criando-um-app"`)
	assert.Contains(t, out, `<div id="load-more" hx-swap-oob="true"></div>`)
}

func TestPostRendersArticle(t *testing.T) {
	article := pubfront.Article{
		UID:                  "como-utilizar-hooks",
		FirstPublicationDate: "2021-03-15T19:25:28+0000",
		LastPublicationDate:  "2021-03-19T19:25:28+0000",
		Data: pubfront.ArticleData{
			Title:  "Como utilizar Hooks",
			Author: "Joseph Oliveira",
			Banner: pubfront.Image{URL: "https://images.prismic.io/banner.png"},
			Content: []pubfront.Section{{
				Heading: "Proin et varius",
				Body:    richtext.RichText{{Type: "paragraph", Text: "Nullam dolor sapien"}},
			}},
		},
	}
	out := render(t, New(testConfig()).Post(pubfront.PostPage{Article: article}))

	assert.Contains(t, out, "<title>Como utilizar Hooks | spacetraveling</title>")
	assert.Contains(t, out, `src="https://images.prismic.io/banner.png"`)
	assert.Contains(t, out, "<h2>Proin et varius</h2>")
	assert.Contains(t, out, "<p>Nullam dolor sapien</p>")
	assert.Contains(t, out, "1 min")
	assert.Contains(t, out, "editado em 19 Mar 2021, 19:25")
	assert.Contains(t, out, `"@type":"BlogPosting"`)
}

func TestStatusPages(t *testing.T) {
	v := New(testConfig())
	assert.Contains(t, render(t, v.NotFound()), "404")
	assert.Contains(t, render(t, v.ServerError()), "500")
}

func TestFuncsWiresEveryView(t *testing.T) {
	f := New(testConfig()).Funcs()
	assert.NotNil(t, f.Home)
	assert.NotNil(t, f.PostsPartial)
	assert.NotNil(t, f.Post)
	assert.NotNil(t, f.NotFound)
	assert.NotNil(t, f.ServerError)
}
