// Package views provides the default pages for a pubfront site. Every page
// is an html/template rendered through a templ.Component so it plugs into
// pubfront.ViewFuncs like any templ-generated component.
package views

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/pubfront"
	"github.com/eringen/pubfront/richtext"
)

// pageData is passed to every template.
type pageData struct {
	Site  pubfront.SiteConfig
	Title string
	Page  any
}

// Views renders the default templates for one site configuration.
type Views struct {
	cfg  pubfront.SiteConfig
	tmpl map[string]*template.Template
}

// New parses the templates for cfg.
func New(cfg pubfront.SiteConfig) *Views {
	funcs := template.FuncMap{
		"formatDate": func(s string) string {
			return pubfront.FormatDate(s, cfg.DateLocale)
		},
		"formatDateTime": func(s string) string {
			return pubfront.FormatDateTime(s, cfg.DateLocale)
		},
		"loadMoreURL": pubfront.LoadMoreURL,
		"loadMore": func(next string) loadMoreData {
			return loadMoreData{NextPage: next}
		},
		"richText": func(rt richtext.RichText) (template.HTML, error) {
			var buf bytes.Buffer
			if err := richtext.Component(rt).Render(context.Background(), &buf); err != nil {
				return "", err
			}
			return template.HTML(buf.String()), nil
		},
		"websiteJSONLD": func() template.JS {
			return template.JS(pubfront.WebsiteJsonLD(cfg))
		},
		"postingJSONLD": func(a pubfront.Article) template.JS {
			return template.JS(pubfront.BlogPostingJsonLD(a, cfg))
		},
	}

	base := template.Must(template.New("base").Funcs(funcs).Parse(layoutTemplate + postItemsTemplate + loadMoreTemplate))
	page := func(src string) *template.Template {
		return template.Must(template.Must(base.Clone()).Parse(src))
	}
	return &Views{
		cfg: cfg,
		tmpl: map[string]*template.Template{
			"home":     page(homeTemplate),
			"post":     page(postTemplate),
			"notfound": page(notFoundTemplate),
			"error":    page(serverErrorTemplate),
			"partial":  template.Must(base.Clone()),
		},
	}
}

// Funcs returns the views in the shape pubfront.App expects.
func (v *Views) Funcs() pubfront.ViewFuncs {
	return pubfront.ViewFuncs{
		Home:         v.Home,
		PostsPartial: v.PostsPartial,
		Post:         v.Post,
		NotFound:     v.NotFound,
		ServerError:  v.ServerError,
	}
}

// Home renders the listing page.
func (v *Views) Home(page pubfront.HomePage) templ.Component {
	return v.component("home", "layout", v.cfg.Name, page)
}

// PostsPartial renders the items of one page plus an out-of-band
// replacement of the load-more control, for htmx to append.
func (v *Views) PostsPartial(page pubfront.HomePage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := v.tmpl["partial"]
		if err := t.ExecuteTemplate(w, "post-items", page.Posts); err != nil {
			return err
		}
		return t.ExecuteTemplate(w, "load-more", loadMoreData{NextPage: page.NextPage, OOB: true})
	})
}

// Post renders a single post.
func (v *Views) Post(page pubfront.PostPage) templ.Component {
	title := page.Article.Data.Title
	if title == "" {
		title = v.cfg.Name
	} else {
		title += " | " + v.cfg.Name
	}
	return v.component("post", "layout", title, page)
}

// NotFound renders the 404 page.
func (v *Views) NotFound() templ.Component {
	return v.component("notfound", "layout", "Not found | "+v.cfg.Name, nil)
}

// ServerError renders the 500 page.
func (v *Views) ServerError() templ.Component {
	return v.component("error", "layout", "Error | "+v.cfg.Name, nil)
}

func (v *Views) component(key, name, title string, page any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		data := pageData{Site: v.cfg, Title: strings.TrimSpace(title), Page: page}
		if err := v.tmpl[key].ExecuteTemplate(&buf, name, data); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

type loadMoreData struct {
	NextPage string
	OOB      bool
}
