package pubfront

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pubfront/prismic"
)

// handleHome serves the listing. Without a cursor it renders the first
// page. With one, htmx gets the page at that cursor as a fragment to append,
// and a plain navigation gets every page up to and including it.
func (a *App) handleHome(c echo.Context) error {
	ref, preview := PreviewRef(c)
	cursor := c.QueryParam("cursor")

	if cursor != "" && isHX(c) {
		page, err := a.loadPage(c.Request().Context(), ref, cursor)
		if err != nil {
			return err
		}
		return Render(c, a.Views.PostsPartial(HomePage{Posts: page.Results, NextPage: page.NextPage, Preview: preview}))
	}

	var page PostPagination
	var err error
	if cursor == "" {
		page, err = a.loadPage(c.Request().Context(), ref, "")
	} else {
		page, err = a.loadThrough(c.Request().Context(), ref, cursor)
	}
	if errors.Is(err, ErrStaleCursor) {
		return c.Redirect(http.StatusFound, "/")
	}
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(HomePage{Posts: page.Results, NextPage: page.NextPage, Preview: preview}))
}

// handleAPIPosts serves one page of posts as JSON.
func (a *App) handleAPIPosts(c echo.Context) error {
	ref, _ := PreviewRef(c)
	page, err := a.loadPage(c.Request().Context(), ref, c.QueryParam("cursor"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (a *App) loadPage(ctx context.Context, ref, cursor string) (PostPagination, error) {
	content, err := a.Content()
	if err != nil {
		return PostPagination{}, err
	}
	if cursor == "" {
		return content.FirstPage(ctx, ref)
	}
	l := NewListing(PostPagination{NextPage: cursor})
	added, err := l.LoadMore(ctx, content)
	if errors.Is(err, prismic.ErrForeignCursor) {
		return PostPagination{}, echo.NewHTTPError(http.StatusBadRequest, "invalid cursor")
	}
	if err != nil {
		return PostPagination{}, err
	}
	return PostPagination{NextPage: l.NextPage(), Results: added}, nil
}

func (a *App) loadThrough(ctx context.Context, ref, cursor string) (PostPagination, error) {
	content, err := a.Content()
	if err != nil {
		return PostPagination{}, err
	}
	l, err := content.ListingThrough(ctx, ref, cursor)
	if errors.Is(err, prismic.ErrForeignCursor) {
		return PostPagination{}, echo.NewHTTPError(http.StatusBadRequest, "invalid cursor")
	}
	if err != nil {
		return PostPagination{}, err
	}
	return l.Pagination(), nil
}

func (a *App) handlePost(c echo.Context) error {
	ref, preview := PreviewRef(c)
	content, err := a.Content()
	if err != nil {
		return err
	}
	article, err := content.Article(c.Request().Context(), c.Param("uid"), ref)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	return Render(c, a.Views.Post(PostPage{Article: article, Preview: preview}))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.allPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.allPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) allPosts(ctx context.Context) ([]Post, error) {
	content, err := a.Content()
	if err != nil {
		return nil, err
	}
	return content.AllPosts(ctx)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.Config.StaticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: " + BuildURL(a.Config.URL, "sitemap.xml") + "\n"
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	// A failed htmx request must leave the page as it is.
	if isHX(c) {
		c.Response().Header().Set("HX-Reswap", "none")
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
