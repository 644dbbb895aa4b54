// Package pubfront is a blog front-end built with Go, Echo, and templ that
// reads its posts from a Prismic repository.
//
// It serves a paginated listing with incremental "load more", individual
// post pages, an editorial preview handshake, RSS and a sitemap. Users
// provide the templates through the ViewFuncs struct.
package pubfront

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pubfront/prismic"
)

// ViewFuncs holds the templ components the engine calls when rendering
// pages.
type ViewFuncs struct {
	Home         func(page HomePage) templ.Component
	PostsPartial func(page HomePage) templ.Component // appended items + load-more control
	Post         func(page PostPage) templ.Component
	NotFound     func() templ.Component
	ServerError  func() templ.Component
}

// App is the central pubfront application. It wires together the provider
// client, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Views  ViewFuncs

	httpClient     *http.Client
	previewLimiter *PreviewLimiter
	customRoutes   []func(*App)
}

// New creates a new pubfront App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.httpClient == nil {
		a.httpClient = &http.Client{Timeout: a.Config.UpstreamTimeout}
	}

	return a
}

// Setup validates the configuration and installs middleware and routes.
// Start calls it; tests call it directly and drive a.Echo.
func (a *App) Setup() error {
	if a.Config.PrismicEndpoint == "" {
		return fmt.Errorf("pubfront: PrismicEndpoint is required")
	}
	if _, err := prismic.NewClient(a.Config.PrismicEndpoint, prismic.Options{}); err != nil {
		return fmt.Errorf("pubfront: %w", err)
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("pubfront: SessionSecret is required")
	}

	a.previewLimiter = NewPreviewLimiter(10, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the app up and starts the server.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Engine scripts are served under /public/ ahead of the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/loadmore.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/post/:uid", a.handlePost)

	e.GET("/api/posts", a.handleAPIPosts)
	e.GET("/api/preview", a.handlePreview)
	e.POST("/api/preview", a.handlePreview)
	e.GET("/api/exit-preview", handleExitPreview)
}

// Client returns a provider client. With a non-nil request the client is
// scoped to it and honors the provider's preview cookie on that request.
func (a *App) Client(r *http.Request) (*prismic.Client, error) {
	return prismic.NewClient(a.Config.PrismicEndpoint, prismic.Options{
		Request:     r,
		AccessToken: a.Config.PrismicAccessToken,
		HTTPClient:  a.httpClient,
	})
}

// Content returns an unscoped Content reader.
func (a *App) Content() (*Content, error) {
	client, err := a.Client(nil)
	if err != nil {
		return nil, err
	}
	return NewContent(client), nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.previewLimiter != nil {
		a.previewLimiter.Stop()
	}
	return a.Echo.Close()
}
