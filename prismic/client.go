// Package prismic is a small client for the Prismic v2 REST API.
//
// A Client is constructed per use with an explicit Options value; there is no
// package-level client. When Options.Request is set the client is scoped to
// that incoming request and an active preview cookie on it selects the
// preview ref instead of the master (published) ref.
package prismic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PreviewCookie is the cookie the provider's toolbar uses to carry a preview ref.
const PreviewCookie = "io.prismic.preview"

// Options configures a Client. Every field is optional.
type Options struct {
	// Request scopes the client to an incoming request. Absent means
	// published content only.
	Request *http.Request
	// AccessToken authorizes private and draft content. Absent means no
	// elevated access.
	AccessToken string
	// HTTPClient defaults to a client with a 10s timeout.
	HTTPClient *http.Client
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Client queries one Prismic repository.
type Client struct {
	endpoint    *url.URL
	accessToken string
	req         *http.Request
	http        *http.Client
	log         *slog.Logger
}

// NewClient returns a Client for the repository API endpoint, for example
// "https://my-repo.cdn.prismic.io/api/v2".
func NewClient(endpoint string, opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(strings.TrimSpace(endpoint), "/"))
	if err != nil {
		return nil, fmt.Errorf("prismic: parse endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("prismic: endpoint %q must be an absolute http(s) URL", endpoint)
	}
	c := &Client{
		endpoint:    u,
		accessToken: opts.AccessToken,
		req:         opts.Request,
		http:        opts.HTTPClient,
		log:         opts.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 10 * time.Second}
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c, nil
}

// Endpoint returns the repository API endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Ref describes one content release known to the API.
type Ref struct {
	ID          string `json:"id"`
	Ref         string `json:"ref"`
	Label       string `json:"label"`
	IsMasterRef bool   `json:"isMasterRef"`
}

// API is the repository's API document.
type API struct {
	Refs  []Ref             `json:"refs"`
	Types map[string]string `json:"types"`
	Tags  []string          `json:"tags"`
}

// MasterRef returns the ref of the published release.
func (a API) MasterRef() (string, bool) {
	for _, r := range a.Refs {
		if r.IsMasterRef {
			return r.Ref, true
		}
	}
	return "", false
}

// GetAPI fetches the API document.
func (c *Client) GetAPI(ctx context.Context) (API, error) {
	u := *c.endpoint
	q := u.Query()
	if c.accessToken != "" {
		q.Set("access_token", c.accessToken)
	}
	u.RawQuery = q.Encode()

	var api API
	if err := c.getJSON(ctx, u.String(), &api); err != nil {
		return API{}, fmt.Errorf("prismic: get api: %w", err)
	}
	return api, nil
}

// previewRef returns the preview ref carried by the scoped request, if any.
func (c *Client) previewRef() string {
	if c.req == nil {
		return ""
	}
	ck, err := c.req.Cookie(PreviewCookie)
	if err != nil {
		return ""
	}
	ref, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ck.Value
	}
	return ref
}

// resolveRef picks the ref for a query: explicit ref, then the scoped
// request's preview cookie, then the master ref.
func (c *Client) resolveRef(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if ref := c.previewRef(); ref != "" {
		return ref, nil
	}
	api, err := c.GetAPI(ctx)
	if err != nil {
		return "", err
	}
	ref, ok := api.MasterRef()
	if !ok {
		return "", fmt.Errorf("prismic: api document has no master ref")
	}
	return ref, nil
}

// QueryOptions narrows a search.
type QueryOptions struct {
	// Ref selects a release; empty means preview cookie or master ref.
	Ref string
	// Fetch restricts the returned data fields, e.g. "posts.title".
	Fetch []string
	// PageSize is the number of results per page; zero keeps the API default.
	PageSize int
	// Page is 1-based; zero keeps the API default.
	Page int
	// Orderings is passed through verbatim, e.g. "[document.first_publication_date desc]".
	Orderings string
	// Lang defaults to the repository's master locale. Use "*" for all.
	Lang string
}

// Query runs a documents/search request with the given predicates.
func (c *Client) Query(ctx context.Context, predicates []Predicate, opts QueryOptions) (*Response, error) {
	ref, err := c.resolveRef(ctx, opts.Ref)
	if err != nil {
		return nil, err
	}

	u := *c.endpoint
	u.Path = strings.TrimSuffix(u.Path, "/") + "/documents/search"
	q := url.Values{}
	q.Set("ref", ref)
	if len(predicates) > 0 {
		q.Set("q", joinPredicates(predicates))
	}
	if len(opts.Fetch) > 0 {
		q.Set("fetch", strings.Join(opts.Fetch, ","))
	}
	if opts.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Orderings != "" {
		q.Set("orderings", opts.Orderings)
	}
	if opts.Lang != "" {
		q.Set("lang", opts.Lang)
	}
	if c.accessToken != "" {
		q.Set("access_token", c.accessToken)
	}
	u.RawQuery = q.Encode()

	var resp Response
	if err := c.getJSON(ctx, u.String(), &resp); err != nil {
		return nil, fmt.Errorf("prismic: query: %w", err)
	}
	return &resp, nil
}

// GetByID returns the document with the given ID, or ErrDocumentNotFound.
func (c *Client) GetByID(ctx context.Context, id string, opts QueryOptions) (*Document, error) {
	return c.first(ctx, []Predicate{At("document.id", id)}, opts)
}

// GetByUID returns the document of the given type and UID, or ErrDocumentNotFound.
func (c *Client) GetByUID(ctx context.Context, docType, uid string, opts QueryOptions) (*Document, error) {
	return c.first(ctx, []Predicate{At("my."+docType+".uid", uid)}, opts)
}

func (c *Client) first(ctx context.Context, predicates []Predicate, opts QueryOptions) (*Document, error) {
	opts.PageSize = 1
	resp, err := c.Query(ctx, predicates, opts)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, ErrDocumentNotFound
	}
	return &resp.Results[0], nil
}

// ResolveCursor returns the URL a next_page/prev_page cursor points at.
// Absolute cursors are returned unchanged; relative ones are resolved against
// the endpoint. A cursor that lands on another scheme or host yields
// ErrForeignCursor.
func (c *Client) ResolveCursor(cursor string) (string, error) {
	u, err := url.Parse(cursor)
	if err != nil || cursor == "" {
		return "", ErrForeignCursor
	}
	if !u.IsAbs() {
		u = c.endpoint.ResolveReference(u)
		cursor = u.String()
	}
	if !strings.EqualFold(u.Scheme, c.endpoint.Scheme) || !strings.EqualFold(u.Host, c.endpoint.Host) {
		return "", ErrForeignCursor
	}
	return cursor, nil
}

// FetchCursor dereferences a cursor previously returned by the API. An
// absolute cursor is requested exactly as given.
func (c *Client) FetchCursor(ctx context.Context, cursor string) (*Response, error) {
	target, err := c.ResolveCursor(cursor)
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := c.getJSON(ctx, target, &resp); err != nil {
		return nil, fmt.Errorf("prismic: fetch cursor: %w", err)
	}
	return &resp, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	c.log.DebugContext(ctx, "prismic request",
		slog.String("path", req.URL.Path),
		slog.Int("status", res.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return newAPIError(res)
	}
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(res *http.Response) error {
	apiErr := &APIError{StatusCode: res.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	var payload struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Type = payload.Type
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}
