package prismic

import (
	"context"
	"errors"
)

// LinkResolver maps a document to a path inside the consuming application.
type LinkResolver func(Document) string

// PreviewResolver resolves a preview token and document ID to the URL the
// editor should land on.
type PreviewResolver struct {
	client     *Client
	token      string
	documentID string
}

// PreviewResolver returns a resolver for the token the provider sent along
// with documentID.
func (c *Client) PreviewResolver(token, documentID string) *PreviewResolver {
	return &PreviewResolver{client: c, token: token, documentID: documentID}
}

// Resolve returns the landing URL for the preview.
//
// An empty token, or a token the API rejects as an unknown or expired ref,
// yields "" with a nil error. Without a document ID, or when the document is
// missing from the previewed release, defaultURL is returned. Any other
// failure is returned as an error.
func (p *PreviewResolver) Resolve(ctx context.Context, resolve LinkResolver, defaultURL string) (string, error) {
	if p.token == "" {
		return "", nil
	}
	if p.documentID == "" {
		return defaultURL, nil
	}
	doc, err := p.client.GetByID(ctx, p.documentID, QueryOptions{Ref: p.token, Lang: "*"})
	switch {
	case errors.Is(err, ErrRefNotFound), errors.Is(err, ErrRefExpired):
		p.client.log.InfoContext(ctx, "preview ref rejected", "document_id", p.documentID, "err", err)
		return "", nil
	case errors.Is(err, ErrDocumentNotFound):
		return defaultURL, nil
	case err != nil:
		return "", err
	}
	if resolve == nil {
		return defaultURL, nil
	}
	if u := resolve(*doc); u != "" {
		return u, nil
	}
	return defaultURL, nil
}
