package prismic

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrDocumentNotFound is returned by GetByID and GetByUID when nothing matches.
	ErrDocumentNotFound = errors.New("prismic: document not found")
	// ErrRefNotFound matches API errors for a ref the repository does not know.
	ErrRefNotFound = errors.New("prismic: ref not found")
	// ErrRefExpired matches API errors for an expired preview ref.
	ErrRefExpired = errors.New("prismic: ref expired")
	// ErrForeignCursor is returned when a cursor does not belong to the endpoint.
	ErrForeignCursor = errors.New("prismic: cursor does not point at the configured endpoint")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("prismic api: %d %s: %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("prismic api: %d: %s", e.StatusCode, e.Message)
}

// Is reports ref-related failures as ErrRefNotFound or ErrRefExpired.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrRefExpired:
		return e.StatusCode == http.StatusGone
	case ErrRefNotFound:
		if e.StatusCode != http.StatusNotFound && e.StatusCode != http.StatusBadRequest {
			return false
		}
		return e.Type == "api_notfound_error" || strings.Contains(strings.ToLower(e.Message), "ref")
	}
	return false
}

// Document is one result of a search.
type Document struct {
	ID                   string          `json:"id"`
	UID                  string          `json:"uid,omitempty"`
	Type                 string          `json:"type"`
	Href                 string          `json:"href,omitempty"`
	Tags                 []string        `json:"tags,omitempty"`
	Lang                 string          `json:"lang,omitempty"`
	FirstPublicationDate string          `json:"first_publication_date"`
	LastPublicationDate  string          `json:"last_publication_date"`
	Data                 json.RawMessage `json:"data"`
}

// DecodeData unmarshals the document's data into v.
func (d Document) DecodeData(v any) error {
	if len(d.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(d.Data, v); err != nil {
		return fmt.Errorf("prismic: decode %s data: %w", d.Type, err)
	}
	return nil
}

// Response is one page of search results. A null or empty NextPage both mean
// there are no further pages.
type Response struct {
	Page             int        `json:"page"`
	ResultsPerPage   int        `json:"results_per_page"`
	ResultsSize      int        `json:"results_size"`
	TotalResultsSize int        `json:"total_results_size"`
	TotalPages       int        `json:"total_pages"`
	NextPage         string     `json:"next_page"`
	PrevPage         string     `json:"prev_page"`
	Results          []Document `json:"results"`
}

// HasNext reports whether NextPage holds a cursor.
func (r *Response) HasNext() bool {
	return r.NextPage != ""
}
