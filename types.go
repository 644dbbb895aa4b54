package pubfront

import (
	"strings"

	"github.com/eringen/pubfront/richtext"
)

// Post is the listing view of a "posts" document. It keeps only the fields
// the listing renders; everything else the provider returns is dropped.
type Post struct {
	UID string `json:"uid,omitempty"`
	// FirstPublicationDate is empty for documents that were never published.
	FirstPublicationDate string   `json:"first_publication_date"`
	Data                 PostData `json:"data"`
}

// PostData holds the listing fields of a post.
type PostData struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Author   string `json:"author"`
}

// Link returns the in-app path of the post.
func (p Post) Link() string {
	return "/post/" + p.UID
}

// PostPagination is one provider page of posts. An empty NextPage means
// there are no further pages; the provider's null decodes to empty as well.
type PostPagination struct {
	NextPage string `json:"next_page"`
	Results  []Post `json:"results"`
}

// HasMore reports whether another page can be loaded.
func (p PostPagination) HasMore() bool {
	return p.NextPage != ""
}

// Article is a full post as rendered on its own page.
type Article struct {
	UID                  string      `json:"uid,omitempty"`
	FirstPublicationDate string      `json:"first_publication_date"`
	LastPublicationDate  string      `json:"last_publication_date"`
	Data                 ArticleData `json:"data"`
}

// ArticleData holds the content fields of a post.
type ArticleData struct {
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Author   string    `json:"author"`
	Banner   Image     `json:"banner"`
	Content  []Section `json:"content"`
}

// Image is a provider image field.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Section is one heading with its rich text body.
type Section struct {
	Heading string            `json:"heading"`
	Body    richtext.RichText `json:"body"`
}

const wordsPerMinute = 200

// ReadingTime estimates minutes to read headings and bodies, rounded up.
func (a Article) ReadingTime() int {
	words := 0
	for _, s := range a.Data.Content {
		words += len(strings.Fields(s.Heading))
		words += richtext.WordCount(s.Body)
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// Edited reports whether the post changed after its first publication.
func (a Article) Edited() bool {
	return a.LastPublicationDate != "" && a.LastPublicationDate != a.FirstPublicationDate
}

// HomePage is what the listing views render.
type HomePage struct {
	Posts    []Post
	NextPage string
	Preview  bool
}

// PostPage is what the post view renders.
type PostPage struct {
	Article Article
	Preview bool
}
