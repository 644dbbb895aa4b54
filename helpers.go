package pubfront

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/goodsign/monday"

	"github.com/eringen/pubfront/richtext"
)

// timestampLayout is the provider's publication date format.
const timestampLayout = "2006-01-02T15:04:05-0700"

// ParseTimestamp parses a provider publication date.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatDate renders a provider publication date as day, abbreviated month
// and year in the given locale, e.g. "15 mar 2021" for pt_BR. Unparseable
// or empty input yields "".
func FormatDate(s, locale string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return ""
	}
	return monday.Format(t, "02 Jan 2006", monday.Locale(locale))
}

// FormatDateTime is FormatDate followed by the time of day, used for
// "edited at" notes.
func FormatDateTime(s, locale string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return ""
	}
	return monday.Format(t, "02 Jan 2006, 15:04", monday.Locale(locale))
}

// LoadMoreURL returns the listing URL that loads the page at cursor.
func LoadMoreURL(cursor string) string {
	return "/?" + url.Values{"cursor": {cursor}}.Encode()
}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(a Article, cfg SiteConfig) string {
	postURL := BuildURL(cfg.URL, "post", a.UID)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    a.Data.Title,
		"description": articleSummary(a),
		"url":         postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if t, ok := ParseTimestamp(a.FirstPublicationDate); ok {
		data["datePublished"] = t.Format(time.RFC3339)
	}
	if t, ok := ParseTimestamp(a.LastPublicationDate); ok {
		data["dateModified"] = t.Format(time.RFC3339)
	}
	if a.Data.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  a.Data.Author,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if a.Data.Banner.URL != "" {
		data["image"] = a.Data.Banner.URL
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

const summaryLength = 160

// articleSummary is the subtitle, or the opening of the body text when the
// post has none.
func articleSummary(a Article) string {
	if a.Data.Subtitle != "" {
		return a.Data.Subtitle
	}
	for _, s := range a.Data.Content {
		text := strings.Join(strings.Fields(richtext.AsText(s.Body)), " ")
		if text == "" {
			continue
		}
		if r := []rune(text); len(r) > summaryLength {
			return strings.TrimSpace(string(r[:summaryLength])) + "…"
		}
		return text
	}
	return ""
}
