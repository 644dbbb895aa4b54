// Package richtext renders Prismic structured text as HTML, either directly
// into a buffer or as a templ component.
package richtext

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/a-h/templ"
)

// Block is one element of a rich text field.
type Block struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Spans []Span `json:"spans"`

	// Image blocks.
	URL        string      `json:"url,omitempty"`
	Alt        string      `json:"alt,omitempty"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
}

// Dimensions of an image block.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Span marks a run of a block's text. Start and End count UTF-16 code units.
type Span struct {
	Start int       `json:"start"`
	End   int       `json:"end"`
	Type  string    `json:"type"`
	Data  *SpanData `json:"data,omitempty"`
}

// SpanData carries hyperlink targets.
type SpanData struct {
	LinkType string `json:"link_type"`
	URL      string `json:"url"`
	Target   string `json:"target,omitempty"`
}

// RichText is an ordered list of blocks.
type RichText []Block

// Component returns a templ.Component that renders rt as HTML.
func Component(rt RichText) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		Render(&buf, rt)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render writes the HTML representation of rt to buf.
func Render(buf *bytes.Buffer, rt RichText) {
	imageCount := 0
	inList := false
	inOrderedList := false

	flushList := func() {
		if inList {
			buf.WriteString("</ul>")
			inList = false
		}
	}
	flushOrderedList := func() {
		if inOrderedList {
			buf.WriteString("</ol>")
			inOrderedList = false
		}
	}

	for _, b := range rt {
		switch b.Type {
		case "list-item":
			flushOrderedList()
			if !inList {
				buf.WriteString("<ul>")
				inList = true
			}
			buf.WriteString("<li>")
			buf.WriteString(FormatSpans(b.Text, b.Spans))
			buf.WriteString("</li>")
			continue
		case "o-list-item":
			flushList()
			if !inOrderedList {
				buf.WriteString("<ol>")
				inOrderedList = true
			}
			buf.WriteString("<li>")
			buf.WriteString(FormatSpans(b.Text, b.Spans))
			buf.WriteString("</li>")
			continue
		}
		flushList()
		flushOrderedList()

		switch b.Type {
		case "heading1", "heading2", "heading3", "heading4", "heading5", "heading6":
			tag := "h" + b.Type[len("heading"):]
			buf.WriteString("<" + tag + ">")
			buf.WriteString(FormatSpans(b.Text, b.Spans))
			buf.WriteString("</" + tag + ">")
		case "preformatted":
			buf.WriteString(`<pre class="code-block"><code>`)
			buf.WriteString(html.EscapeString(b.Text))
			buf.WriteString("</code></pre>")
		case "image":
			src := SafeURL(b.URL)
			if src == "" {
				continue
			}
			imageCount++
			loadAttr := `loading="lazy"`
			if imageCount == 1 {
				loadAttr = `fetchpriority="high"`
			}
			buf.WriteString(`<img ` + loadAttr)
			if b.Dimensions != nil {
				buf.WriteString(` width="` + strconv.Itoa(b.Dimensions.Width) + `" height="` + strconv.Itoa(b.Dimensions.Height) + `"`)
			}
			buf.WriteString(` alt="` + html.EscapeString(b.Alt) + `" src="` + src + `" decoding="async"/>`)
		default:
			if strings.TrimSpace(b.Text) == "" {
				continue
			}
			buf.WriteString("<p>")
			buf.WriteString(FormatSpans(b.Text, b.Spans))
			buf.WriteString("</p>")
		}
	}
	flushList()
	flushOrderedList()
}

// FormatSpans escapes text and wraps the runs covered by spans. Overlapping
// spans are split at every boundary so the output is always well nested.
func FormatSpans(text string, spans []Span) string {
	units := utf16.Encode([]rune(text))
	n := len(units)

	var valid []Span
	for _, s := range spans {
		if s.Start < 0 || s.End > n || s.Start >= s.End {
			continue
		}
		if _, _, ok := spanTags(s); !ok {
			continue
		}
		valid = append(valid, s)
	}
	if len(valid) == 0 {
		return html.EscapeString(text)
	}
	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Start != valid[j].Start {
			return valid[i].Start < valid[j].Start
		}
		return valid[i].End > valid[j].End
	})

	cuts := map[int]struct{}{0: {}, n: {}}
	for _, s := range valid {
		cuts[s.Start] = struct{}{}
		cuts[s.End] = struct{}{}
	}
	bounds := make([]int, 0, len(cuts))
	for c := range cuts {
		bounds = append(bounds, c)
	}
	sort.Ints(bounds)

	var b strings.Builder
	for i := 0; i+1 < len(bounds); i++ {
		from, to := bounds[i], bounds[i+1]
		seg := html.EscapeString(string(utf16.Decode(units[from:to])))
		var closers []string
		for _, s := range valid {
			if s.Start <= from && s.End >= to {
				open, close, _ := spanTags(s)
				b.WriteString(open)
				closers = append(closers, close)
			}
		}
		b.WriteString(seg)
		for j := len(closers) - 1; j >= 0; j-- {
			b.WriteString(closers[j])
		}
	}
	return b.String()
}

func spanTags(s Span) (string, string, bool) {
	switch s.Type {
	case "strong":
		return "<strong>", "</strong>", true
	case "em":
		return "<em>", "</em>", true
	case "hyperlink":
		if s.Data == nil {
			return "", "", false
		}
		href := SafeURL(s.Data.URL)
		if href == "" {
			return "", "", false
		}
		attrs := `class="underline decoration-2 underline-offset-4"`
		if s.Data.Target == "_blank" {
			attrs += ` target="_blank" rel="noopener noreferrer"`
		}
		return `<a href="` + href + `" ` + attrs + `>`, "</a>", true
	}
	return "", "", false
}

// AsText returns the text of every block, one block per line.
func AsText(rt RichText) string {
	parts := make([]string, 0, len(rt))
	for _, b := range rt {
		if b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// WordCount counts whitespace-separated words across all blocks.
func WordCount(rt RichText) int {
	return len(strings.Fields(AsText(rt)))
}

// SafeURL returns an attribute-escaped URL when it is relative or uses an
// allowed scheme, and "" otherwise.
func SafeURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
