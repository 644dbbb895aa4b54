package prismic

import (
	"strconv"
	"strings"
)

// Predicate is one clause of a search query, e.g. [at(document.type, "posts")].
type Predicate string

// At matches documents whose path equals value.
func At(path, value string) Predicate {
	return Predicate("[at(" + path + ", " + strconv.Quote(value) + ")]")
}

func joinPredicates(ps []Predicate) string {
	var b strings.Builder
	b.WriteByte('[')
	for _, p := range ps {
		b.WriteString(string(p))
	}
	b.WriteByte(']')
	return b.String()
}
