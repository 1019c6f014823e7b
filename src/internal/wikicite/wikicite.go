// Package wikicite renders bibliographic metadata as MediaWiki citation
// templates ({{cite book}}, {{cite journal}}).
package wikicite

import (
	"fmt"
	"strings"

	"citebook/src/internal/names"
	"citebook/src/internal/sanitize"
	"citebook/src/internal/schema"
)

// Template names as they appear after the opening braces.
const (
	CiteBook    = "cite book"
	CiteJournal = "cite journal"
)

const (
	googleBooksURL = "https://books.google.com/books?id="
	doiURL         = "https://doi.org/"
)

// Field is one |name=value pair.
type Field struct {
	Name  string
	Value string
}

// AuthorName is a numbered author slot. Index is the 1-based position in the
// source list, so skipped entries leave gaps.
type AuthorName struct {
	Index int
	First string
	Last  string
}

// Citation is a rendered-ready template: its name, authors, then fields in order.
type Citation struct {
	Template string
	Authors  []AuthorName
	Fields   []Field
}

// String renders the citation on a single line.
func (c Citation) String() string {
	parts := make([]string, 0, len(c.Fields)+2)
	parts = append(parts, c.Template)
	if a := AuthorFields(c.Authors); a != "" {
		parts = append(parts, a)
	}
	for _, f := range c.Fields {
		parts = append(parts, "|"+f.Name+"="+sanitize.CleanString(f.Value))
	}
	return "{{" + strings.Join(parts, " ") + "}}"
}

// AuthorFields renders "|lastN=... |firstN=..." pairs joined by single spaces.
func AuthorFields(authors []AuthorName) string {
	out := make([]string, 0, len(authors))
	for _, a := range authors {
		out = append(out, fmt.Sprintf("|last%d=%s |first%d=%s", a.Index, sanitize.CleanString(a.Last), a.Index, sanitize.CleanString(a.First)))
	}
	return strings.Join(out, " ")
}

// FromNames numbers structured CSL names. Missing parts stay empty.
func FromNames(ns []schema.Name) []AuthorName {
	out := make([]AuthorName, 0, len(ns))
	for i, n := range ns {
		out = append(out, AuthorName{Index: i + 1, First: n.Given, Last: n.Family})
	}
	return out
}

// FromFreeText numbers free-text names. Blank names are skipped without
// renumbering the ones after them.
func FromFreeText(ns []string) []AuthorName {
	out := make([]AuthorName, 0, len(ns))
	for i, n := range ns {
		first, last, ok := names.SplitFreeText(n)
		if !ok {
			continue
		}
		out = append(out, AuthorName{Index: i + 1, First: first, Last: last})
	}
	return out
}

// SelectISBN prefers the first ISBN_13, then the first ISBN_10, else "".
func SelectISBN(ids []schema.IndustryIdentifier) string {
	for _, tier := range []string{"ISBN_13", "ISBN_10"} {
		for _, id := range ids {
			if id.Type == tier {
				return id.Identifier
			}
		}
	}
	return ""
}

// SelectISBNFromList applies the same preference to an untyped CSL ISBN list,
// typing each entry by its digit count. When no entry has 13 or 10 digits the
// first entry is used.
func SelectISBNFromList(isbns []string) string {
	ids := make([]schema.IndustryIdentifier, 0, len(isbns))
	for _, s := range isbns {
		if t := isbnType(s); t != "" {
			ids = append(ids, schema.IndustryIdentifier{Type: t, Identifier: s})
		}
	}
	if isbn := SelectISBN(ids); isbn != "" {
		return isbn
	}
	if len(isbns) > 0 {
		return strings.TrimSpace(isbns[0])
	}
	return ""
}

func isbnType(s string) string {
	n := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == 'X', r == 'x':
			n++
		case r == '-' || r == ' ':
		default:
			return ""
		}
	}
	switch n {
	case 13:
		return "ISBN_13"
	case 10:
		return "ISBN_10"
	}
	return ""
}
