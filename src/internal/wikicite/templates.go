package wikicite

import (
	"fmt"

	"citebook/src/internal/dates"
	"citebook/src/internal/schema"
)

// UnsupportedTypeError is returned for CSL types with no template.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("Unsupported DOI type: %s", e.Type)
}

// FromVolume builds {{cite book}} for a Google Books volume.
func FromVolume(b schema.Book, volumeID string) Citation {
	return Citation{
		Template: CiteBook,
		Authors:  FromFreeText(b.Authors),
		Fields: []Field{
			{"date", b.PublishedDate},
			{"title", b.Title},
			{"url", googleBooksURL + volumeID},
			{"publisher", b.Publisher},
			{"isbn", SelectISBN(b.IndustryIdentifiers)},
			{"access-date", dates.Today()},
		},
	}
}

var workTemplates = map[string]func(w schema.Work, doi string) Citation{
	"journal-article": journalArticle,
	"book":            bookFromDOI,
	"monograph":       bookFromDOI,
	"book-chapter":    bookChapter,
}

// FromWork picks the template for the CSL type and builds it.
func FromWork(w schema.Work, doi string) (Citation, error) {
	build, ok := workTemplates[w.Type]
	if !ok {
		return Citation{}, &UnsupportedTypeError{Type: w.Type}
	}
	return build(w, doi), nil
}

func journalArticle(w schema.Work, doi string) Citation {
	return Citation{
		Template: CiteJournal,
		Authors:  FromNames(w.Author),
		Fields: []Field{
			{"date", w.Issued.Year()},
			{"title", w.Title.String()},
			{"url", doiURL + doi},
			{"journal", w.ContainerTitle.String()},
			{"volume", w.Volume.String()},
			{"issue", w.Issue.String()},
			{"publisher", w.Publisher.String()},
			{"pages", w.Page.String()},
			{"doi", doi},
			{"access-date", dates.Today()},
		},
	}
}

func bookFromDOI(w schema.Work, doi string) Citation {
	return Citation{
		Template: CiteBook,
		Authors:  FromNames(w.Author),
		Fields: []Field{
			{"date", w.Issued.Year()},
			{"title", w.Title.String()},
			{"url", doiURL + doi},
			{"publisher", w.Publisher.String()},
			{"isbn", SelectISBNFromList(w.ISBN)},
			{"doi", doi},
			{"access-date", dates.Today()},
		},
	}
}

func bookChapter(w schema.Work, doi string) Citation {
	return Citation{
		Template: CiteBook,
		Authors:  FromNames(w.Author),
		Fields: []Field{
			{"date", w.Issued.Year()},
			{"title", w.ContainerTitle.String()},
			{"chapter", w.Title.String()},
			{"url", doiURL + doi},
			{"publisher", w.Publisher.String()},
			{"isbn", SelectISBNFromList(w.ISBN)},
			{"pages", w.Page.String()},
			{"doi", doi},
			{"access-date", dates.Today()},
		},
	}
}
