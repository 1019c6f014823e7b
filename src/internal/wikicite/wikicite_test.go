package wikicite

import (
	"strings"
	"testing"
	"time"

	"citebook/src/internal/dates"
	"citebook/src/internal/schema"
)

func fixClock(t *testing.T) {
	t.Helper()
	dates.SetClock(func() time.Time { return time.Date(2025, 3, 9, 10, 0, 0, 0, time.Local) })
	t.Cleanup(func() { dates.SetClock(nil) })
}

func TestFromFreeText_SkipsBlankKeepsIndex(t *testing.T) {
	got := AuthorFields(FromFreeText([]string{"Jane Doe", "", "John Q. Public"}))
	want := "|last1=Doe |first1=Jane |last3=Public |first3=John Q."
	if got != want {
		t.Fatalf("AuthorFields = %q, want %q", got, want)
	}
	if strings.Contains(got, "last2") || strings.Contains(got, "first2") {
		t.Fatalf("index 2 should be absent: %q", got)
	}
}

func TestFromFreeText_SingleToken(t *testing.T) {
	got := AuthorFields(FromFreeText([]string{"Plato"}))
	if got != "|last1=Plato |first1=" {
		t.Fatalf("single token name: %q", got)
	}
}

func TestFromNames_EmptyParts(t *testing.T) {
	got := AuthorFields(FromNames([]schema.Name{{Given: "A", Family: "B"}, {Family: "Consortium"}, {Given: "Solo"}}))
	want := "|last1=B |first1=A |last2=Consortium |first2= |last3= |first3=Solo"
	if got != want {
		t.Fatalf("AuthorFields = %q, want %q", got, want)
	}
	if AuthorFields(nil) != "" {
		t.Fatalf("no authors should render empty")
	}
}

func TestSelectISBN(t *testing.T) {
	ids := []schema.IndustryIdentifier{
		{Type: "ISBN_10", Identifier: "1234567890"},
		{Type: "OTHER", Identifier: "UOM:39015"},
		{Type: "ISBN_13", Identifier: "9781234567890"},
		{Type: "ISBN_13", Identifier: "9780000000002"},
	}
	if got := SelectISBN(ids); got != "9781234567890" {
		t.Fatalf("ISBN_13 should win regardless of order, got %q", got)
	}
	// reversed order, same answer
	rev := []schema.IndustryIdentifier{ids[2], ids[1], ids[0]}
	if got := SelectISBN(rev); got != "9781234567890" {
		t.Fatalf("reversed: %q", got)
	}
	if got := SelectISBN(ids[:2]); got != "1234567890" {
		t.Fatalf("ISBN_10 fallback: %q", got)
	}
	if got := SelectISBN(ids[1:2]); got != "" {
		t.Fatalf("no ISBN: %q", got)
	}
	if got := SelectISBN(ids); got != SelectISBN(ids) {
		t.Fatalf("not deterministic")
	}
}

func TestSelectISBNFromList(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{[]string{"0-19-852663-6", "978-0-19-852663-6"}, "978-0-19-852663-6"},
		{[]string{"019852663X"}, "019852663X"},
		{[]string{"12345"}, "12345"},
		{nil, ""},
	}
	for _, c := range cases {
		if got := SelectISBNFromList(c.in); got != c.want {
			t.Fatalf("SelectISBNFromList(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFromVolume_Scenario(t *testing.T) {
	fixClock(t)
	b := schema.Book{
		Title:               "Sample",
		Authors:             []string{"Jane Doe"},
		Publisher:           "Acme",
		PublishedDate:       "2020",
		IndustryIdentifiers: []schema.IndustryIdentifier{{Type: "ISBN_13", Identifier: "9781234567890"}},
	}
	got := FromVolume(b, "AbC123XYZ").String()
	want := "{{cite book |last1=Doe |first1=Jane |date=2020 |title=Sample |url=https://books.google.com/books?id=AbC123XYZ |publisher=Acme |isbn=9781234567890 |access-date=2025-03-09}}"
	if got != want {
		t.Fatalf("FromVolume:\n got %s\nwant %s", got, want)
	}
}

func TestFromVolume_EmptyMetadataKeepsAllFields(t *testing.T) {
	fixClock(t)
	got := FromVolume(schema.Book{}, "X").String()
	want := "{{cite book |date= |title= |url=https://books.google.com/books?id=X |publisher= |isbn= |access-date=2025-03-09}}"
	if got != want {
		t.Fatalf("got %s", got)
	}
}

func TestFromWork_Journal(t *testing.T) {
	fixClock(t)
	w := schema.Work{
		Type:           "journal-article",
		Title:          "T",
		Author:         []schema.Name{{Given: "A", Family: "B"}},
		ContainerTitle: "J",
		Volume:         "5",
		Issue:          "2",
		Publisher:      "P",
		Page:           "1-10",
		Issued:         schema.DateVar{DateParts: [][]any{{float64(2021)}}},
	}
	c, err := FromWork(w, "10.1000/xyz123")
	if err != nil {
		t.Fatalf("FromWork: %v", err)
	}
	want := "{{cite journal |last1=B |first1=A |date=2021 |title=T |url=https://doi.org/10.1000/xyz123 |journal=J |volume=5 |issue=2 |publisher=P |pages=1-10 |doi=10.1000/xyz123 |access-date=2025-03-09}}"
	if got := c.String(); got != want {
		t.Fatalf("journal:\n got %s\nwant %s", got, want)
	}
}

func TestFromWork_BookAndMonograph(t *testing.T) {
	fixClock(t)
	for _, typ := range []string{"book", "monograph"} {
		w := schema.Work{
			Type:      typ,
			Title:     "Big Book",
			Author:    []schema.Name{{Given: "Ann", Family: "Lee"}},
			Publisher: "Press",
			ISBN:      schema.TextList{"0198526636", "9780198526636"},
			Issued:    schema.DateVar{DateParts: [][]any{{float64(2001), float64(4)}}},
		}
		c, err := FromWork(w, "10.1093/book")
		if err != nil {
			t.Fatalf("%s: %v", typ, err)
		}
		want := "{{cite book |last1=Lee |first1=Ann |date=2001 |title=Big Book |url=https://doi.org/10.1093/book |publisher=Press |isbn=9780198526636 |doi=10.1093/book |access-date=2025-03-09}}"
		if got := c.String(); got != want {
			t.Fatalf("%s:\n got %s\nwant %s", typ, got, want)
		}
	}
}

func TestFromWork_Chapter(t *testing.T) {
	fixClock(t)
	w := schema.Work{
		Type:           "book-chapter",
		Title:          "Chapter",
		ContainerTitle: "Collected Works",
		Author:         []schema.Name{{Given: "C", Family: "D"}},
		Publisher:      "Springer",
		Page:           "33-47",
		ISBN:           schema.TextList{"978-3-16-148410-0"},
		Issued:         schema.DateVar{DateParts: [][]any{{float64(2018)}}},
	}
	c, err := FromWork(w, "10.1007/ch1")
	if err != nil {
		t.Fatalf("FromWork: %v", err)
	}
	want := "{{cite book |last1=D |first1=C |date=2018 |title=Collected Works |chapter=Chapter |url=https://doi.org/10.1007/ch1 |publisher=Springer |isbn=978-3-16-148410-0 |pages=33-47 |doi=10.1007/ch1 |access-date=2025-03-09}}"
	if got := c.String(); got != want {
		t.Fatalf("chapter:\n got %s\nwant %s", got, want)
	}
}

func TestFromWork_Unsupported(t *testing.T) {
	_, err := FromWork(schema.Work{Type: "dataset"}, "10.5061/dryad.x")
	ute, ok := err.(*UnsupportedTypeError)
	if !ok {
		t.Fatalf("expected UnsupportedTypeError, got %T", err)
	}
	if ute.Type != "dataset" || err.Error() != "Unsupported DOI type: dataset" {
		t.Fatalf("message: %q", err.Error())
	}
	if _, err := FromWork(schema.Work{}, "10.1/x"); err == nil || err.Error() != "Unsupported DOI type: " {
		t.Fatalf("empty type: %v", err)
	}
}

func TestAccessDateIsToday(t *testing.T) {
	c := FromVolume(schema.Book{}, "x")
	got, ok := fieldValue(c, "access-date")
	if !ok || got != time.Now().Format("2006-01-02") {
		t.Fatalf("access-date %q, want today", got)
	}
	if _, ok := fieldValue(c, "chapter"); ok {
		t.Fatalf("volume citation has no chapter field")
	}
}

func TestString_SingleLine(t *testing.T) {
	fixClock(t)
	c := FromVolume(schema.Book{Title: "Line one\nline two", Authors: []string{"Jane\tDoe"}}, "x")
	s := c.String()
	if strings.ContainsAny(s, "\n\r\t") {
		t.Fatalf("multi-line output: %q", s)
	}
	if !strings.Contains(s, "|title=Line one line two") || !strings.Contains(s, "|last1=Doe |first1=Jane") {
		t.Fatalf("folded output: %q", s)
	}
}

func fieldValue(c Citation, name string) (string, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}
