package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"citebook/src/internal/dates"
)

// Volume is the Google Books volume resource. VolumeInfo is nil when the
// response did not carry one.
type Volume struct {
	VolumeInfo *Book `json:"volumeInfo"`
}

// Book holds the volumeInfo fields a citation needs. Authors are free-text names.
type Book struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
}

// IndustryIdentifier is a typed identifier such as ISBN_13 or ISBN_10.
type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// Work is the subset of a CSL-JSON record returned by DOI content negotiation.
type Work struct {
	Type           string   `json:"type"`
	Title          Text     `json:"title"`
	ContainerTitle Text     `json:"container-title"`
	Publisher      Text     `json:"publisher"`
	Author         []Name   `json:"author"`
	Issued         DateVar  `json:"issued"`
	ISBN           TextList `json:"ISBN"`
	Page           Text     `json:"page"`
	Volume         Text     `json:"volume"`
	Issue          Text     `json:"issue"`
}

// Name is a structured CSL name.
type Name struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// DateVar is a CSL date variable; only date-parts is read.
type DateVar struct {
	DateParts [][]any `json:"date-parts"`
}

// Year returns the year of the first date-parts entry, or "".
func (d DateVar) Year() string { return dates.YearFromParts(d.DateParts) }

// Text is a CSL string variable that tolerates the shapes publishers emit:
// - a string
// - a number (rendered in decimal)
// - an array (first element wins)
// - null
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case '[':
		var items []Text
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		if len(items) == 0 {
			*t = ""
			return nil
		}
		*t = items[0]
		return nil
	case '{':
		return fmt.Errorf("schema: cannot use object as text: %s", truncate(b))
	default:
		// numbers and booleans keep their literal form
		*t = Text(b)
		return nil
	}
}

func (t Text) String() string { return string(t) }

// TextList is a CSL list variable that also accepts a single string.
type TextList []string

func (l *TextList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	if b[0] != '[' {
		var one Text
		if err := one.UnmarshalJSON(b); err != nil {
			return err
		}
		if strings.TrimSpace(string(one)) == "" {
			*l = nil
			return nil
		}
		*l = TextList{string(one)}
		return nil
	}
	var items []Text
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	out := make(TextList, 0, len(items))
	for _, it := range items {
		out = append(out, string(it))
	}
	*l = out
	return nil
}

func truncate(b []byte) string {
	const max = 64
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
