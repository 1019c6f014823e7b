// Package identifier decides whether an input names a DOI or a Google Books
// volume and extracts the canonical identifier.
package identifier

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// Kind tags which identifier an Identifier carries.
type Kind int

const (
	DOI Kind = iota + 1
	VolumeID
)

func (k Kind) String() string {
	switch k {
	case DOI:
		return "doi"
	case VolumeID:
		return "volume"
	}
	return "unknown"
}

// Identifier is the classified input: a DOI string or a Google Books volume ID.
type Identifier struct {
	Kind  Kind
	Value string
}

// ErrNoVolumeID is returned when the input is neither DOI-shaped nor carries
// a recognisable Google Books volume ID.
var ErrNoVolumeID = errors.New("could not extract volume ID from the URL")

const doiURLPrefix = "https://doi.org/"

var doiPattern = regexp.MustCompile(`(?i)^10\.\d{4,9}/[-._;()/:A-Z0-9]+$`)

// Classify returns the Identifier for input.
func Classify(input string) (Identifier, error) {
	if IsDOI(input) {
		return Identifier{Kind: DOI, Value: ExtractDOI(input)}, nil
	}
	id, ok := VolumeFromURL(input)
	if !ok {
		return Identifier{}, ErrNoVolumeID
	}
	return Identifier{Kind: VolumeID, Value: id}, nil
}

// IsDOI reports whether s is a bare DOI or a https://doi.org/ link.
func IsDOI(s string) bool {
	return doiPattern.MatchString(s) || strings.HasPrefix(strings.ToLower(s), doiURLPrefix)
}

// ExtractDOI returns everything after "doi.org/" when present, else the trimmed input.
func ExtractDOI(s string) string {
	if _, after, ok := strings.Cut(s, "doi.org/"); ok {
		return after
	}
	return strings.TrimSpace(s)
}

// VolumeFromURL extracts a Google Books volume ID. Precedence:
//  1. .../edition/<title>/<ID>
//  2. ?id=<ID>
//  3. the last path segment when the path has at least two segments
//
// The URL is split by hand rather than parsed so that stray '%' or '+'
// characters in a title slug or ID never reject or alter an otherwise
// usable link.
func VolumeFromURL(raw string) (string, bool) {
	path, query := splitURL(strings.TrimSpace(raw))
	parts := pathSegments(path)
	if len(parts) >= 2 && parts[len(parts)-2] == "edition" {
		return parts[len(parts)-1], true
	}
	if id, ok := queryValue(query, "id"); ok {
		return id, id != ""
	}
	if len(parts) >= 2 {
		return parts[len(parts)-1], true
	}
	return "", false
}

// splitURL returns the path and raw query of s. The fragment is dropped and
// a scheme://host prefix, when present, is not part of the path.
func splitURL(s string) (path, query string) {
	s, _, _ = strings.Cut(s, "#")
	s, query, _ = strings.Cut(s, "?")
	rest, hasAuthority := "", false
	if _, after, ok := strings.Cut(s, "://"); ok {
		rest, hasAuthority = after, true
	} else if strings.HasPrefix(s, "//") {
		rest, hasAuthority = s[2:], true
	}
	if !hasAuthority {
		return s, query
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[i:], query
	}
	return "", query
}

// queryValue returns the first value of key in a raw query string. Values are
// percent-decoded but '+' is kept literally; undecodable values are returned raw.
func queryValue(rawQuery, key string) (string, bool) {
	for _, pair := range strings.Split(rawQuery, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if unescape(k) != key {
			continue
		}
		return unescape(v), true
	}
	return "", false
}

func unescape(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return s
}

func pathSegments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
