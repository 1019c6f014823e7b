package sanitize

import (
	"strings"
)

// CleanString trims, removes ASCII control characters and folds tab, newline
// and carriage return (with surrounding blanks) into single spaces so the value
// fits on one line.
func CleanString(s string) string {
	pieces := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\t' || r == '\r' })
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p = strings.TrimSpace(stripControls(p)); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func stripControls(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
