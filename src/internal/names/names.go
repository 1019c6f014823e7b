package names

import (
	"strings"
)

// SplitFreeText splits a free-text "Given Names Family" string. The last
// whitespace-separated token is the family name and everything before it,
// joined by single spaces, is the given name. ok is false when name has no tokens.
func SplitFreeText(name string) (given, family string, ok bool) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", "", false
	}
	family = parts[len(parts)-1]
	given = strings.Join(parts[:len(parts)-1], " ")
	return given, family, true
}
