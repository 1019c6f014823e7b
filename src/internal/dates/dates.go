package dates

import (
	"fmt"
	"time"
)

// ISODate is the YYYY-MM-DD layout used for access dates.
const ISODate = "2006-01-02"

var now = time.Now

// SetClock replaces the time source; nil restores time.Now. Intended for tests.
func SetClock(f func() time.Time) {
	if f == nil {
		f = time.Now
	}
	now = f
}

// Today returns the current local calendar date as YYYY-MM-DD.
func Today() string { return now().Local().Format(ISODate) }

// YearFromParts returns the first component of the first CSL date-parts entry,
// or "" when there is none. Numbers render in decimal; strings pass through.
func YearFromParts(parts [][]any) string {
	if len(parts) == 0 || len(parts[0]) == 0 {
		return ""
	}
	switch v := parts[0][0].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}
