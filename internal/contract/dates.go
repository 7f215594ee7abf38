package contract

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Persisted timestamps arrive in one of two encodings: ISO-8601 (with or
// without a zone suffix) or the fixed "2006-01-02 15:04:05" pattern. Storage
// does not canonicalize, so every reader has to accept both.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

const fallbackLayout = "2006-01-02 15:04:05"

// ParseTimestamp parses a stored timestamp, trying the ISO layouts first and
// the space-separated pattern last.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(fallbackLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// DaysRemaining returns the whole-day difference between end and now, floored,
// so a contract that expired an hour ago reports -1. The second return value
// is false when end cannot be parsed; callers treat that as "unknown" rather
// than an error.
func DaysRemaining(end string, now time.Time) (int, bool) {
	t, err := ParseTimestamp(end)
	if err != nil {
		return 0, false
	}
	diff := t.Sub(now.UTC())
	return int(math.Floor(diff.Hours() / 24)), true
}

// FormatDisplay renders a stored timestamp as DD/MM/YYYY HH:MM for humans.
// Unlike DaysRemaining this path only ever sees data already known to be
// well-formed, so a parse failure is a hard error.
func FormatDisplay(s string) (string, error) {
	t, err := ParseTimestamp(s)
	if err != nil {
		return "", err
	}
	return t.Format("02/01/2006 15:04"), nil
}
