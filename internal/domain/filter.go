package domain

import (
	"strings"
	"time"
)

// DateRange is an inclusive [Start, End] window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, inclusive on both
// ends. A zero t never matches; it is the sentinel for a missing or
// unparsable date.
func (w DateRange) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// MatchesLocation applies a case-insensitive substring filter. An empty
// filter matches every record; a non-empty filter excludes records with an
// empty location.
func MatchesLocation(location, filter string) bool {
	if filter == "" {
		return true
	}
	if location == "" {
		return false
	}
	return strings.Contains(strings.ToLower(location), strings.ToLower(filter))
}
