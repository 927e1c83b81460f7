package models

import (
	"strings"
	"time"
)

// KST is the zone the community renders its timestamps in
var KST = time.FixedZone("KST", 9*60*60)

var dateLayouts = []string{
	time.RFC3339,
	"2006.01.02. 15:04:05",
	"2006.01.02. 15:04",
	"2006.01.02.",
	"2006.01.02 15:04",
	"2006.01.02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDate parses a listing or post date. The second return is false when
// raw is not a recognizable date; callers decide what to do with such posts.
// A bare "15:04" means today, the way listings render same-day posts.
func ParseDate(raw string, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s == UnknownDate {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, KST); err == nil {
			return t, true
		}
	}

	if t, err := time.ParseInLocation("15:04", s, KST); err == nil {
		today := now.In(KST)
		return time.Date(today.Year(), today.Month(), today.Day(), t.Hour(), t.Minute(), 0, 0, KST), true
	}

	return time.Time{}, false
}

// NormalizeDate renders raw as RFC 3339, or the unknown sentinel when it does not parse
func NormalizeDate(raw string, now time.Time) string {
	t, ok := ParseDate(raw, now)
	if !ok {
		return UnknownDate
	}
	return t.Format(time.RFC3339)
}
