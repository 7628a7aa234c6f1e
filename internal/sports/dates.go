package sports

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ESPN scoreboard endpoints take dates as YYYYMMDD.
const dateLayout = "20060102"

var (
	todayRe     = regexp.MustCompile(`\btoday\b`)
	yesterdayRe = regexp.MustCompile(`\byesterday\b`)
	mdyRe       = regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})[/\-](\d{2,4})`)
	ymdRe       = regexp.MustCompile(`(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})`)
	compactRe   = regexp.MustCompile(`\b(\d{4})(\d{2})(\d{2})\b`)
)

// FormatDate renders a time in the provider's YYYYMMDD format.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ResolveDate normalizes a free-text date expression into YYYYMMDD.
// Rules are tried in order: "today", "yesterday", M/D/YYYY (or M-D-YY),
// YYYY-M-D, then a bare 8-digit run accepted as-is. Returns false when
// nothing matches; callers must treat the date as missing rather than
// defaulting silently.
func ResolveDate(text string, now time.Time) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return "", false
	}

	if todayRe.MatchString(s) {
		return FormatDate(now), true
	}
	if yesterdayRe.MatchString(s) {
		return FormatDate(now.AddDate(0, 0, -1)), true
	}

	// Year-first beats month-first when both could match (e.g. 2025-11-16).
	if m := ymdRe.FindStringSubmatch(s); m != nil {
		return m[1] + pad2(m[2]) + pad2(m[3]), true
	}
	if m := mdyRe.FindStringSubmatch(s); m != nil {
		year := m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		return year + pad2(m[1]) + pad2(m[2]), true
	}
	if m := compactRe.FindString(s); m != "" {
		return m, true
	}

	return "", false
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// ParseDate converts a YYYYMMDD string back into a time, for display.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
