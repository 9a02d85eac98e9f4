// Package agenda expands raw reservation records into dated occurrences
// and groups them into calendar-style day sections. All functions are
// pure; callers re-invoke them whenever the underlying records change.
package agenda

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

var (
	// The meridiem may follow the minutes with no space at all, so a
	// plain \b on the left would miss "11:15pm".
	meridiemRe   = regexp.MustCompile(`(?i)(^|[\d\s.:])([ap])\s*\.?\s*m\b\.?`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	clockRe      = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(AM|PM)`)
)

// exotic space characters that survive NFKC and show up in copy-pasted
// time strings
var spaceReplacer = strings.NewReplacer(
	" ", " ", // no-break space
	" ", " ", // narrow no-break space
	" ", " ", // thin space
)

// NormalizeTimeText canonicalizes a free-form time string: NFKC Unicode
// normalization, exotic spaces to plain spaces, any spelling of the
// meridiem ("a.m.", "AM", "p. m.") to literal AM/PM, runs of whitespace
// collapsed, and the result trimmed. Idempotent.
func NormalizeTimeText(raw string) string {
	s := norm.NFKC.String(raw)
	s = spaceReplacer.Replace(s)
	s = meridiemRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := meridiemRe.FindStringSubmatch(m)
		if strings.EqualFold(sub[2], "p") {
			return sub[1] + " PM"
		}
		return sub[1] + " AM"
	})
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ParseTimeOnDate combines a day key ("2006-01-02") with a free-form
// 12-hour time string and returns the resulting instant in loc. The
// second return is false when either part fails to parse; malformed
// entries are dropped by callers, never raised.
func ParseTimeOnDate(dayKey, timeText string, loc *time.Location) (time.Time, bool) {
	day, err := time.ParseInLocation("2006-01-02", dayKey, loc)
	if err != nil {
		return time.Time{}, false
	}

	m := clockRe.FindStringSubmatch(NormalizeTimeText(timeText))
	if m == nil {
		return time.Time{}, false
	}
	hour := atoi(m[1])
	minute := atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return time.Time{}, false
	}
	if m[3] == "PM" && hour < 12 {
		hour += 12
	} else if m[3] == "AM" && hour == 12 {
		hour = 0
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), true
}

// atoi is safe here: inputs come from \d+ capture groups.
func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
