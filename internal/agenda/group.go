package agenda

import (
	"sort"
	"time"
)

// Order selects the direction day sections are returned in. The admin
// dashboard reads oldest-first; the history view reads newest-first.
type Order int

const (
	OldestFirst Order = iota
	NewestFirst
)

// DaySection is one collapsible group of occurrences sharing a calendar
// day.
type DaySection struct {
	DayKey      string       `json:"day_key"`
	Label       string       `json:"label"`
	Occurrences []Occurrence `json:"occurrences"`
}

// GroupByDay partitions occurrences into day sections. The grouping key
// is derived from each occurrence's start instant, which is the single
// source of truth for its day. Occurrences within a section are ordered
// by start time ascending; sections are ordered by day key in the
// requested direction. ISO day keys sort correctly as strings.
func GroupByDay(occs []Occurrence, order Order, today time.Time) []DaySection {
	byDay := map[string][]Occurrence{}
	for _, occ := range occs {
		key := occ.Start.Format("2006-01-02")
		byDay[key] = append(byDay[key], occ)
	}

	keys := make([]string, 0, len(byDay))
	for key := range byDay {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if order == NewestFirst {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}

	sections := make([]DaySection, 0, len(keys))
	for _, key := range keys {
		group := byDay[key]
		sort.Slice(group, func(i, j int) bool {
			return group[i].Start.Before(group[j].Start)
		})
		sections = append(sections, DaySection{
			DayKey:      key,
			Label:       DayLabel(key, today),
			Occurrences: group,
		})
	}
	return sections
}

// DayLabel renders a human label for a day key relative to today.
// Comparison is on date-only keys, never on instants, so timezone
// offsets cannot shift a day across the boundary.
func DayLabel(dayKey string, today time.Time) string {
	switch dayKey {
	case today.Format("2006-01-02"):
		return "Today"
	case today.AddDate(0, 0, 1).Format("2006-01-02"):
		return "Tomorrow"
	}
	day, err := time.Parse("2006-01-02", dayKey)
	if err != nil {
		return dayKey
	}
	return day.Format("Mon, Jan 2")
}

// FormatTimeRange renders a start/end pair as "8:00 AM–5:00 PM".
func FormatTimeRange(start, end time.Time) string {
	return start.Format("3:04 PM") + "–" + end.Format("3:04 PM")
}
