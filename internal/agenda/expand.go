package agenda

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Schedule is a raw reservation record as fetched from storage. The time
// fields are free-form strings entered by users; RecurringDays holds
// extra ISO dates on which the reservation repeats.
type Schedule struct {
	ID            int64
	Date          string
	StartTime     string
	EndTime       string
	UserID        int64
	ParkingLot    string
	Row           int
	Col           int
	RecurringDays []string
}

// Occurrence is one concrete dated instance of a schedule.
type Occurrence struct {
	ScheduleID int64     `json:"schedule_id"`
	Key        string    `json:"key"`
	DayKey     string    `json:"day_key"`
	UserID     int64     `json:"user_id"`
	ParkingLot string    `json:"parking_lot"`
	Row        int       `json:"row"`
	Col        int       `json:"col"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

// Skipped records a day that was excluded from expansion because its
// time strings failed to parse. Returned alongside the valid
// occurrences so callers can surface a warning instead of silently
// hiding bad data.
type Skipped struct {
	ScheduleID int64  `json:"schedule_id"`
	DayKey     string `json:"day_key"`
	Reason     string `json:"reason"`
}

// dayKeyOf reduces a raw date string to a canonical "2006-01-02" key.
// Backend date fields sometimes carry a full RFC 3339 timestamp, so only
// the date portion is considered.
func dayKeyOf(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if len(s) < 10 {
		return "", false
	}
	day, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return "", false
	}
	return day.Format("2006-01-02"), true
}

// Expand turns one schedule into its dated occurrences: one per distinct
// day in {base date} ∪ {recurrence dates}, ascending. Days whose start
// or end time cannot be parsed are reported in the skipped list and
// produce no occurrence; a schedule with entirely unparseable times
// yields zero occurrences, not an error.
func Expand(s Schedule, loc *time.Location) ([]Occurrence, []Skipped) {
	seen := map[string]bool{}
	var days []string
	if key, ok := dayKeyOf(s.Date); ok {
		seen[key] = true
		days = append(days, key)
	}
	for _, raw := range s.RecurringDays {
		key, ok := dayKeyOf(raw)
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		days = append(days, key)
	}
	sort.Strings(days)

	var occs []Occurrence
	var skipped []Skipped
	for _, day := range days {
		start, okStart := ParseTimeOnDate(day, s.StartTime, loc)
		end, okEnd := ParseTimeOnDate(day, s.EndTime, loc)
		if !okStart || !okEnd {
			skipped = append(skipped, Skipped{
				ScheduleID: s.ID,
				DayKey:     day,
				Reason:     skipReason(okStart, okEnd),
			})
			continue
		}
		occs = append(occs, Occurrence{
			ScheduleID: s.ID,
			Key:        fmt.Sprintf("%d-%s", s.ID, day),
			DayKey:     day,
			UserID:     s.UserID,
			ParkingLot: s.ParkingLot,
			Row:        s.Row,
			Col:        s.Col,
			Start:      start,
			End:        end,
		})
	}
	return occs, skipped
}

// ExpandAll expands every schedule in the list, concatenating results.
func ExpandAll(schedules []Schedule, loc *time.Location) ([]Occurrence, []Skipped) {
	var occs []Occurrence
	var skipped []Skipped
	for _, s := range schedules {
		o, sk := Expand(s, loc)
		occs = append(occs, o...)
		skipped = append(skipped, sk...)
	}
	return occs, skipped
}

func skipReason(okStart, okEnd bool) string {
	switch {
	case !okStart && !okEnd:
		return "unparseable start and end time"
	case !okStart:
		return "unparseable start time"
	default:
		return "unparseable end time"
	}
}
