// Package schedule derives the selectable recurring event dates.
// The event happens once a week on a fixed weekday; the generator produces
// a window of past and future occurrences around "today" in the club's
// time zone. Everything here is pure date arithmetic: calling it twice
// within the same day yields identical output.
package schedule

import "time"

// DateLayout is the wire format for event dates (matches the sheet column).
const DateLayout = "2006-01-02"

// Dates returns pastCount+futureCount occurrence dates of weekday around
// today, strictly ascending, oldest first. The anchor is the most recent
// occurrence on or before today — when today is the target weekday, today
// itself is the anchor. pastCount includes the anchor.
func Dates(today time.Time, weekday time.Weekday, pastCount, futureCount int) []string {
	offset := (int(today.Weekday()) - int(weekday) + 7) % 7
	anchor := today.AddDate(0, 0, -offset)

	dates := make([]string, 0, pastCount+futureCount)
	for i := pastCount - 1; i >= 0; i-- {
		dates = append(dates, anchor.AddDate(0, 0, -7*i).Format(DateLayout))
	}
	for i := 1; i <= futureCount; i++ {
		dates = append(dates, anchor.AddDate(0, 0, 7*i).Format(DateLayout))
	}
	return dates
}

// DefaultIndex returns the index preselected in date dropdowns: the
// third-from-last entry (one week before the anchor with the default
// window), floored at 0 for short lists.
func DefaultIndex(n int) int {
	if n >= 3 {
		return n - 3
	}
	return 0
}

// Generator binds Dates to a clock, a location, and a configured window so
// callers don't thread those through every request.
type Generator struct {
	weekday time.Weekday
	past    int
	future  int
	loc     *time.Location
	now     func() time.Time
}

// New constructs a Generator. now is the clock; pass time.Now in
// production and a fixed func in tests.
func New(weekday time.Weekday, past, future int, loc *time.Location, now func() time.Time) *Generator {
	return &Generator{weekday: weekday, past: past, future: future, loc: loc, now: now}
}

// Dates returns the current selectable dates, oldest first.
func (g *Generator) Dates() []string {
	return Dates(g.now().In(g.loc), g.weekday, g.past, g.future)
}

// DefaultDate returns the date preselected in dropdowns, or "" when the
// configured window is empty.
func (g *Generator) DefaultDate() string {
	dates := g.Dates()
	if len(dates) == 0 {
		return ""
	}
	return dates[DefaultIndex(len(dates))]
}

// Timestamp returns the current wall-clock time in the club's time zone,
// formatted for the sheet's timestamp column.
func (g *Generator) Timestamp() string {
	return g.now().In(g.loc).Format("2006-01-02 15:04:05")
}
