package models

import "time"

// HistoryWindow names a relative time range used to filter trackings.
type HistoryWindow string

const (
	HistoryToday    HistoryWindow = "today"
	HistoryWeek     HistoryWindow = "week"
	HistoryMonth    HistoryWindow = "month"
	HistoryQuarter  HistoryWindow = "quarter"
	HistorySemester HistoryWindow = "semester"
	HistoryYear     HistoryWindow = "year"
)

// HistoryWindows lists the accepted tokens in ascending span.
var HistoryWindows = []HistoryWindow{
	HistoryToday, HistoryWeek, HistoryMonth, HistoryQuarter, HistorySemester, HistoryYear,
}

// Valid reports whether w is one of the accepted tokens.
func (w HistoryWindow) Valid() bool {
	for _, v := range HistoryWindows {
		if w == v {
			return true
		}
	}
	return false
}

// Since returns the lower bound of the window relative to now.
// "today" starts at midnight in now's location; the others count back whole
// calendar units. The second result is false for an unknown token.
func (w HistoryWindow) Since(now time.Time) (time.Time, bool) {
	switch w {
	case HistoryToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case HistoryWeek:
		return now.AddDate(0, 0, -7), true
	case HistoryMonth:
		return now.AddDate(0, -1, 0), true
	case HistoryQuarter:
		return now.AddDate(0, -3, 0), true
	case HistorySemester:
		return now.AddDate(0, -6, 0), true
	case HistoryYear:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}
