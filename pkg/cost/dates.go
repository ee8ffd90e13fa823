package cost

import "time"

// DateLayout is the date format Cost Explorer expects.
const DateLayout = "2006-01-02"

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// NextMonthStart returns the first day of the month after t, the exclusive
// end of t's month.
func NextMonthStart(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0)
}

// PreviousMonth returns the previous calendar month as [start, end).
func PreviousMonth(t time.Time) (time.Time, time.Time) {
	end := MonthStart(t)
	return end.AddDate(0, -1, 0), end
}

// YearStart returns January 1st of t's year.
func YearStart(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// AnalysisWindow returns [end-days, end) with end truncated to the day.
func AnalysisWindow(now time.Time, days int) (time.Time, time.Time) {
	end := Day(now)
	return end.AddDate(0, 0, -days), end
}

// PreviousWindow returns the window of equal length right before start.
func PreviousWindow(start time.Time, days int) (time.Time, time.Time) {
	return start.AddDate(0, 0, -days), start
}
