package domain

import "time"

// LocalDay truncates a timestamp to its device-local calendar day. Every
// "has the user posted today" decision in the system compares the output of
// this one function, so midnight behavior is exact local wall-clock, not
// timezone-normalized UTC.
func LocalDay(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}

// LocalDayNumber returns the day index (local calendar days since the Unix
// epoch) for a timestamp. Noon UTC of the calendar date is used as the
// anchor so DST transitions cannot shift the index.
func LocalDayNumber(t time.Time) int64 {
	tt := t.In(time.Local)
	anchor := time.Date(tt.Year(), tt.Month(), tt.Day(), 12, 0, 0, 0, time.UTC)
	return anchor.Unix() / 86400
}

// DayForNumber is the inverse of LocalDayNumber: it renders a day index back
// to its YYYY-MM-DD form.
func DayForNumber(n int64) string {
	return time.Unix(n*86400+43200, 0).UTC().Format("2006-01-02")
}
