package models

import "time"

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	clockLayout    = "15:04:05"
)

// FormatDate renders a nullable timestamp as YYYY-MM-DD. Nil passes
// through as nil, never a zero value.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// FormatDateTime renders a nullable timestamp as YYYY-MM-DD HH:MM:SS.
func FormatDateTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateTimeLayout)
	return &s
}

// FormatClock renders a nullable timestamp as HH:MM:SS.
func FormatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(clockLayout)
	return &s
}
