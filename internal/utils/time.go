package utils

import "time"

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

// NowUTC returns current time in UTC, truncated to whole seconds so it
// round-trips through DATETIME columns unchanged.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// FormatDate formats t as YYYY-MM-DD in its own location.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layoutDate)
}

// FormatDateTime formats t as "YYYY-MM-DD HH:MM:SS" in its own location.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layoutDateTime)
}
