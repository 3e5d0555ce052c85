package domain

import "time"

// FormatLongDate renders a timestamp as a long display date, e.g. "June 2, 2024".
// It is purely presentational and used when composing emails.
func FormatLongDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
