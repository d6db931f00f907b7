package repository

import "time"

const dateLayout = "2006-01-02"

// parseDate parses a yyyy-MM-dd column into a date-only UTC time.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
