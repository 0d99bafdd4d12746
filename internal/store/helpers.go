package store

import (
	"strconv"
	"time"
)

// now returns the current UTC time formatted as an API timestamp.
func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// parseID parses a path-style id into the integer form the database uses.
// Both backends key on integer ids, and Postgres will not coerce text, so
// a non-numeric id can never match a row.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// formatID renders a database id in the string form the API uses.
func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
