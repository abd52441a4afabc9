package helpers

import (
	// Go Internal Packages
	"strconv"
	"time"
)

// TimestampLayout is ISO-8601 with millisecond precision; callers pass UTC
// times so the zone is always rendered as "Z".
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// BuildKey joins a cache key prefix and an identifier.
func BuildKey(prefix, value string) string {
	return prefix + value
}

func BuildIntKey(prefix string, id int) string {
	return BuildKey(prefix, strconv.Itoa(id))
}
