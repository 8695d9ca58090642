package dateutil

import (
	"errors"
	"strings"
	"time"
)

const DefaultDatePlaceholder = "-"

var ErrUnknownLayout = errors.New("unknown date layout")

// layouts accepted from the directory, most specific first. Values without a zone are UTC.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a directory date in any of the known layouts.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnknownLayout
}

// FormatNullableTime formats time pointer or returns default placeholder
func FormatNullableTime(t *time.Time, layout string) string {
	if t == nil {
		return DefaultDatePlaceholder
	}
	if layout == "" {
		layout = time.RFC3339
	}
	return t.Format(layout)
}
