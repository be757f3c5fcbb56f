package time_parser

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp reads a query-string timestamp in UTC. It accepts ISO 8601
// strings and unix epochs; epochs above 1e12 are taken as milliseconds.
// An empty value yields the zero time.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}

	if epoch, err := strconv.ParseInt(value, 10, 64); err == nil {
		if epoch < 0 {
			return time.Time{}, ErrInvalidTimestamp
		}
		if epoch > 1e12 {
			return time.UnixMilli(epoch).UTC(), nil
		}
		return time.Unix(epoch, 0).UTC(), nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, ErrInvalidTimestamp
}
