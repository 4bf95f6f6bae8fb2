package services

import (
	"errors"
	"strings"
	"time"
)

const rangeDateLayout = "2006-01-02"

var (
	ErrRangeFromDateInvalid = errors.New("invalid from date")
	ErrRangeToDateInvalid   = errors.New("invalid to date")
	ErrRangeInvalid         = errors.New("invalid date range")
)

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// ParseDateRange turns optional YYYY-MM-DD bounds into a half-open range.
// The returned end is the start of the day after rawTo, so sales made on
// the last day are included.
func ParseDateRange(rawFrom string, rawTo string, location *time.Location) (*time.Time, *time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	fromRaw := strings.TrimSpace(rawFrom)
	toRaw := strings.TrimSpace(rawTo)

	var from *time.Time
	if fromRaw != "" {
		parsedFrom, err := time.ParseInLocation(rangeDateLayout, fromRaw, location)
		if err != nil {
			return nil, nil, ErrRangeFromDateInvalid
		}
		normalizedFrom := DateAtLocation(parsedFrom, location)
		from = &normalizedFrom
	}

	var toEnd *time.Time
	if toRaw != "" {
		parsedTo, err := time.ParseInLocation(rangeDateLayout, toRaw, location)
		if err != nil {
			return nil, nil, ErrRangeToDateInvalid
		}
		nextDay := DateAtLocation(parsedTo, location).AddDate(0, 0, 1)
		toEnd = &nextDay
	}

	if from != nil && toEnd != nil && !toEnd.After(*from) {
		return nil, nil, ErrRangeInvalid
	}

	return from, toEnd, nil
}
