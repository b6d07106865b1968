package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseStrict parses the canonical YYYY:MM:DD HH:MM:SS layout positionally.
// On failure the date fields are -1 and the time fields 0.
func parseStrict(raw string) (CalendarValue, bool) {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ':' || r == ' '
	})
	if len(parts) != 6 {
		return invalidCalendarValue(), false
	}

	var fields [6]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return invalidCalendarValue(), false
		}
		fields[i] = n
	}

	value := CalendarValue{
		Year:   fields[0],
		Month:  fields[1],
		Day:    fields[2],
		Hour:   fields[3],
		Minute: fields[4],
		Second: fields[5],
	}
	return value, value.Valid()
}

// ParseDateTaken parses a date taken string, first in the canonical layout
// and then heuristically. currentYear feeds two-digit year expansion.
func ParseDateTaken(raw string, currentYear int) (CalendarValue, error) {
	if strings.TrimSpace(raw) == "" {
		return CalendarValue{}, ErrMissingDate
	}
	if value, ok := parseStrict(raw); ok {
		return value, nil
	}
	value, ok := parseHeuristic(raw, currentYear)
	if !ok {
		return value, fmt.Errorf("%w: %s", ErrUnparsableDate, raw)
	}
	return value, nil
}
