package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// zeroOffsetTolerance is how close to zero an hour offset may be before it
// is rejected
const zeroOffsetTolerance = 1e-9

// OffsetSpec is a signed, possibly fractional, number of hours
type OffsetSpec struct {
	Hours float64
}

// Days converts the offset to the day units of CalendarValue.Serial
func (o OffsetSpec) Days() float64 {
	return o.Hours / 24
}

func (o OffsetSpec) String() string {
	return strconv.FormatFloat(o.Hours, 'f', -1, 64) + "h"
}

// parseOffset reads an hour offset from the command line. Zero and
// unparseable values are rejected.
func parseOffset(arg string) (OffsetSpec, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return OffsetSpec{}, fmt.Errorf("invalid hour offset %q: %w", arg, err)
	}
	if math.IsNaN(hours) || math.IsInf(hours, 0) || math.Abs(hours) < zeroOffsetTolerance {
		return OffsetSpec{}, fmt.Errorf("invalid hour offset %q", arg)
	}
	return OffsetSpec{Hours: hours}, nil
}

// ApplyOffset moves a valid value by the offset using linear day arithmetic
// so month and year rollovers fall out naturally. The result is
// re-validated and must not be persisted when an error is returned.
func ApplyOffset(value CalendarValue, offset OffsetSpec) (CalendarValue, error) {
	serial, err := value.Serial()
	if err != nil {
		return value, err
	}
	shifted := calendarValueFromSerial(serial + offset.Days())
	if !shifted.Valid() {
		return shifted, fmt.Errorf("%w: %s", ErrInvalidOffsetDate, shifted)
	}
	return shifted, nil
}
