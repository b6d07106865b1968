package main

import (
	"fmt"
	"math"
	"time"
)

// Plausible four-digit years
const (
	minYear = 1000
	maxYear = 9999
)

const (
	secondsPerDay = 24 * 60 * 60
	maxSerialDays = 1e7
)

// serialEpoch is day zero of the linear date representation (30 December 1899)
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC).Unix()

// CalendarValue is a date taken broken into its fields. The fields carry no
// meaning unless Valid reports true.
type CalendarValue struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// invalidCalendarValue is what a failed strict parse leaves behind
func invalidCalendarValue() CalendarValue {
	return CalendarValue{Year: -1, Month: -1, Day: -1}
}

// Valid reports whether every field is in range for the Gregorian calendar
func (c CalendarValue) Valid() bool {
	if c.Year < minYear || c.Year > maxYear {
		return false
	}
	if c.Month < 1 || c.Month > 12 {
		return false
	}
	if c.Day < 1 || c.Day > daysIn(c.Year, c.Month) {
		return false
	}
	if c.Hour < 0 || c.Hour > 23 {
		return false
	}
	if c.Minute < 0 || c.Minute > 59 {
		return false
	}
	return c.Second >= 0 && c.Second <= 59
}

// String renders the value in the canonical EXIF layout. Invalid values are
// rendered field by field so they can still be reported.
func (c CalendarValue) String() string {
	return fmt.Sprintf("%04d:%02d:%02d %02d:%02d:%02d", c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second)
}

// Time converts a valid value to a UTC time
func (c CalendarValue) Time() time.Time {
	return time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, c.Second, 0, time.UTC)
}

// Serial returns the value as a linear day count since 30 December 1899,
// with the time of day as the fractional part.
func (c CalendarValue) Serial() (float64, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDate, c)
	}
	secs := c.Time().Unix() - serialEpoch
	return float64(secs) / secondsPerDay, nil
}

// calendarValueFromSerial inverts Serial, rounding to the nearest second
func calendarValueFromSerial(serial float64) CalendarValue {
	// well beyond any four-digit year
	if math.IsNaN(serial) || math.Abs(serial) > maxSerialDays {
		return CalendarValue{}
	}
	secs := int64(math.Round(serial * secondsPerDay))
	return calendarValueFromTime(time.Unix(serialEpoch+secs, 0).UTC())
}

func calendarValueFromTime(t time.Time) CalendarValue {
	return CalendarValue{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// daysIn returns the number of days in the given month
func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
