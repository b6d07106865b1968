package main

// parseHeuristic recovers a date taken from six loosely ordered tokens. It
// handles layouts such as:
//
//	January 25, 1996 8:30:00
//	25 January 1996 8:30:00
//	8:30:00 Jan. 25, 1996
//	8:30:00 PM 25 Jan. 1996
//	1/25/1996 11:30:00 PM
//	1996/1/25 23:30:00
//	1/25/96 23:30:00
//
// The value is returned even when it is not valid so that it can be reported.
func parseHeuristic(raw string, currentYear int) (CalendarValue, bool) {
	td := tokenizeDate(raw)
	if len(td.Tokens) != 6 {
		return CalendarValue{}, false
	}

	// last match wins for both
	yearIndex, monthIndex := -1, -1
	month := 0
	for i, tok := range td.Tokens {
		switch tok.Class {
		case tokenYear:
			yearIndex = i
		case tokenMonth:
			monthIndex = i
			month = tok.Month
		}
	}

	t := func(i int) int { return leadingInt(td.Tokens[i].Text) }

	v := CalendarValue{Hour: t(3), Minute: t(4), Second: t(5)}

	switch monthIndex {
	case 0: // Month Day Year Time
		v.Month, v.Day, v.Year = month, t(1), t(2)
	case 1: // Day Month Year Time
		v.Month, v.Day, v.Year = month, t(0), t(2)
	case 3: // Time Month Day Year
		v.Hour, v.Minute, v.Second = t(0), t(1), t(2)
		v.Month, v.Day, v.Year = month, t(4), t(5)
	case 4: // Time Day Month Year
		v.Hour, v.Minute, v.Second = t(0), t(1), t(2)
		v.Month, v.Day, v.Year = month, t(3), t(5)
	default:
		switch yearIndex {
		case 0: // Year/Month/Day Time
			v.Year, v.Month, v.Day = t(0), t(1), t(2)
		case 2: // Month/Day/Year Time
			v.Month, v.Day, v.Year = t(0), t(1), t(2)
		case 3: // Time Year/Month/Day
			v.Hour, v.Minute, v.Second = t(0), t(1), t(2)
			v.Year, v.Month, v.Day = t(3), t(4), t(5)
		case 5: // Time Month/Day/Year
			v.Hour, v.Minute, v.Second = t(0), t(1), t(2)
			v.Month, v.Day, v.Year = t(3), t(4), t(5)
		default:
			// two-digit year, Month/Day/Year unless that cannot be a date
			v.Month, v.Day, v.Year = t(0), t(1), t(2)
			if v.Month < 1 || v.Month > 12 || v.Day < 1 || v.Day > 31 {
				v.Year, v.Month, v.Day = t(0), t(1), t(2)
			}
		}
	}

	if td.AM {
		v.Hour--
	} else if td.PM {
		v.Hour += 11
	}

	v.Year = expandTwoDigitYear(v.Year, currentYear)

	return v, v.Valid()
}

// expandTwoDigitYear compares a two-digit year against the full current
// year, so in practice the 2000 branch is taken.
func expandTwoDigitYear(year, currentYear int) int {
	if year >= 100 {
		return year
	}
	if year > currentYear {
		return year + 1900
	}
	return year + 2000
}
