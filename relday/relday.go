// Package relday turns a (year, month, RelativeDay, time-of-day) tuple into
// an absolute local civil.DateTime. It is pure: given the same inputs it
// always produces the same output, and it has no notion of offsets, rules,
// or zones -- those are layered on top by the resolver.
package relday

import (
	"github.com/tzres-go/tzres/civil"
	"github.com/tzres-go/tzres/tzdb"
)

// Resolve returns the local DateTime for the given year/month, interpreting
// day according to the RelativeDay it names (or the 1st of the month if day
// is nil), at timeOfDay seconds past local midnight.
func Resolve(year, month int, day *tzdb.RelativeDay, timeOfDay int64) civil.DateTime {
	if day == nil {
		return civil.AddSeconds(civil.EncodeDate(year, month, 1), timeOfDay)
	}

	y, m, d := dayOfMonth(year, month, *day)
	return civil.AddSeconds(civil.EncodeDate(y, m, d), timeOfDay)
}

// dayOfMonth expands a RelativeDay to an actual (year, month, day) triple.
// NthOfMonth never crosses into the following month: if advancing by a week
// would do so, the algorithm steps back a week and stops (this differs from
// some upstream tzdata conventions that do allow the spillover).
func dayOfMonth(year, month int, day tzdb.RelativeDay) (int, int, int) {
	switch day.Form {
	case tzdb.DayFixed:
		return year, month, day.Day

	case tzdb.DayLastOfMonth:
		last := civil.DaysInMonth(year, month)
		lastDow := int(civil.DayOfWeek(year, month, last))
		offset := (lastDow - day.Weekday + 7) % 7
		return year, month, last - offset

	case tzdb.DayNthOfMonth:
		return nthOfMonth(year, month, day.Weekday, day.AfterDay)

	default:
		panic("relday: invalid RelativeDay form")
	}
}

// nthOfMonth finds the smallest day >= afterDay in the month whose weekday
// matches target.
func nthOfMonth(year, month, target, afterDay int) (int, int, int) {
	firstDow := int(civil.DayOfWeek(year, month, 1))
	// Smallest day in 1..7 whose weekday is target.
	candidate := 1 + (target-firstDow+7)%7

	daysInMonth := civil.DaysInMonth(year, month)
	for candidate < afterDay {
		next := candidate + 7
		if next > daysInMonth {
			// Advancing would cross into next month; stop at the last
			// candidate within this month instead.
			break
		}
		candidate = next
	}
	return year, month, candidate
}
