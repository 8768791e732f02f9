// Package civil implements the calendar primitives that the resolver builds
// on: encoding a Gregorian date to an absolute instant, day-of-week, and
// days-in-month. It knows nothing about time zones, rules, or periods -- it
// is the proleptic-Gregorian arithmetic layer that the rest of the module
// treats as a fixed, external dependency.
package civil

// DateTime is a local instant, represented as the number of seconds since
// the domain epoch (0001-01-01 00:00:00). It carries no time zone of its
// own; callers attach meaning (UTC, standard, or wall-clock local) by
// construction.
//
// The zero value is the domain minimum. Arithmetic on DateTime never
// overflows in practice: the widest span the resolver deals with is a
// handful of centuries, far short of the int64 range.
type DateTime int64

// Min is the domain minimum, used as the "from" bound of a zone's earliest
// period.
const Min DateTime = 0

// Max is the domain maximum, used as the "until" bound of a zone's last
// period.
const Max DateTime = 1<<63 - 1

// SecondsPerMinute etc. are the fixed civil-time unit conversions; no leap
// seconds are modeled anywhere in this package.
const (
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute
	SecondsPerDay    = 24 * SecondsPerHour
)

// daysPer400Years etc. are the lengths of Gregorian leap-cycle periods,
// copied from the Go standard library's time package, which this resolver
// deliberately avoids depending on for local-time math (see package doc).
const (
	daysPer400Years = 365*400 + 97
	daysPer100Years = 365*100 + 24
	daysPer4Years   = 365*4 + 1
)

// daysBeforeMonth holds, for each month, the number of days that have
// elapsed since January 1st of the same (non-leap) year.
var daysBeforeMonth = [...]int64{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month (1..12) of year.
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// daysSinceDomainStart returns the number of days between the domain epoch
// (year 1) and the start of the given year, accounting for leap years.
func daysSinceDomainStart(year int) int64 {
	y := int64(year) - 1

	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	d += 365 * y
	return d
}

// EncodeDate returns the DateTime for year-month-day at 00:00:00.
// Month is 1..12, day is 1..31 (not range-checked: out-of-range days roll
// over or under into neighboring months the way the calendar defines them).
func EncodeDate(year, month, day int) DateTime {
	days := daysSinceDomainStart(year) + daysBeforeMonth[month-1] + int64(day-1)
	if month > 2 && IsLeapYear(year) {
		days++
	}
	return DateTime(days * SecondsPerDay)
}

// AddSeconds returns dt shifted by n seconds (n may be negative).
func AddSeconds(dt DateTime, n int64) DateTime {
	return dt + DateTime(n)
}

// Compare returns -1, 0, or +1 according to whether a is before, equal to,
// or after b.
func Compare(a, b DateTime) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Weekday is a day of the week, Monday = 1 .. Sunday = 7. This is the
// convention used throughout the resolver and its static data: a LastOfMonth
// or NthOfMonth relative day tags its weekday with these values.
type Weekday int

const (
	Monday    Weekday = 1
	Tuesday   Weekday = 2
	Wednesday Weekday = 3
	Thursday  Weekday = 4
	Friday    Weekday = 5
	Saturday  Weekday = 6
	Sunday    Weekday = 7
)

// DayOfWeek returns the Weekday of the given Gregorian date using Zeller's
// congruence.
func DayOfWeek(year, month, day int) Weekday {
	y, m := year, month
	if m < 3 {
		m += 12
		y--
	}
	k := y % 100
	j := y / 100
	h := (day + ((13 * (m + 1)) / 5) + k + (k / 4) + (j / 4) + (5 * j)) % 7
	// h is 0=Saturday .. 6=Friday; remap to 1=Monday..7=Sunday.
	sunday0 := (h + 6) % 7 // 0=Sunday .. 6=Saturday
	if sunday0 == 0 {
		return Sunday
	}
	return Weekday(sunday0)
}

// YearOf returns the Gregorian year containing dt.
func YearOf(dt DateTime) int {
	y, _, _, _ := Decompose(dt)
	return y
}

// Decompose splits dt into its Gregorian year, month (1..12), day (1..31),
// and seconds-of-day components.
func Decompose(dt DateTime) (year, month, day int, secondsOfDay int64) {
	totalSeconds := int64(dt)
	days := totalSeconds / SecondsPerDay
	secondsOfDay = totalSeconds % SecondsPerDay
	if secondsOfDay < 0 {
		secondsOfDay += SecondsPerDay
		days--
	}

	year = 1 + int(days/daysPer400Years)*400
	remaining := days - (int64(year-1)/400)*daysPer400Years
	// Walk forward year by year; the resolver never decomposes dates far
	// enough from year 1 for this to be a hot path.
	for {
		length := int64(365)
		if IsLeapYear(year) {
			length = 366
		}
		if remaining < length {
			break
		}
		remaining -= length
		year++
	}
	for month = 1; month <= 12; month++ {
		dim := int64(DaysInMonth(year, month))
		if remaining < dim {
			break
		}
		remaining -= dim
	}
	day = int(remaining) + 1
	return year, month, day, secondsOfDay
}
