// Package tzdb defines the static, read-only time zone database that the
// resolver compiles against: zones, periods, rule families, and aliases.
//
// Everything in this package is immutable once constructed. The graph is
// meant to be produced once -- by hand for the handful of zones bundled in
// data_generated.go, or by the generator in cmd/tzdbgen for a full IANA
// release -- and then shared freely across goroutines. Values reference
// each other by slice index rather than by pointer (see DESIGN.md for why),
// which keeps the graph trivially copyable and avoids aliasing hazards.
package tzdb

// DayForm tags which of the three shapes a RelativeDay takes.
type DayForm int

const (
	// DayFixed names a specific day-of-month (1..31).
	DayFixed DayForm = iota
	// DayLastOfMonth names the last occurrence of a weekday in the month.
	DayLastOfMonth
	// DayNthOfMonth names the first occurrence of a weekday on or after a
	// given day-of-month.
	DayNthOfMonth
)

func (f DayForm) String() string {
	switch f {
	case DayFixed:
		return "Fixed"
	case DayLastOfMonth:
		return "LastOfMonth"
	case DayNthOfMonth:
		return "NthOfMonth"
	default:
		return "<undefined DayForm>"
	}
}

// RelativeDay names a day within a month, either as a fixed day-of-month or
// relative to a weekday. It is the tagged-union replacement for the
// Pascal-style variant record described in the design notes: Form picks
// which of Day / Weekday / AfterDay is meaningful.
type RelativeDay struct {
	Form DayForm

	// Day holds the day-of-month for DayFixed.
	Day int

	// Weekday holds the target weekday for DayLastOfMonth and DayNthOfMonth.
	// Uses the civil.Weekday convention: Monday = 1 .. Sunday = 7.
	Weekday int

	// AfterDay holds the lower-bound day-of-month for DayNthOfMonth.
	AfterDay int
}

// Fixed returns a RelativeDay naming the day-th day of the month.
func Fixed(day int) RelativeDay {
	return RelativeDay{Form: DayFixed, Day: day}
}

// LastOfMonth returns a RelativeDay naming the last occurrence of weekday in
// the month.
func LastOfMonth(weekday int) RelativeDay {
	return RelativeDay{Form: DayLastOfMonth, Weekday: weekday}
}

// NthOfMonth returns a RelativeDay naming the first occurrence of weekday on
// or after afterDay in the month.
func NthOfMonth(weekday, afterDay int) RelativeDay {
	return RelativeDay{Form: DayNthOfMonth, Weekday: weekday, AfterDay: afterDay}
}

// TimeMode tags the reference frame a clock reading is expressed in.
type TimeMode int

const (
	// Local means the time is wall-clock time under whatever offset is in
	// effect just before the transition.
	Local TimeMode = iota
	// Standard means the time is standard time, ignoring any DST
	// adjustment.
	Standard
	// Universal means the time is UTC.
	Universal
)

func (m TimeMode) String() string {
	switch m {
	case Local:
		return "Local"
	case Standard:
		return "Standard"
	case Universal:
		return "Universal"
	default:
		return "<undefined TimeMode>"
	}
}

// Rule is a recurring instruction that shifts a zone's offset by Offset
// seconds starting at the moment described by InMonth/OnDay/At (interpreted
// under AtMode), each year within the YearBoundRule that references it.
type Rule struct {
	InMonth int // 1..12
	OnDay   RelativeDay
	At      int64 // seconds after local midnight
	AtMode  TimeMode
	Offset  int64 // seconds added to the period's base offset while active
	FmtPart string
}

// YearBoundRule restricts a Rule to a range of years, inclusive on both
// ends. MinYear/MaxYear mark the indefinite past/future.
type YearBoundRule struct {
	StartYear int
	EndYear   int
	Rule      Rule
}

const (
	// MinYear marks the indefinite past.
	MinYear = -1 << 31
	// MaxYear marks the indefinite future.
	MaxYear = 1<<31 - 1
)

// RuleFamily is an ordered, non-empty set of YearBoundRule sharing a name.
// A Period references a family by index into Database.RuleFamilies.
type RuleFamily struct {
	Name  string
	Rules []YearBoundRule
}

// Period is a contiguous interval during which a zone's base UTC offset,
// abbreviation format, and governing rule family are constant. UntilYear
// and UntilMonth both zero with UntilDay nil means the period is open-ended
// ("forever"; see Open); a well-formed database only allows this for a
// zone's final period.
type Period struct {
	Offset int64 // base seconds east of UTC

	// RuleFamily indexes into Database.RuleFamilies, or is -1 if the
	// period uses standard time unconditionally.
	RuleFamily int

	Fmt string // abbreviation template; may contain %s

	UntilYear     int
	UntilMonth    int // 1..12
	UntilDay      *RelativeDay
	UntilTime     int64
	UntilTimeMode TimeMode
}

// HasRuleFamily reports whether the period is governed by a rule family.
func (p Period) HasRuleFamily() bool {
	return p.RuleFamily >= 0
}

// Open reports whether the period has no UNTIL bound, i.e. it is the final
// period of its zone.
func (p Period) Open() bool {
	return p.UntilDay == nil && p.UntilYear == 0 && p.UntilMonth == 0
}

// Zone is a canonical IANA time zone: a name and its ordered, non-empty
// sequence of periods.
type Zone struct {
	Name    string
	Periods []Period
}

// Alias maps an alternate spelling to a Zone by index into Database.Zones.
type Alias struct {
	Name string
	Zone int
}

// Database is the bundled, immutable static time zone database: zones,
// aliases, and rule families, expressed as index-linked slices instead of
// pointer-linked arrays.
type Database struct {
	Zones        []Zone
	Aliases      []Alias
	RuleFamilies []RuleFamily
}
