// Package tzdata parses IANA tzdata source files (the ones distributed at
// https://www.iana.org/time-zones, e.g. "europe" or "northamerica") into
// Rule, Zone, and Link lines expressed directly in this resolver's own
// domain types -- tzdb.RelativeDay and tzdb.TimeMode -- rather than in a
// line-for-line transcription of the text format. A release is split
// across several such files, so Parse works file-by-file; the caller
// merges and resolves rule-family references across files afterward.
package tzdata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tzres-go/tzres/civil"
	"github.com/tzres-go/tzres/tzdb"
)

// File holds the zone, rule, and link lines parsed from one tzdata source
// file, in the order they appeared. Leap-second data (the dedicated
// "leapseconds" file) is out of scope for this resolver and is never
// routed through Parse.
type File struct {
	ZoneLines []ZoneLine
	RuleLines []RuleLine
	LinkLines []LinkLine
}

// RuleLine is one recurring instruction from a Rule line: within every year
// in [From, To], the zone referencing this rule family by name shifts its
// offset by Save starting at the moment In/On/At (interpreted under
// AtMode) names.
type RuleLine struct {
	Name   string
	From   int
	To     int
	In     int // month, 1..12
	On     tzdb.RelativeDay
	At     int64
	AtMode tzdb.TimeMode
	Save   int64
	Letter string
}

// ZoneLine is a Zone line, or one of its continuation lines (Name and
// Continuation distinguish the two). Offset already folds in a bare,
// unnamed SAVE (a zone whose RULES column gives a fixed time rather than a
// rule-family name); RuleFamily is empty whenever the period's offset
// never varies by rule.
type ZoneLine struct {
	Continuation bool
	Name         string
	Offset       int64
	RuleFamily   string
	Format       string
	Until        *ZoneUntil
}

// ZoneUntil is a Zone line's optional UNTIL column: the moment at which
// the period it ends gives way to the next. A nil field below the ones
// actually given in the source defaults to the earliest value for that
// field, per tzdata's own trailing-field convention.
type ZoneUntil struct {
	Year     int
	Month    int
	Day      *tzdb.RelativeDay
	Time     int64
	TimeMode tzdb.TimeMode
}

// LinkLine aliases To to the zone or link chain named From.
type LinkLine struct {
	From string
	To   string
}

type parseError struct {
	lineNumber int
	line       string
	err        error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.lineNumber, e.line, e.err)
}

func zoneContinuationParseError(lineNumber int, line string, err error) error {
	return &parseError{lineNumber, line, fmt.Errorf("parse zone continuation: %w", err)}
}

func zoneParseError(lineNumber int, line string, err error) error {
	return &parseError{lineNumber, line, fmt.Errorf("parse zone: %w", err)}
}

func ruleParseError(lineNumber int, line string, err error) error {
	return &parseError{lineNumber, line, fmt.Errorf("parse rule: %w", err)}
}

func linkParseError(lineNumber int, line string, err error) error {
	return &parseError{lineNumber, line, fmt.Errorf("parse link: %w", err)}
}

// Parse reads one tzdata source file and returns its Zone, Rule, and Link
// lines. Leap and Expires lines, which belong only to the dedicated
// leapseconds file, are rejected -- a release's zone/rule/link files never
// contain them.
func Parse(r io.Reader) (File, error) {
	var result File
	scanner := bufio.NewScanner(r)

	var (
		lineNumber           int
		continuationExpected bool
	)
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		fields, err := splitLine(line)
		if err != nil {
			return result, err
		}
		if fields == nil {
			continue // comment or blank line
		}
		switch {
		case strings.HasPrefix(line, "Zone") || continuationExpected:
			var zone ZoneLine
			if continuationExpected {
				zone, err = parseZoneContinuationLine(fields)
				if err != nil {
					return result, zoneContinuationParseError(lineNumber, line, err)
				}
			} else {
				zone, err = parseZoneLine(fields)
				if err != nil {
					return result, zoneParseError(lineNumber, line, err)
				}
			}
			result.ZoneLines = append(result.ZoneLines, zone)
			// A defined UNTIL column means a continuation line follows.
			continuationExpected = zone.Until != nil
		case strings.HasPrefix(line, "Rule"):
			rule, err := parseRuleLine(fields)
			if err != nil {
				return result, ruleParseError(lineNumber, line, err)
			}
			result.RuleLines = append(result.RuleLines, rule)
		case strings.HasPrefix(line, "Link"):
			link, err := parseLinkLine(fields)
			if err != nil {
				return result, linkParseError(lineNumber, line, err)
			}
			result.LinkLines = append(result.LinkLines, link)
		default:
			return result, &parseError{lineNumber, line, fmt.Errorf("unexpected line (leap-second lines are not supported)")}
		}
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scanner: %w", err)
	}
	return result, nil
}

// splitLine strips comments and surrounding white space and splits what
// remains into fields. It returns a nil slice, with no error, for a blank
// or comment-only line.
func splitLine(line string) ([]string, error) {
	if i := strings.Index(line, "#"); i != -1 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return nil, nil
	}
	return strings.Fields(line), nil
}

// parseZoneLine parses a "Zone NAME STDOFF RULES FORMAT [UNTIL]" line.
func parseZoneLine(fields []string) (ZoneLine, error) {
	if len(fields) < 5 {
		return ZoneLine{}, fmt.Errorf("expected at least 5 fields, got %d", len(fields))
	}
	if len(fields) > 9 {
		return ZoneLine{}, fmt.Errorf("expected at most 9 fields, got %d", len(fields))
	}
	if fields[0] != "Zone" {
		return ZoneLine{}, fmt.Errorf("expected 'Zone', got %q", fields[0])
	}
	var (
		z    ZoneLine
		errs error
		err  error
	)
	if z.Name, err = parseZoneNAME(fields[1]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("NAME %q: %w", fields[1], err))
	}
	if z.Offset, z.RuleFamily, err = parseZoneOffsetAndRules(fields[2], fields[3]); err != nil {
		errs = errors.Join(errs, err)
	}
	if z.Format, err = parseZoneFORMAT(fields[4]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("FORMAT %q: %w", fields[4], err))
	}
	if len(fields) > 5 {
		until := strings.Join(fields[5:], " ")
		if z.Until, err = parseZoneUNTIL(until); err != nil {
			errs = errors.Join(errs, fmt.Errorf("UNTIL %q: %w", fields[5], err))
		}
	}
	return z, errs
}

// parseZoneContinuationLine parses a zone line's continuation: the same
// shape as a zone line but without the leading "Zone" keyword and NAME
// column, which it inherits from the line it continues.
func parseZoneContinuationLine(fields []string) (ZoneLine, error) {
	if len(fields) < 3 {
		return ZoneLine{}, fmt.Errorf("expected at least 3 fields, got %d", len(fields))
	}
	if len(fields) > 7 {
		return ZoneLine{}, fmt.Errorf("expected at most 7 fields, got %d", len(fields))
	}
	var (
		z    ZoneLine
		errs error
		err  error
	)
	z.Continuation = true
	if z.Offset, z.RuleFamily, err = parseZoneOffsetAndRules(fields[0], fields[1]); err != nil {
		errs = errors.Join(errs, err)
	}
	if z.Format, err = parseZoneFORMAT(fields[2]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("FORMAT %q: %w", fields[2], err))
	}
	if len(fields) > 3 {
		until := strings.Join(fields[3:], " ")
		if z.Until, err = parseZoneUNTIL(until); err != nil {
			errs = errors.Join(errs, fmt.Errorf("UNTIL %q: %w", fields[3], err))
		}
	}
	return z, errs
}

// parseZoneNAME validates the NAME column: it must not contain a "."
// anywhere, since it doubles as a file name component when zic
// writes out a compiled zone.
func parseZoneNAME(s string) (string, error) {
	if len(s) == 0 {
		return "", fmt.Errorf("empty name")
	}
	if strings.Contains(s, ".") {
		return "", fmt.Errorf("name contains a dot: %q", s)
	}
	return s, nil
}

// parseZoneOffsetAndRules parses the STDOFF and RULES columns together,
// since a bare (unnamed) RULES time folds directly into the base offset:
// such a zone never varies by rule, so it earns no rule family at all.
func parseZoneOffsetAndRules(stdoff, rules string) (offset int64, family string, err error) {
	base, err := parseTimeOfDay(stdoff)
	if err != nil {
		return 0, "", fmt.Errorf("STDOFF %q: %w", stdoff, err)
	}

	switch {
	case rules == "-":
		return base, "", nil
	default:
		if save, _, err := parseTimeOfDayWithSuffix(rules, []string{"s", "d"}); err == nil {
			return base + save, "", nil
		}
		// Not "-" and not a time: must be a rule family name. Whether a
		// rule line actually defines that family is checked once every
		// rule line in every file of the release has been parsed.
		return base, rules, nil
	}
}

// parseZoneFORMAT validates and unquotes the FORMAT column.
func parseZoneFORMAT(s string) (string, error) {
	if len(s) == 0 {
		return "", fmt.Errorf("empty format")
	}
	unquoted, _ := unquote(s)
	return unquoted, nil
}

// parseZoneUNTIL parses the UNTIL column: one to four whitespace-separated
// fields, YEAR [MONTH [DAY [TIME]]], each trailing field defaulting to the
// earliest value for that field when omitted. A zero-length s (UNTIL
// absent) returns a nil ZoneUntil rather than an error.
func parseZoneUNTIL(s string) (*ZoneUntil, error) {
	if len(s) == 0 {
		return nil, nil
	}

	fields := strings.Fields(s)
	if len(fields) > 4 {
		return nil, fmt.Errorf("too many fields: %d", len(fields))
	}

	u := &ZoneUntil{Month: 1}

	year, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("year: %v", err)
	}
	u.Year = year

	if len(fields) > 1 {
		month, err := parseMonth(fields[1])
		if err != nil {
			return nil, fmt.Errorf("month: %v", err)
		}
		u.Month = month
	}

	if len(fields) > 2 {
		day, err := parseDaySpec(fields[2])
		if err != nil {
			return nil, fmt.Errorf("day: %v", err)
		}
		u.Day = &day
	}

	if len(fields) > 3 {
		at, atMode, err := parseAtField(fields[3])
		if err != nil {
			return nil, fmt.Errorf("time: %v", err)
		}
		u.Time, u.TimeMode = at, atMode
	}

	return u, nil
}

// parseRuleLine parses a "Rule NAME FROM TO - IN ON AT SAVE LETTER/S" line.
func parseRuleLine(fields []string) (RuleLine, error) {
	if len(fields) != 10 {
		return RuleLine{}, fmt.Errorf("expected 10 fields, got %d", len(fields))
	}
	if fields[0] != "Rule" {
		return RuleLine{}, fmt.Errorf("expected 'Rule', got %q", fields[0])
	}
	var (
		r    RuleLine
		errs error
		err  error
	)
	if r.Name, err = parseRuleNAME(fields[1]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("NAME %q: %w", fields[1], err))
	}
	if r.From, err = parseRuleFROM(fields[2]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("FROM %q: %w", fields[2], err))
	}
	if r.To, err = parseRuleTO(fields[3], r.From); err != nil {
		errs = errors.Join(errs, fmt.Errorf("TO %q: %w", fields[3], err))
	}
	if r.In, err = parseRuleIN(fields[5]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("IN %q: %w", fields[5], err))
	}
	if r.On, err = parseDaySpec(fields[6]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("ON %q: %w", fields[6], err))
	}
	if r.At, r.AtMode, err = parseAtField(fields[7]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("AT %q: %w", fields[7], err))
	}
	if r.Save, _, err = parseTimeOfDayWithSuffix(fields[8], []string{"s", "d"}); err != nil {
		errs = errors.Join(errs, fmt.Errorf("SAVE %q: %w", fields[8], err))
	}
	if r.Letter, err = parseRuleLETTERS(fields[9]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("LETTER/S %q: %w", fields[9], err))
	}
	return r, errs
}

// parseLinkLine parses a "Link TARGET LINK-NAME" line. A link line can
// appear before the line defining its target; chains across files are
// resolved later, once every file's lines are in hand.
func parseLinkLine(fields []string) (LinkLine, error) {
	if len(fields) != 3 {
		return LinkLine{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	if fields[0] != "Link" {
		return LinkLine{}, fmt.Errorf("expected 'Link', got %q", fields[0])
	}
	return LinkLine{From: fields[1], To: fields[2]}, nil
}

// parseRuleNAME validates the NAME column: it must not start with a digit
// or sign, and an unquoted name must avoid tzdata's reserved punctuation.
func parseRuleNAME(s string) (string, error) {
	if len(s) == 0 {
		return "", fmt.Errorf("empty name")
	}
	if s[0] >= '0' && s[0] <= '9' {
		return "", fmt.Errorf("name starts with a digit: %q", s)
	}
	if s[0] == '-' || s[0] == '+' {
		return "", fmt.Errorf("name starts with a sign: %q", s)
	}

	unquoted, wasQuoted := unquote(s)
	if !wasQuoted && containsSpecialChar(s) {
		return "", fmt.Errorf("name contains special character: %q", s)
	}
	return unquoted, nil
}

func containsSpecialChar(s string) bool {
	const specialChars = "!$%&'()*,/:;<=>?@[\\]^`{|}~"
	return strings.ContainsAny(s, specialChars)
}

func unquote(s string) (string, bool) {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1], true
	}
	return s, false
}

// parseRuleFROM parses the FROM column: a signed year, or "minimum"/"maximum"
// (or an abbreviation) for the indefinite past/future.
func parseRuleFROM(s string) (int, error) {
	if isAbbrev(s, "minimum", "mi") {
		return tzdb.MinYear, nil
	}
	if isAbbrev(s, "maximum", "ma") {
		return tzdb.MaxYear, nil
	}
	return strconv.Atoi(s)
}

// parseRuleTO parses the TO column: like FROM, plus "only" (or an
// abbreviation) to repeat the FROM year.
func parseRuleTO(s string, from int) (int, error) {
	if isAbbrev(s, "minimum", "mi") {
		return tzdb.MinYear, nil
	}
	if isAbbrev(s, "maximum", "ma") {
		return tzdb.MaxYear, nil
	}
	if isAbbrev(s, "only", "o") {
		return from, nil
	}
	return strconv.Atoi(s)
}

func parseRuleIN(s string) (int, error) {
	m, err := parseMonth(s)
	if err != nil {
		return 0, err
	}
	return m, nil
}

func parseMonth(s string) (int, error) {
	if len(s) < 3 {
		return 0, fmt.Errorf("month %q: too short", s)
	}
	l := strings.ToLower(s)
	months := []struct {
		long string
		min  string
	}{
		{"january", "jan"}, {"february", "feb"}, {"march", "mar"}, {"april", "apr"},
		{"may", "may"}, {"june", "jun"}, {"july", "jul"}, {"august", "aug"},
		{"september", "sep"}, {"october", "oct"}, {"november", "nov"}, {"december", "dec"},
	}
	for i, m := range months {
		if isAbbrev(l, m.long, m.min) {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("month %q: invalid", s)
}

// parseDaySpec parses a rule's ON column, or a zone UNTIL's DAY column,
// directly into a tzdb.RelativeDay. "weekday<=dayofmonth" (the last
// occurrence of weekday on or before a day-of-month) has no representation
// in that type and is rejected outright, rather than deferred to a later
// translation step: that's tzdb.RelativeDay's own limitation, not an
// artifact of how this package reads text.
func parseDaySpec(s string) (tzdb.RelativeDay, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return tzdb.Fixed(n), nil
	}
	if strings.HasPrefix(s, "last") {
		day, err := parseWeekday(s[4:])
		if err != nil {
			return tzdb.RelativeDay{}, err
		}
		return tzdb.LastOfMonth(day), nil
	}
	if strings.Contains(s, "<=") {
		return tzdb.RelativeDay{}, fmt.Errorf("weekday<=dayofmonth form %q is not representable by this resolver's day model", s)
	}
	if strings.Contains(s, ">=") {
		parts := strings.SplitN(s, ">=", 2)
		if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) == 0 {
			return tzdb.RelativeDay{}, fmt.Errorf("expected weekday>=dayofmonth")
		}
		day, err := parseWeekday(parts[0])
		if err != nil {
			return tzdb.RelativeDay{}, fmt.Errorf("weekday %q: %w", parts[0], err)
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return tzdb.RelativeDay{}, fmt.Errorf("day-of-month %q: %w", parts[1], err)
		}
		return tzdb.NthOfMonth(day, n), nil
	}
	return tzdb.RelativeDay{}, fmt.Errorf("invalid day spec %q", s)
}

// parseAtField parses a rule's AT column, or a zone UNTIL's TIME column:
// a time of day plus an optional w/s/u/g/z suffix naming the reference
// frame it is expressed in (wall clock time is assumed when the suffix is
// absent).
func parseAtField(s string) (int64, tzdb.TimeMode, error) {
	d, suffix, err := parseTimeOfDayWithSuffix(s, []string{"w", "s", "u", "g", "z"})
	if err != nil {
		return 0, 0, err
	}
	switch suffix {
	case "s":
		return d, tzdb.Standard, nil
	case "u", "g", "z":
		return d, tzdb.Universal, nil
	default:
		return d, tzdb.Local, nil
	}
}

// parseRuleLETTERS parses the LETTER/S column: "-" means no variable part.
func parseRuleLETTERS(s string) (string, error) {
	if len(s) == 0 {
		return "", fmt.Errorf("empty letter")
	}
	if unquoted, ok := unquote(s); ok {
		s = unquoted
	}
	if s == "-" {
		return "", nil
	}
	return s, nil
}

// parseTimeOfDayWithSuffix strips the first matching suffix (if any) from
// timeStr before handing the remainder to parseTimeOfDay.
func parseTimeOfDayWithSuffix(timeStr string, suffixes []string) (int64, string, error) {
	for _, suffix := range suffixes {
		if strings.HasSuffix(timeStr, suffix) {
			d, err := parseTimeOfDay(strings.TrimSuffix(timeStr, suffix))
			if err != nil {
				return 0, "", err
			}
			return d, suffix, nil
		}
	}
	d, err := parseTimeOfDay(timeStr)
	if err != nil {
		return 0, "", err
	}
	return d, "", nil
}

// parseTimeOfDay parses a time-of-day field (hours, "H:MM", "H:MM:SS", or
// "H:MM:SS.fff", optionally negative, or "-" for zero) into whole seconds
// past midnight, truncating any fractional second: nothing downstream of
// this package resolves sub-second transitions.
func parseTimeOfDay(s string) (int64, error) {
	if s == "-" {
		return 0, nil
	}

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = strings.TrimPrefix(s, "-")
	}

	parts := strings.Split(s, ":")
	var hours, minutes, seconds int
	var err error

	if hours, err = strconv.Atoi(parts[0]); err != nil {
		return 0, fmt.Errorf("invalid hour format: %v", err)
	}
	if len(parts) > 1 {
		if minutes, err = strconv.Atoi(parts[1]); err != nil {
			return 0, fmt.Errorf("invalid minute format: %v", err)
		}
	}
	if len(parts) > 2 {
		secondField, _, _ := strings.Cut(parts[2], ".")
		if seconds, err = strconv.Atoi(secondField); err != nil {
			return 0, fmt.Errorf("invalid second format: %v", err)
		}
	}

	total := int64(hours)*3600 + int64(minutes)*60 + int64(seconds)
	if negative {
		total = -total
	}
	return total, nil
}

// parseWeekday parses a weekday name (full or abbreviated) into the
// Monday=1..Sunday=7 convention tzdb.RelativeDay uses.
func parseWeekday(s string) (int, error) {
	l := strings.ToLower(s)
	switch {
	case isAbbrev(l, "sunday", "su"):
		return int(civil.Sunday), nil
	case isAbbrev(l, "monday", "m"):
		return int(civil.Monday), nil
	case isAbbrev(l, "tuesday", "tu"):
		return int(civil.Tuesday), nil
	case isAbbrev(l, "wednesday", "w"):
		return int(civil.Wednesday), nil
	case isAbbrev(l, "thursday", "th"):
		return int(civil.Thursday), nil
	case isAbbrev(l, "friday", "f"):
		return int(civil.Friday), nil
	case isAbbrev(l, "saturday", "sa"):
		return int(civil.Saturday), nil
	default:
		return 0, fmt.Errorf("invalid weekday %q", s)
	}
}

func isAbbrev(s, long, min string) bool {
	return strings.HasPrefix(s, min) && strings.HasPrefix(long, s)
}
