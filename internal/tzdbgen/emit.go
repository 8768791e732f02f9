package tzdbgen

import (
	"fmt"
	"go/format"
	"strings"

	"github.com/tzres-go/tzres/tzdb"
)

// GenerateSource renders db as a self-contained Go source file declaring a
// package-level tzdb.Database variable named Generated, in the same
// hand-writable style as the bundled sample database. version is recorded
// in the file's header comment only; it plays no role in the data itself.
func GenerateSource(pkg, version string, db tzdb.Database) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "// Code generated by cmd/tzdbgen from IANA tzdata release %s. DO NOT EDIT.\n", version)
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	fmt.Fprintf(&b, "import \"github.com/tzres-go/tzres/tzdb\"\n\n")
	fmt.Fprintf(&b, "// dayRef takes the address of a RelativeDay value so it can be used\n")
	fmt.Fprintf(&b, "// where Period.UntilDay wants a pointer, inside a composite literal.\n")
	fmt.Fprintf(&b, "func dayRef(d tzdb.RelativeDay) *tzdb.RelativeDay { return &d }\n\n")

	emitRuleFamilies(&b, db.RuleFamilies)
	emitZones(&b, db.Zones)
	emitAliases(&b, db.Aliases)

	fmt.Fprintf(&b, "// Generated is the %s IANA time zone database.\n", version)
	fmt.Fprintf(&b, "var Generated = tzdb.Database{\n\tZones:        zones,\n\tAliases:      aliases,\n\tRuleFamilies: ruleFamilies,\n}\n")

	formatted, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return formatted, nil
}

func emitRuleFamilies(b *strings.Builder, families []tzdb.RuleFamily) {
	fmt.Fprintf(b, "var ruleFamilies = []tzdb.RuleFamily{\n")
	for _, fam := range families {
		fmt.Fprintf(b, "\t{Name: %q, Rules: []tzdb.YearBoundRule{\n", fam.Name)
		for _, ybr := range fam.Rules {
			emitYearBoundRule(b, ybr)
		}
		fmt.Fprintf(b, "\t}},\n")
	}
	fmt.Fprintf(b, "}\n\n")
}

func emitYearBoundRule(b *strings.Builder, ybr tzdb.YearBoundRule) {
	r := ybr.Rule
	fmt.Fprintf(b, "\t\t{StartYear: %s, EndYear: %s, Rule: tzdb.Rule{InMonth: %d, OnDay: %s, At: %d, AtMode: %s, Offset: %d, FmtPart: %q}},\n",
		yearLiteral(ybr.StartYear), yearLiteral(ybr.EndYear), r.InMonth, dayLiteral(r.OnDay), r.At, timeModeLiteral(r.AtMode), r.Offset, r.FmtPart)
}

func emitZones(b *strings.Builder, zones []tzdb.Zone) {
	fmt.Fprintf(b, "var zones = []tzdb.Zone{\n")
	for _, z := range zones {
		fmt.Fprintf(b, "\t{Name: %q, Periods: []tzdb.Period{\n", z.Name)
		for _, p := range z.Periods {
			emitPeriod(b, p)
		}
		fmt.Fprintf(b, "\t}},\n")
	}
	fmt.Fprintf(b, "}\n\n")
}

func emitPeriod(b *strings.Builder, p tzdb.Period) {
	fmt.Fprintf(b, "\t\t{Offset: %d, RuleFamily: %d, Fmt: %q", p.Offset, p.RuleFamily, p.Fmt)
	if !p.Open() {
		fmt.Fprintf(b, ", UntilYear: %d, UntilMonth: %d", p.UntilYear, p.UntilMonth)
		if p.UntilDay != nil {
			fmt.Fprintf(b, ", UntilDay: dayRef(%s)", dayLiteral(*p.UntilDay))
		}
		if p.UntilTime != 0 || p.UntilTimeMode != tzdb.Local {
			fmt.Fprintf(b, ", UntilTime: %d, UntilTimeMode: %s", p.UntilTime, timeModeLiteral(p.UntilTimeMode))
		}
	}
	fmt.Fprintf(b, "},\n")
}

func emitAliases(b *strings.Builder, aliases []tzdb.Alias) {
	fmt.Fprintf(b, "var aliases = []tzdb.Alias{\n")
	for _, a := range aliases {
		fmt.Fprintf(b, "\t{Name: %q, Zone: %d},\n", a.Name, a.Zone)
	}
	fmt.Fprintf(b, "}\n\n")
}

func yearLiteral(y int) string {
	switch y {
	case tzdb.MinYear:
		return "tzdb.MinYear"
	case tzdb.MaxYear:
		return "tzdb.MaxYear"
	default:
		return fmt.Sprintf("%d", y)
	}
}

func dayLiteral(d tzdb.RelativeDay) string {
	switch d.Form {
	case tzdb.DayFixed:
		return fmt.Sprintf("tzdb.Fixed(%d)", d.Day)
	case tzdb.DayLastOfMonth:
		return fmt.Sprintf("tzdb.LastOfMonth(%d)", d.Weekday)
	case tzdb.DayNthOfMonth:
		return fmt.Sprintf("tzdb.NthOfMonth(%d, %d)", d.Weekday, d.AfterDay)
	default:
		return "tzdb.RelativeDay{}"
	}
}

func timeModeLiteral(m tzdb.TimeMode) string {
	switch m {
	case tzdb.Standard:
		return "tzdb.Standard"
	case tzdb.Universal:
		return "tzdb.Universal"
	default:
		return "tzdb.Local"
	}
}
