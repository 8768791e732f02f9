// Package tzdbgen assembles one release's worth of parsed tzdata lines --
// already expressed in tzdb's own RelativeDay/TimeMode types by the tzdata
// package -- into the index-linked Zone/Period/RuleFamily graph tzresolve
// expects.
//
// Unlike a full zic-style compiler, it never resolves a rule family
// against a calendar: it only groups rule lines into families, chains zone
// continuation lines into periods, and resolves link targets. All of the
// resolving (which rule is active on a given date, where periods begin and
// end) happens lazily in tzresolve when a database is actually queried.
package tzdbgen

import (
	"fmt"

	"github.com/tzres-go/tzres/tzdata"
	"github.com/tzres-go/tzres/tzdb"
)

// Compile assembles f into a tzdb.Database and validates the result before
// returning it.
func Compile(f tzdata.File) (tzdb.Database, error) {
	families, ruleIndex := compileRuleFamilies(f.RuleLines)

	order, groups := groupZoneLines(f.ZoneLines)
	zones := make([]tzdb.Zone, 0, len(order))
	zoneIndex := make(map[string]int, len(order))
	for _, name := range order {
		lines := groups[name]
		periods := make([]tzdb.Period, 0, len(lines))
		for _, zl := range lines {
			p, err := mapZoneLine(name, zl, ruleIndex)
			if err != nil {
				return tzdb.Database{}, fmt.Errorf("compiling zone %s: %w", name, err)
			}
			periods = append(periods, p)
		}
		zoneIndex[name] = len(zones)
		zones = append(zones, tzdb.Zone{Name: name, Periods: periods})
	}

	aliases, err := resolveAliases(f.LinkLines, zoneIndex)
	if err != nil {
		return tzdb.Database{}, fmt.Errorf("resolving links: %w", err)
	}

	db := tzdb.Database{Zones: zones, Aliases: aliases, RuleFamilies: families}
	if err := tzdb.Validate(db); err != nil {
		return tzdb.Database{}, fmt.Errorf("generated database failed validation: %w", err)
	}
	return db, nil
}

// groupZoneLines buckets zl by the zone name a continuation line inherits
// from the most recent non-continuation line, and returns the bucket names
// in first-seen order so Compile's output is deterministic regardless of
// map iteration order.
func groupZoneLines(zl []tzdata.ZoneLine) ([]string, map[string][]tzdata.ZoneLine) {
	groups := make(map[string][]tzdata.ZoneLine)
	var order []string
	var lastName string
	for _, l := range zl {
		if !l.Continuation {
			lastName = l.Name
		}
		if _, ok := groups[lastName]; !ok {
			order = append(order, lastName)
		}
		groups[lastName] = append(groups[lastName], l)
	}
	return order, groups
}

// compileRuleFamilies groups rule lines sharing a name into a RuleFamily,
// in first-seen order, and returns the name-to-index map zones resolve
// their RULES column against.
func compileRuleFamilies(lines []tzdata.RuleLine) ([]tzdb.RuleFamily, map[string]int) {
	index := make(map[string]int)
	var families []tzdb.RuleFamily
	for _, rl := range lines {
		idx, ok := index[rl.Name]
		if !ok {
			idx = len(families)
			index[rl.Name] = idx
			families = append(families, tzdb.RuleFamily{Name: rl.Name})
		}
		ybr := tzdb.YearBoundRule{
			StartYear: rl.From,
			EndYear:   rl.To,
			Rule: tzdb.Rule{
				InMonth: rl.In,
				OnDay:   rl.On,
				At:      rl.At,
				AtMode:  rl.AtMode,
				Offset:  rl.Save,
				FmtPart: rl.Letter,
			},
		}
		families[idx].Rules = append(families[idx].Rules, ybr)
	}
	return families, index
}

// mapZoneLine builds the Period for one zone line, resolving its RULES
// column (a rule family name, or empty when the zone never varies by
// rule) against the families already collected from the release's rule
// lines.
func mapZoneLine(name string, zl tzdata.ZoneLine, ruleIndex map[string]int) (tzdb.Period, error) {
	p := tzdb.Period{
		Offset:     zl.Offset,
		Fmt:        zl.Format,
		RuleFamily: -1,
	}

	if zl.RuleFamily != "" {
		idx, ok := ruleIndex[zl.RuleFamily]
		if !ok {
			return tzdb.Period{}, fmt.Errorf("zone %s: rule family %q is not defined by any rule line", name, zl.RuleFamily)
		}
		p.RuleFamily = idx
	}

	if zl.Until == nil {
		return p, nil
	}

	p.UntilYear = zl.Until.Year
	p.UntilMonth = zl.Until.Month
	p.UntilDay = zl.Until.Day
	p.UntilTime = zl.Until.Time
	p.UntilTimeMode = zl.Until.TimeMode
	return p, nil
}

// resolveAliases maps each link's link-name to the zone index its target
// ultimately refers to, following chains of links until every one resolves
// or no further progress is possible.
func resolveAliases(links []tzdata.LinkLine, zoneIndex map[string]int) ([]tzdb.Alias, error) {
	nameToZone := make(map[string]int, len(zoneIndex))
	for name, idx := range zoneIndex {
		nameToZone[name] = idx
	}

	pending := append([]tzdata.LinkLine(nil), links...)
	var aliases []tzdb.Alias
	for len(pending) > 0 {
		var next []tzdata.LinkLine
		progressed := false
		for _, link := range pending {
			idx, ok := nameToZone[link.From]
			if !ok {
				next = append(next, link)
				continue
			}
			aliases = append(aliases, tzdb.Alias{Name: link.To, Zone: idx})
			nameToZone[link.To] = idx
			progressed = true
		}
		if !progressed {
			unresolved := make([]string, len(next))
			for i, l := range next {
				unresolved[i] = fmt.Sprintf("%s -> %s", l.From, l.To)
			}
			return nil, fmt.Errorf("unresolved link targets: %v", unresolved)
		}
		pending = next
	}
	return aliases, nil
}
