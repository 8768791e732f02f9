package tzresolve

import (
	"sort"
	"sync"

	"github.com/tzres-go/tzres/civil"
	"github.com/tzres-go/tzres/relday"
	"github.com/tzres-go/tzres/tzdb"
)

// CompiledRule is a single year's materialisation of a Rule: the absolute
// local instant at which it takes effect, and its links to the rules
// immediately before and after it within that year's list. Links never
// cross year boundaries.
type CompiledRule struct {
	Rule     *tzdb.Rule
	StartsOn civil.DateTime
	Offset   int64

	Prev, Next *CompiledRule
}

// CompiledPeriod is a Period with its local [From, Until) interval resolved,
// plus a lazily populated per-year cache of compiled rules. The cache is
// guarded by mu, held across the read-miss, compile, and insert so that two
// goroutines racing to compile the same year never observe a half-built
// list.
type CompiledPeriod struct {
	Period *tzdb.Period
	From   civil.DateTime
	Until  civil.DateTime

	mu        sync.Mutex
	yearRules map[int][]*CompiledRule
}

func ruleFamilyOf(db *tzdb.Database, p *tzdb.Period) (*tzdb.RuleFamily, bool) {
	if !p.HasRuleFamily() {
		return nil, false
	}
	return &db.RuleFamilies[p.RuleFamily], true
}

// lastRuleForYear scans fam for the rule, among those whose year range
// includes year, whose absolute (unadjusted) activation instant in that
// year is latest. Ties favor the rule appearing later in fam.Rules.
func lastRuleForYear(fam *tzdb.RuleFamily, year int) (*tzdb.Rule, bool) {
	var best *tzdb.Rule
	var bestAbs civil.DateTime
	found := false
	for i := range fam.Rules {
		ybr := &fam.Rules[i]
		if year < ybr.StartYear || year > ybr.EndYear {
			continue
		}
		r := &ybr.Rule
		abs := relday.Resolve(year, r.InMonth, &r.OnDay, r.At)
		if !found || civil.Compare(abs, bestAbs) >= 0 {
			best, bestAbs, found = r, abs, true
		}
	}
	return best, found
}

// compileRulesForYear builds the doubly-linked, date-sorted rule list for
// one year of one period, including the seeded carry-over rule from the
// previous year's last activation. Returns nil if the period has no rule
// family.
func compileRulesForYear(db *tzdb.Database, p *tzdb.Period, year int) []*CompiledRule {
	fam, ok := ruleFamilyOf(db, p)
	if !ok {
		return nil
	}

	var list []*CompiledRule

	if seed, ok := lastRuleForYear(fam, year-1); ok {
		list = append(list, &CompiledRule{
			Rule:     seed,
			StartsOn: civil.EncodeDate(year, 1, 1),
			Offset:   seed.Offset,
		})
	}

	for i := range fam.Rules {
		ybr := &fam.Rules[i]
		if year < ybr.StartYear || year > ybr.EndYear {
			continue
		}
		r := &ybr.Rule
		abs := relday.Resolve(year, r.InMonth, &r.OnDay, r.At)
		switch r.AtMode {
		case tzdb.Standard:
			abs = civil.AddSeconds(abs, r.Offset)
		case tzdb.Universal:
			abs = civil.AddSeconds(abs, p.Offset+r.Offset)
		}
		list = append(list, &CompiledRule{Rule: r, StartsOn: abs, Offset: r.Offset})
	}

	sort.Slice(list, func(i, j int) bool { return civil.Compare(list[i].StartsOn, list[j].StartsOn) < 0 })
	for i := range list {
		if i > 0 {
			list[i].Prev = list[i-1]
		}
		if i < len(list)-1 {
			list[i].Next = list[i+1]
		}
	}
	return list
}

// findMatchingRule returns the last compiled rule in dt's year whose
// StartsOn is at or before dt, compiling and caching that year's rule list
// on first access. Returns nil if no rule has activated yet by dt (no
// carry-over and nothing has fired in-year).
func (cp *CompiledPeriod) findMatchingRule(db *tzdb.Database, dt civil.DateTime) *CompiledRule {
	year := civil.YearOf(dt)

	cp.mu.Lock()
	defer cp.mu.Unlock()

	list, ok := cp.yearRules[year]
	if !ok {
		list = compileRulesForYear(db, cp.Period, year)
		if cp.yearRules == nil {
			cp.yearRules = make(map[int][]*CompiledRule)
		}
		cp.yearRules[year] = list
	}

	var match *CompiledRule
	for _, cr := range list {
		if civil.Compare(cr.StartsOn, dt) > 0 {
			break
		}
		match = cr
	}
	return match
}

// compileZone eagerly resolves every period of zone into its local
// [From, Until) interval: resolve the UNTIL bound, adjust it by the
// period's own last-active rule for the UNTIL year under the configured
// time mode, and chain periods end to end starting from the domain
// minimum.
func compileZone(db *tzdb.Database, zone *tzdb.Zone) []*CompiledPeriod {
	periods := make([]*CompiledPeriod, len(zone.Periods))
	prevUntil := civil.Min

	for i := range zone.Periods {
		p := &zone.Periods[i]

		until := civil.Max
		if !p.Open() {
			until = relday.Resolve(p.UntilYear, p.UntilMonth, p.UntilDay, p.UntilTime)
			if p.UntilDay != nil {
				if fam, ok := ruleFamilyOf(db, p); ok {
					if rule, ok := lastRuleForYear(fam, p.UntilYear); ok {
						switch p.UntilTimeMode {
						case tzdb.Standard:
							until = civil.AddSeconds(until, rule.Offset)
						case tzdb.Universal:
							until = civil.AddSeconds(until, p.Offset+rule.Offset)
						}
					}
				}
			}
		}

		periods[i] = &CompiledPeriod{Period: p, From: prevUntil, Until: until}
		prevUntil = until
	}

	sort.Slice(periods, func(i, j int) bool { return civil.Compare(periods[i].Until, periods[j].Until) < 0 })
	return periods
}
