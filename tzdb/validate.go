package tzdb

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants a well-formed Database must
// satisfy before it is handed to a resolver: non-empty zones and rule
// families, well-formed period chains, and aliases that target real zones.
// It does not attempt to compile periods or rules -- that is tzresolve's
// job, and doing it here would duplicate the relative-day resolver's logic
// for no benefit.
func Validate(db Database) error {
	var errs []error

	if len(db.Zones) == 0 {
		errs = append(errs, fmt.Errorf("database has no zones"))
	}

	for zi := range db.Zones {
		if err := validateZone(db, zi); err != nil {
			errs = append(errs, err...)
		}
	}

	for ai, a := range db.Aliases {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("alias %d: empty name", ai))
		}
		if a.Zone < 0 || a.Zone >= len(db.Zones) {
			errs = append(errs, fmt.Errorf("alias %q: zone index %d out of range (have %d zones)", a.Name, a.Zone, len(db.Zones)))
		}
	}

	for fi, fam := range db.RuleFamilies {
		if len(fam.Rules) == 0 {
			errs = append(errs, fmt.Errorf("rule family %q (index %d): has no rules", fam.Name, fi))
		}
		for ri, ybr := range fam.Rules {
			if ybr.StartYear > ybr.EndYear {
				errs = append(errs, fmt.Errorf("rule family %q: rule %d has start_year %d after end_year %d", fam.Name, ri, ybr.StartYear, ybr.EndYear))
			}
			if ybr.Rule.InMonth < 1 || ybr.Rule.InMonth > 12 {
				errs = append(errs, fmt.Errorf("rule family %q: rule %d has in_month %d out of range", fam.Name, ri, ybr.Rule.InMonth))
			}
		}
	}

	return errors.Join(errs...)
}

func validateZone(db Database, zi int) []error {
	z := db.Zones[zi]
	var errs []error

	if z.Name == "" {
		errs = append(errs, fmt.Errorf("zone %d: empty name", zi))
	}
	if len(z.Periods) == 0 {
		errs = append(errs, fmt.Errorf("zone %q: has no periods", z.Name))
		return errs
	}

	for pi, p := range z.Periods {
		last := pi == len(z.Periods)-1
		if !last && p.Open() {
			errs = append(errs, fmt.Errorf("zone %q: period %d is open-ended but is not the last period", z.Name, pi))
		}
		if last && !p.Open() {
			// A well-formed database may still give its final period an
			// explicit, very distant UNTIL instead of marking it Open; that
			// is a convention, not a violation, so this is not an error.
			_ = p
		}
		if p.RuleFamily >= len(db.RuleFamilies) {
			errs = append(errs, fmt.Errorf("zone %q: period %d references rule family index %d, have %d", z.Name, pi, p.RuleFamily, len(db.RuleFamilies)))
		}
		if p.RuleFamily < -1 {
			errs = append(errs, fmt.Errorf("zone %q: period %d has invalid rule family index %d", z.Name, pi, p.RuleFamily))
		}
	}
	return errs
}
