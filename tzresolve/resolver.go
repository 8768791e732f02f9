// Package tzresolve compiles the static zone database in tzdb into a
// per-zone lookup structure and classifies local instants against it,
// distinguishing standard, daylight, ambiguous (fold), and invalid (gap)
// wall-clock readings.
package tzresolve

import (
	"strings"

	"github.com/tzres-go/tzres/civil"
	"github.com/tzres-go/tzres/tzdb"
)

// Resolver answers offset, classification, and display-name queries for a
// single zone. It is safe for concurrent use: the only mutable state is
// each CompiledPeriod's per-year rule cache, which is independently
// mutex-guarded.
type Resolver struct {
	db          *tzdb.Database
	zone        *tzdb.Zone
	canonicalID string
	periods     []*CompiledPeriod
}

// New resolves id against db's zones, then its aliases, case-insensitively,
// and compiles the resulting zone's periods. It returns *UnknownZoneError
// if id matches neither table.
func New(db *tzdb.Database, id string) (*Resolver, error) {
	zone, ok := findZone(db, id)
	if !ok {
		return nil, &UnknownZoneError{ID: id}
	}
	return newFromZone(db, zone), nil
}

func newFromZone(db *tzdb.Database, zone *tzdb.Zone) *Resolver {
	return &Resolver{
		db:          db,
		zone:        zone,
		canonicalID: zone.Name,
		periods:     compileZone(db, zone),
	}
}

func findZone(db *tzdb.Database, id string) (*tzdb.Zone, bool) {
	for i := range db.Zones {
		if strings.EqualFold(db.Zones[i].Name, id) {
			return &db.Zones[i], true
		}
	}
	for i := range db.Aliases {
		if strings.EqualFold(db.Aliases[i].Name, id) {
			return &db.Zones[db.Aliases[i].Zone], true
		}
	}
	return nil, false
}

// ID returns the zone's canonical IANA name, never the alias spelling the
// resolver was constructed from.
func (r *Resolver) ID() string {
	return r.canonicalID
}

// findPeriod scans compiled periods from latest to earliest and returns the
// first whose [From, Until) contains dt. Queries cluster near the present,
// so the reverse scan is an O(1)-amortised heuristic on realistic
// workloads.
func (r *Resolver) findPeriod(dt civil.DateTime) (*CompiledPeriod, error) {
	for i := len(r.periods) - 1; i >= 0; i-- {
		cp := r.periods[i]
		if civil.Compare(dt, cp.From) >= 0 && civil.Compare(dt, cp.Until) < 0 {
			return cp, nil
		}
	}
	return nil, &OutOfRangeError{ZoneID: r.canonicalID, At: dt}
}

// OffsetsAndType locates the covering period and active rule for dt and
// returns the period's base UTC offset, the derived dst_save (meaningful
// only outside Standard), and the classification.
func (r *Resolver) OffsetsAndType(dt civil.DateTime) (offset int64, dstSave int64, typ Classification, err error) {
	cp, err := r.findPeriod(dt)
	if err != nil {
		return 0, 0, 0, err
	}
	cr := cp.findMatchingRule(r.db, dt)
	if cr == nil {
		return cp.Period.Offset, 0, Standard, nil
	}
	typ = classify(cr, dt)
	return cp.Period.Offset, dstSaveFor(typ, cr), typ, nil
}

// DisplayName returns the abbreviation for dt. When the instant is
// Ambiguous and forceDaylight is true, it returns the abbreviation of the
// fold's earlier (daylight) side instead of its default, later side.
func (r *Resolver) DisplayName(dt civil.DateTime, forceDaylight bool) (string, error) {
	cp, err := r.findPeriod(dt)
	if err != nil {
		return "", err
	}
	cr := cp.findMatchingRule(r.db, dt)
	if cr == nil {
		return formatAbbrev(cp.Period, nil), nil
	}

	typ := classify(cr, dt)
	display := formatAbbrev(cp.Period, cr.Rule)
	if typ != Ambiguous || !forceDaylight {
		return display, nil
	}
	if cr.Prev == nil {
		return display, nil
	}
	return formatAbbrev(cp.Period, cr.Prev.Rule), nil
}

// KnownZones returns the zone-name table, followed by the alias-name table
// when includeAliases is true.
func KnownZones(db *tzdb.Database, includeAliases bool) []string {
	names := make([]string, 0, len(db.Zones))
	for _, z := range db.Zones {
		names = append(names, z.Name)
	}
	if includeAliases {
		for _, a := range db.Aliases {
			names = append(names, a.Name)
		}
	}
	return names
}
