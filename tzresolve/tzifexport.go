package tzresolve

import (
	"fmt"

	"github.com/tzres-go/tzres/civil"
	"github.com/tzres-go/tzres/tzif"
)

// ExportTZif materializes every offset transition the resolver's zone
// undergoes between startYear and endYear (inclusive) as an RFC8536 TZif
// version 2 data block, the same format the system zoneinfo database
// ships in. It lets anything that already speaks TZif -- existing
// readers, diffing tools -- consume what this resolver would compute,
// without caring that the computation started from a declarative rule
// database rather than a precomputed transition table.
func (r *Resolver) ExportTZif(startYear, endYear int) (tzif.Data, error) {
	if endYear < startYear {
		return tzif.Data{}, fmt.Errorf("tzresolve: endYear %d precedes startYear %d", endYear, startYear)
	}

	e := &tzifExporter{resolver: r, typeOf: make(map[string]uint8)}
	// RFC8536 requires at least one local time type even when a zone never
	// transitions in the requested range; seed one from the earliest
	// period's base offset before looking for real transitions.
	if len(r.periods) > 0 {
		first := r.periods[0]
		e.typeIndex(first.Period.Offset, false, formatAbbrev(first.Period, nil))
	}
	for _, cp := range r.periods {
		e.exportPeriod(cp, startYear, endYear)
	}

	header := tzif.Header{
		Version:  tzif.V2,
		Isutcnt:  0,
		Isstdcnt: 0,
		Leapcnt:  0,
		Timecnt:  uint32(len(e.times)),
		Typecnt:  uint32(len(e.types)),
		Charcnt:  uint32(len(e.designations)),
	}
	v1Header := header
	v1Header.Version = tzif.V1

	v1Times := make([]int32, len(e.times))
	for i, t := range e.times {
		v1Times[i] = int32(t)
	}

	return tzif.Data{
		Version: tzif.V2,
		V1Header: v1Header,
		V1Data: tzif.V1DataBlock{
			TransitionTimes:     v1Times,
			TransitionTypes:     e.typeIndexes,
			LocalTimeTypeRecord: e.types,
			TimeZoneDesignation: e.designations,
		},
		V2Header: header,
		V2Data: tzif.V2DataBlock{
			TransitionTimes:     e.times,
			TransitionTypes:     e.typeIndexes,
			LocalTimeTypeRecord: e.types,
			TimeZoneDesignation: e.designations,
		},
		V2Footer: tzif.Footer{},
	}, nil
}

// tzifExporter accumulates the deduplicated local time types and the
// ordered transition list that make up a TZif data block.
type tzifExporter struct {
	resolver *Resolver

	typeOf       map[string]uint8
	types        []tzif.LocalTimeTypeRecord
	designations []byte

	times       []int64
	typeIndexes []uint8
}

func (e *tzifExporter) exportPeriod(cp *CompiledPeriod, startYear, endYear int) {
	fromYear := civil.YearOf(cp.From)
	if fromYear < startYear {
		fromYear = startYear
	}
	toYear := civil.YearOf(cp.Until)
	if civil.Compare(cp.Until, civil.Max) == 0 || toYear > endYear {
		toYear = endYear
	}

	for year := fromYear; year <= toYear; year++ {
		list := compileRulesForYear(e.resolver.db, cp.Period, year)
		for _, cr := range list {
			if isSyntheticCarryOver(cr, year) {
				continue
			}
			if civil.Compare(cr.StartsOn, cp.From) < 0 || civil.Compare(cr.StartsOn, cp.Until) >= 0 {
				continue
			}
			if yr := civil.YearOf(cr.StartsOn); yr < startYear || yr > endYear {
				continue
			}
			offset := cp.Period.Offset + cr.Offset
			e.emit(cr.StartsOn, offset, cr.Offset != 0, formatAbbrev(cp.Period, cr.Rule))
		}
	}
}

// isSyntheticCarryOver reports whether cr is the seeded carry-over rule
// compileRulesForYear inserts at the start of each year: it does not
// represent a real transition, only the state already in force.
func isSyntheticCarryOver(cr *CompiledRule, year int) bool {
	return cr.Prev == nil && cr.StartsOn == civil.EncodeDate(year, 1, 1)
}

// unixEpoch is the domain DateTime of 1970-01-01 00:00:00, the origin TZif
// transition times are measured from.
var unixEpoch = civil.EncodeDate(1970, 1, 1)

func toUnixSeconds(dt civil.DateTime) int64 {
	return int64(dt) - int64(unixEpoch)
}

func (e *tzifExporter) emit(at civil.DateTime, offset int64, dst bool, designation string) {
	idx := e.typeIndex(offset, dst, designation)
	e.times = append(e.times, toUnixSeconds(at))
	e.typeIndexes = append(e.typeIndexes, idx)
}

func (e *tzifExporter) typeIndex(offset int64, dst bool, designation string) uint8 {
	key := fmt.Sprintf("%d|%v|%s", offset, dst, designation)
	if idx, ok := e.typeOf[key]; ok {
		return idx
	}
	idx := uint8(len(e.types))
	e.typeOf[key] = idx
	e.types = append(e.types, tzif.LocalTimeTypeRecord{
		Utoff: int32(offset),
		Dst:   dst,
		Idx:   uint8(len(e.designations)),
	})
	e.designations = append(e.designations, []byte(designation)...)
	e.designations = append(e.designations, 0)
	return idx
}
