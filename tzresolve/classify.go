package tzresolve

import (
	"strings"

	"github.com/tzres-go/tzres/civil"
	"github.com/tzres-go/tzres/tzdb"
)

// Classification is the four-way local-instant classification: how a
// requested wall-clock reading relates to the transition surrounding it.
type Classification int

const (
	Standard Classification = iota
	Daylight
	Ambiguous
	Invalid
)

func (c Classification) String() string {
	switch c {
	case Standard:
		return "Standard"
	case Daylight:
		return "Daylight"
	case Ambiguous:
		return "Ambiguous"
	case Invalid:
		return "Invalid"
	default:
		return "<undefined Classification>"
	}
}

// classify runs the gap/fold branch tests, in order, against a compiled
// rule active at dt. The caller handles the r == nil case (no carry-over,
// nothing fired yet this year) as Standard before reaching here.
func classify(r *CompiledRule, dt civil.DateTime) Classification {
	if r.Next != nil && r.Next.Offset > r.Offset &&
		civil.Compare(dt, civil.AddSeconds(r.Next.StartsOn, r.Offset-r.Next.Offset)) >= 0 {
		return Invalid
	}
	if r.Prev == nil && r.Offset < 0 &&
		civil.Compare(dt, civil.AddSeconds(r.StartsOn, -r.Offset)) < 0 {
		return Ambiguous
	}
	if r.Prev != nil && r.Prev.Offset > r.Offset &&
		civil.Compare(dt, civil.AddSeconds(r.StartsOn, r.Prev.Offset-r.Offset)) < 0 {
		return Ambiguous
	}
	if r.Offset != 0 {
		return Daylight
	}
	return Standard
}

// dstSaveFor returns the dst_save derived output for a classification. It
// is only meaningful for Daylight, Ambiguous, and Invalid; callers must
// ignore it for Standard, where it is always zero.
func dstSaveFor(typ Classification, r *CompiledRule) int64 {
	switch typ {
	case Daylight:
		return r.Offset
	case Ambiguous:
		if r.Prev != nil {
			return r.Prev.Offset - r.Offset
		}
		return r.Offset
	case Invalid:
		if r.Next != nil {
			return r.Next.Offset - r.Offset
		}
		return r.Offset
	default:
		return 0
	}
}

// formatAbbrev substitutes rule's fmt_part into period.Fmt at the first
// "%s", or returns period.Fmt unchanged if it contains none. A nil rule
// substitutes the empty string.
func formatAbbrev(period *tzdb.Period, rule *tzdb.Rule) string {
	if !strings.Contains(period.Fmt, "%s") {
		return period.Fmt
	}
	part := ""
	if rule != nil {
		part = rule.FmtPart
	}
	return strings.Replace(period.Fmt, "%s", part, 1)
}
