package tzdbgen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tzres-go/tzres/civil"
	"github.com/tzres-go/tzres/tzdata"
	"github.com/tzres-go/tzres/tzdb"
)

const sample = `
# Rule  NAME  FROM  TO    -  IN   ON       AT     SAVE  LETTER/S
Rule    EU    1981  max   -  Mar  lastSun  1:00u  1:00  S
Rule    EU    1996  max   -  Oct  lastSun  1:00u  0     -

# Zone  NAME           STDOFF  RULES  FORMAT  [UNTIL]
Zone    Europe/Berlin  1:00    EU     CE%sT

Link    Europe/Berlin  Europe/Vienna
`

func parseSample(t *testing.T) tzdata.File {
	t.Helper()
	f, err := tzdata.Parse(strings.NewReader(strings.TrimSpace(sample)))
	if err != nil {
		t.Fatalf("tzdata.Parse: %v", err)
	}
	return f
}

func TestCompileProducesValidatedDatabase(t *testing.T) {
	db, err := Compile(parseSample(t))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := tzdb.Validate(db); err != nil {
		t.Errorf("Validate(Compile(...)) = %v, want nil", err)
	}

	if len(db.Zones) != 1 || db.Zones[0].Name != "Europe/Berlin" {
		t.Fatalf("Zones = %+v, want a single Europe/Berlin zone", db.Zones)
	}
	zone := db.Zones[0]
	if len(zone.Periods) != 1 {
		t.Fatalf("Periods = %+v, want exactly one open period", zone.Periods)
	}
	p := zone.Periods[0]
	if !p.Open() {
		t.Errorf("Periods[0].Open() = false, want true (no UNTIL column)")
	}
	if p.Offset != 3600 {
		t.Errorf("Offset = %d, want 3600", p.Offset)
	}
	if p.Fmt != "CE%sT" {
		t.Errorf("Fmt = %q, want %q", p.Fmt, "CE%sT")
	}
	if p.RuleFamily != 0 {
		t.Fatalf("RuleFamily = %d, want 0", p.RuleFamily)
	}

	fam := db.RuleFamilies[p.RuleFamily]
	want := tzdb.RuleFamily{
		Name: "EU",
		Rules: []tzdb.YearBoundRule{
			{StartYear: 1981, EndYear: tzdb.MaxYear, Rule: tzdb.Rule{
				InMonth: 3, OnDay: tzdb.LastOfMonth(int(civil.Sunday)), At: 3600, AtMode: tzdb.Universal, Offset: 3600, FmtPart: "S",
			}},
			{StartYear: 1996, EndYear: tzdb.MaxYear, Rule: tzdb.Rule{
				InMonth: 10, OnDay: tzdb.LastOfMonth(int(civil.Sunday)), At: 3600, AtMode: tzdb.Universal, Offset: 0, FmtPart: "",
			}},
		},
	}
	if diff := cmp.Diff(want, fam); diff != "" {
		t.Errorf("RuleFamily mismatch (-want +got):\n%s", diff)
	}

	if len(db.Aliases) != 1 || db.Aliases[0] != (tzdb.Alias{Name: "Europe/Vienna", Zone: 0}) {
		t.Errorf("Aliases = %+v, want [{Europe/Vienna 0}]", db.Aliases)
	}
}

func TestCompileChainedLinksResolve(t *testing.T) {
	input := strings.TrimSpace(`
Zone    Europe/Berlin  1:00    -  CET

Link    Europe/Vienna  Europe/Bratislava
Link    Europe/Berlin  Europe/Vienna
`)
	f, err := tzdata.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("tzdata.Parse: %v", err)
	}

	db, err := Compile(f)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	byName := make(map[string]int)
	for _, a := range db.Aliases {
		byName[a.Name] = a.Zone
	}
	if byName["Europe/Vienna"] != 0 || byName["Europe/Bratislava"] != 0 {
		t.Errorf("aliases = %+v, want both chained to zone 0", db.Aliases)
	}
}

func TestCompileRejectsUnresolvedLink(t *testing.T) {
	input := strings.TrimSpace(`
Zone    Europe/Berlin  1:00    -  CET

Link    Atlantis/Capital  Europe/Elsewhere
`)
	f, err := tzdata.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("tzdata.Parse: %v", err)
	}

	if _, err := Compile(f); err == nil {
		t.Error("Compile(...) = nil error, want an error for a link to an unknown zone")
	}
}

func TestMergeFilesIsOrderedByFilename(t *testing.T) {
	a, err := tzdata.Parse(strings.NewReader("Zone  Etc/A  0:00  -  ZZZ"))
	if err != nil {
		t.Fatalf("tzdata.Parse: %v", err)
	}
	b, err := tzdata.Parse(strings.NewReader("Zone  Etc/B  0:00  -  ZZZ"))
	if err != nil {
		t.Fatalf("tzdata.Parse: %v", err)
	}

	merged := MergeFiles(map[string]tzdata.File{"z_second": b, "a_first": a})
	if len(merged.ZoneLines) != 2 {
		t.Fatalf("ZoneLines = %+v, want 2 entries", merged.ZoneLines)
	}
	if merged.ZoneLines[0].Name != "Etc/A" || merged.ZoneLines[1].Name != "Etc/B" {
		t.Errorf("ZoneLines order = %v, want [Etc/A, Etc/B] (filename order)", merged.ZoneLines)
	}
}
