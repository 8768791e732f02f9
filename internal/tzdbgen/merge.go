package tzdbgen

import (
	"sort"

	"github.com/tzres-go/tzres/tzdata"
)

// MergeFiles concatenates the zone, rule, and link lines of every parsed
// data file into one. Files are processed in filename order so the result,
// and everything Compile derives from it, is deterministic.
func MergeFiles(files map[string]tzdata.File) tzdata.File {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var merged tzdata.File
	for _, name := range names {
		f := files[name]
		merged.ZoneLines = append(merged.ZoneLines, f.ZoneLines...)
		merged.RuleLines = append(merged.RuleLines, f.RuleLines...)
		merged.LinkLines = append(merged.LinkLines, f.LinkLines...)
	}
	return merged
}
