// Package tzc compiles raw IANA tzdata source text directly into per-zone
// TZif data blocks. It is a thin convenience layer over the lower-level
// pieces: tzdbgen transcribes tzdata into a tzdb.Database, and tzresolve
// compiles and exports that database's transitions as TZif.
package tzc

import (
	"bytes"
	"fmt"

	"github.com/tzres-go/tzres/internal/tzdbgen"
	"github.com/tzres-go/tzres/tzdata"
	"github.com/tzres-go/tzres/tzif"
	"github.com/tzres-go/tzres/tzresolve"
)

// defaultStartYear and defaultEndYear bound the transition window Compile
// exports, 1900 through 2037 inclusive. The window starts before the
// classic 32-bit Unix time_t minimum (late 1901) and ends just short of its
// maximum (January 2038); transitions in 2038 are not exported.
const (
	defaultStartYear = 1900
	defaultEndYear   = 2037
)

// CompileBytes parses dataBuf as tzdata source and compiles it into
// per-zone TZif-encoded byte slices.
func CompileBytes(dataBuf []byte) (map[string][]byte, error) {
	f, err := tzdata.Parse(bytes.NewReader(dataBuf))
	if err != nil {
		return nil, err
	}
	compiled, err := Compile(f)
	if err != nil {
		return nil, err
	}
	result := make(map[string][]byte)
	for zone, data := range compiled {
		buf := new(bytes.Buffer)
		if err := data.Encode(buf); err != nil {
			return nil, err
		}
		result[zone] = buf.Bytes()
	}
	return result, nil
}

// Compile transcribes f into a tzdb.Database and exports every zone's
// transitions between defaultStartYear and defaultEndYear as TZif.
func Compile(f tzdata.File) (map[string]tzif.Data, error) {
	db, err := tzdbgen.Compile(f)
	if err != nil {
		return nil, fmt.Errorf("transcribing tzdata: %w", err)
	}

	result := make(map[string]tzif.Data, len(db.Zones))
	for _, z := range db.Zones {
		r, err := tzresolve.New(&db, z.Name)
		if err != nil {
			return nil, fmt.Errorf("compiling zone %s: %w", z.Name, err)
		}
		data, err := r.ExportTZif(defaultStartYear, defaultEndYear)
		if err != nil {
			return nil, fmt.Errorf("compiling zone %s: %w", z.Name, err)
		}
		if err := tzif.Validate(data); err != nil {
			return nil, fmt.Errorf("compiling zone %s: invalid tzif: %w", z.Name, err)
		}
		result[z.Name] = data
	}
	return result, nil
}
