// Command tzresolve answers offset, classification, and display-name
// queries against the bundled zone database from the command line.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tzres-go/tzres/civil"
	"github.com/tzres-go/tzres/geozone"
	"github.com/tzres-go/tzres/tzdb"
	"github.com/tzres-go/tzres/tzresolve"
)

var (
	latFlag           = flag.Float64("lat", 0, "latitude; used with -lon instead of a zone argument")
	lonFlag           = flag.Float64("lon", 0, "longitude; used with -lat instead of a zone argument")
	forceDaylightFlag = flag.Bool("force-daylight", false, "prefer the daylight side of an ambiguous fold for display-name")
	listFlag          = flag.Bool("list", false, "print every known zone name and exit")
	aliasesFlag       = flag.Bool("aliases", true, "include alias names with -list")
)

func main() {
	flag.Parse()

	if *listFlag {
		for _, name := range tzresolve.KnownZones(&tzdb.Bundled, *aliasesFlag) {
			fmt.Println(name)
		}
		return
	}

	args := flag.Args()
	var zoneArg, dtArg string
	switch {
	case (*latFlag != 0 || *lonFlag != 0) && len(args) == 1:
		dtArg = args[0]
	case len(args) == 2:
		zoneArg, dtArg = args[0], args[1]
	default:
		fmt.Println("Usage: tzresolve [-lat lat -lon lon | <zone>] <YYYY-MM-DDThh:mm:ss>")
		flag.Usage()
		os.Exit(1)
	}

	r, err := resolverFor(zoneArg)
	if err != nil {
		fmt.Println("resolving zone:", err)
		os.Exit(1)
	}

	dt, err := parseDateTime(dtArg)
	if err != nil {
		fmt.Println("parsing datetime:", err)
		os.Exit(1)
	}

	offset, dstSave, typ, err := r.OffsetsAndType(dt)
	if err != nil {
		fmt.Println("resolving instant:", err)
		os.Exit(1)
	}
	display, err := r.DisplayName(dt, *forceDaylightFlag)
	if err != nil {
		fmt.Println("resolving display name:", err)
		os.Exit(1)
	}

	fmt.Println("zone      =", r.ID())
	fmt.Println("offset    =", offset, "s")
	fmt.Println("dst_save  =", dstSave, "s")
	fmt.Println("type      =", typ)
	fmt.Println("display   =", display)
}

func resolverFor(zoneArg string) (*tzresolve.Resolver, error) {
	if *latFlag != 0 || *lonFlag != 0 {
		f, err := geozone.New(&tzdb.Bundled)
		if err != nil {
			return nil, err
		}
		return f.ResolverAt(*latFlag, *lonFlag)
	}
	return tzresolve.New(&tzdb.Bundled, zoneArg)
}

// parseDateTime parses a "YYYY-MM-DDThh:mm:ss" local timestamp, with
// seconds optional, into a civil.DateTime.
func parseDateTime(s string) (civil.DateTime, error) {
	datePart, timePart, ok := strings.Cut(s, "T")
	if !ok {
		datePart, timePart, ok = strings.Cut(s, " ")
	}
	if !ok {
		return 0, fmt.Errorf("expected YYYY-MM-DDThh:mm:ss, got %q", s)
	}

	var year, month, day int
	if _, err := fmt.Sscanf(datePart, "%d-%d-%d", &year, &month, &day); err != nil {
		return 0, fmt.Errorf("parsing date %q: %w", datePart, err)
	}

	fields := strings.Split(timePart, ":")
	if len(fields) < 2 || len(fields) > 3 {
		return 0, fmt.Errorf("parsing time %q: expected hh:mm or hh:mm:ss", timePart)
	}
	hour, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("parsing hour %q: %w", fields[0], err)
	}
	minute, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("parsing minute %q: %w", fields[1], err)
	}
	var second int
	if len(fields) == 3 {
		second, err = strconv.Atoi(fields[2])
		if err != nil {
			return 0, fmt.Errorf("parsing second %q: %w", fields[2], err)
		}
	}

	dt := civil.EncodeDate(year, month, day)
	return civil.AddSeconds(dt, int64(hour)*3600+int64(minute)*60+int64(second)), nil
}
