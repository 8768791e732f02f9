// Package geozone looks up the IANA zone covering a latitude/longitude
// point and hands back a tzresolve.Resolver for it, so a caller with only
// coordinates -- no zone name -- can still answer offset, classification,
// and display-name queries.
package geozone

import (
	"errors"
	"sync"

	"github.com/ringsaturn/tzf"

	"github.com/tzres-go/tzres/tzdb"
	"github.com/tzres-go/tzres/tzresolve"
)

// Errors returned by coordinate lookups.
var (
	ErrInvalidCoord     = errors.New("geozone: coordinate out of range")
	ErrTimezoneNotFound = errors.New("geozone: no timezone found for coordinates")
)

// Finder maps coordinates to IANA zone names using an embedded boundary
// dataset, then resolves those names against a tzdb.Database.
type Finder struct {
	boundary tzf.F
	db       *tzdb.Database
}

// New builds a Finder backed by tzf's default boundary dataset.
func New(db *tzdb.Database) (*Finder, error) {
	boundary, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, err
	}
	return &Finder{boundary: boundary, db: db}, nil
}

// ZoneIDAt returns the IANA zone name covering (lat, lon).
func (f *Finder) ZoneIDAt(lat, lon float64) (string, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return "", ErrInvalidCoord
	}
	name := f.boundary.GetTimezoneName(lon, lat)
	if name == "" {
		return "", ErrTimezoneNotFound
	}
	return name, nil
}

// ResolverAt returns a Resolver for the zone covering (lat, lon).
func (f *Finder) ResolverAt(lat, lon float64) (*tzresolve.Resolver, error) {
	id, err := f.ZoneIDAt(lat, lon)
	if err != nil {
		return nil, err
	}
	return tzresolve.New(f.db, id)
}

// AllZoneNames returns every zone name the boundary dataset knows about,
// independent of whether db can resolve it.
func (f *Finder) AllZoneNames() []string {
	return f.boundary.TimezoneNames()
}

var (
	defaultFinder   *Finder
	defaultFinderMu sync.Mutex
	defaultErr      error
)

// UseDefault installs db as the database package-level lookups resolve
// zone names against, and builds the default Finder if it doesn't exist
// yet. Call it once during startup before using the package-level
// functions below.
func UseDefault(db *tzdb.Database) error {
	defaultFinderMu.Lock()
	defer defaultFinderMu.Unlock()

	if defaultFinder != nil {
		defaultFinder.db = db
		return nil
	}
	f, err := New(db)
	if err != nil {
		defaultErr = err
		return err
	}
	defaultFinder = f
	return nil
}

func getDefault() (*Finder, error) {
	defaultFinderMu.Lock()
	defer defaultFinderMu.Unlock()
	if defaultFinder == nil {
		if defaultErr != nil {
			return nil, defaultErr
		}
		return nil, errors.New("geozone: UseDefault has not been called")
	}
	return defaultFinder, nil
}

// ZoneIDAt looks up the zone name covering (lat, lon) using the default
// Finder installed by UseDefault.
func ZoneIDAt(lat, lon float64) (string, error) {
	f, err := getDefault()
	if err != nil {
		return "", err
	}
	return f.ZoneIDAt(lat, lon)
}

// ResolverAt resolves a Resolver for the zone covering (lat, lon) using the
// default Finder installed by UseDefault.
func ResolverAt(lat, lon float64) (*tzresolve.Resolver, error) {
	f, err := getDefault()
	if err != nil {
		return nil, err
	}
	return f.ResolverAt(lat, lon)
}
