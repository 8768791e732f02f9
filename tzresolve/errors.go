package tzresolve

import (
	"fmt"

	"github.com/tzres-go/tzres/civil"
)

// UnknownZoneError is returned by New when id matches no zone or alias in
// the database.
type UnknownZoneError struct {
	ID string
}

func (e *UnknownZoneError) Error() string {
	return fmt.Sprintf("tzresolve: unknown zone %q", e.ID)
}

// OutOfRangeError is returned by a query operation when dt falls outside
// every compiled period of the resolver's zone.
type OutOfRangeError struct {
	ZoneID string
	At     civil.DateTime
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("tzresolve: %v is out of range for zone %q", e.At, e.ZoneID)
}
