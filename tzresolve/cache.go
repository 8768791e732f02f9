package tzresolve

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tzres-go/tzres/tzdb"
)

// Cache is a process-wide resolver cache keyed by canonical zone id,
// case-insensitive. It exists because compiling a zone with many periods
// and a deep rule family is not free, and most programs only ever touch a
// handful of distinct zones.
//
// This is an explicit collaborator: nothing in this package constructs one
// implicitly. Call Init to install a process-wide instance, or construct
// your own with NewCache for narrower scopes (tests, multi-tenant servers
// juggling more than one database).
type Cache struct {
	db *tzdb.Database

	mu     sync.Mutex
	byName map[string]*Resolver
}

// NewCache returns an empty cache backed by db.
func NewCache(db *tzdb.Database) *Cache {
	return &Cache{db: db, byName: make(map[string]*Resolver)}
}

// Get returns the cached resolver for id, constructing and inserting one on
// first use. If two callers race on the same canonical zone -- whether
// reached directly or through different aliases -- exactly one compiled
// Resolver survives; the other is discarded.
func (c *Cache) Get(id string) (*Resolver, error) {
	zone, ok := findZone(c.db, id)
	if !ok {
		return nil, &UnknownZoneError{ID: id}
	}
	key := strings.ToLower(zone.Name)

	c.mu.Lock()
	if r, ok := c.byName[key]; ok {
		c.mu.Unlock()
		return r, nil
	}
	c.mu.Unlock()

	candidate := newFromZone(c.db, zone)

	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.byName[key]; ok {
		return r, nil
	}
	c.byName[key] = candidate
	return candidate, nil
}

// Len reports the number of distinct canonical zones currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byName)
}

var (
	globalMu sync.Mutex
	global   *Cache
)

// Init installs a process-wide cache backed by db, replacing any previous
// one. It must be called before Lookup.
func Init(db *tzdb.Database) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = NewCache(db)
}

// Teardown discards the process-wide cache. Subsequent calls to Lookup fail
// until Init is called again.
func Teardown() {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = nil
}

// Lookup queries the process-wide cache installed by Init.
func Lookup(id string) (*Resolver, error) {
	globalMu.Lock()
	c := global
	globalMu.Unlock()

	if c == nil {
		return nil, fmt.Errorf("tzresolve: global cache not initialized; call Init first")
	}
	return c.Get(id)
}
