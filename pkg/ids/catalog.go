package ids

import "sync"

// EventRecord is one entry in the event catalog: a client event id bound
// to its canonical name, plus whether the host has been told about the
// mapping yet.
type EventRecord struct {
	ID     uint32
	Name   string
	Mapped bool
}

// EventCatalog deduplicates client events by name. The first Get for a
// name allocates an id and records the event unmapped; subsequent Get
// calls for the same name return the existing record. Mapping the event to
// the host's name space (on first subscribe, or first add to a
// notification group) is a separate step recorded via MarkMapped.
//
// One catalog is scoped to a single event.Service (one per connection),
// not process-wide: two services never collide on an id (NextEventID
// draws from a shared global counter) but also never share a mapping, so
// the same name requested through two connections gets two distinct
// EventRecords. Harmless for a single-connection client; an application
// juggling several connections against the same event name would need its
// own cross-connection dedup layer above this package.
type EventCatalog struct {
	mu      sync.RWMutex
	byName  map[string]*EventRecord
	byID    map[uint32]*EventRecord
}

// NewEventCatalog returns an empty catalog.
func NewEventCatalog() *EventCatalog {
	return &EventCatalog{
		byName: make(map[string]*EventRecord),
		byID:   make(map[uint32]*EventRecord),
	}
}

// Get returns the record for name, allocating one if this is the first
// time name has been seen.
func (c *EventCatalog) Get(name string) *EventRecord {
	c.mu.RLock()
	if rec, ok := c.byName[name]; ok {
		c.mu.RUnlock()
		return rec
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if rec, ok := c.byName[name]; ok {
		return rec
	}

	rec := &EventRecord{ID: NextEventID(), Name: name}
	c.byName[name] = rec
	c.byID[rec.ID] = rec
	return rec
}

// Lookup returns the record bound to id, or nil if id was never
// registered. This backs the UnknownEvent error kind: callers that get nil
// back are asking about an id the catalog never issued.
func (c *EventCatalog) Lookup(id uint32) *EventRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byID[id]
}

// MarkMapped records that the host has been told about the event's
// client-id-to-name mapping. Idempotent.
func (c *EventCatalog) MarkMapped(id uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rec, ok := c.byID[id]; ok {
		rec.Mapped = true
	}
}

// Len reports the number of distinct events registered so far.
func (c *EventCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byName)
}
