package event

import (
	"sync"

	"github.com/flightsim-go/simconnect/internal/logger"
	"github.com/flightsim-go/simconnect/pkg/transport"
)

// member records one event's membership in a group: its client-side id
// and whether it was added maskable.
type member struct {
	eventID  uint32
	maskable bool
}

// Group is a notification group: a priority plus a set of member events.
// A group starts uncreated; adding its first event auto-maps that event
// if needed, then issues set-notification-group-priority, transitioning
// the group to created. Obtain one via Service.CreateNotificationGroup;
// do not construct directly.
type Group struct {
	svc *Service
	id  uint32

	mu      sync.Mutex
	priority transport.Priority
	created  bool
	members  []member
}

// ID returns the group's NotificationGroupId.
func (g *Group) ID() uint32 { return g.id }

// Priority returns the group's currently selected priority. Meaningful
// before Created() even though it has not yet reached the host: the
// value becomes effective on the first AddEvent/AddMaskableEvent call.
func (g *Group) Priority() transport.Priority {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.priority
}

// Created reports whether the group has issued its first
// set-notification-group-priority call.
func (g *Group) Created() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.created
}

// WithHighestPriority selects the HIGHEST priority level. Fluent: returns
// g. Has no effect on a group that has already been created.
func (g *Group) WithHighestPriority() *Group { return g.withPriority(transport.PriorityHighest) }

// WithHighestMaskablePriority selects the HIGHEST_MASKABLE level.
func (g *Group) WithHighestMaskablePriority() *Group {
	return g.withPriority(transport.PriorityHighestMaskable)
}

// WithStandardPriority selects the STANDARD level.
func (g *Group) WithStandardPriority() *Group { return g.withPriority(transport.PriorityStandard) }

// WithDefaultPriority selects the DEFAULT level.
func (g *Group) WithDefaultPriority() *Group { return g.withPriority(transport.PriorityDefault) }

// WithLowestPriority selects the LOWEST level.
func (g *Group) WithLowestPriority() *Group { return g.withPriority(transport.PriorityLowest) }

func (g *Group) withPriority(p transport.Priority) *Group {
	g.mu.Lock()
	if !g.created {
		g.priority = p
	}
	g.mu.Unlock()
	return g
}

func (g *Group) addEvent(name string, maskable bool) error {
	rec, err := g.svc.MapEvent(name)
	if err != nil {
		return err
	}

	g.mu.Lock()
	firstEvent := !g.created
	priority := g.priority
	g.mu.Unlock()

	if firstEvent {
		if err := g.svc.conn.Do(g.id, func(host transport.RawHost, handle transport.Handle) error {
			return host.SetNotificationGroupPriority(handle, g.id, uint32(priority))
		}); err != nil {
			return err
		}
		g.mu.Lock()
		g.created = true
		g.mu.Unlock()
	}

	if err := g.svc.conn.Do(g.id, func(host transport.RawHost, handle transport.Handle) error {
		return host.AddClientEventToNotificationGroup(handle, g.id, rec.ID, maskable)
	}); err != nil {
		return err
	}

	g.mu.Lock()
	g.members = append(g.members, member{eventID: rec.ID, maskable: maskable})
	g.mu.Unlock()

	logger.Debug("event added to notification group", logger.GroupID(g.id), logger.EventID(rec.ID))
	return nil
}

// AddEvent maps name if needed and adds it to the group as non-maskable.
func (g *Group) AddEvent(name string) error { return g.addEvent(name, false) }

// AddMaskableEvent is AddEvent for an event other applications should
// stop seeing once this client has consumed it.
func (g *Group) AddMaskableEvent(name string) error { return g.addEvent(name, true) }

// RemoveEvent removes eventID's membership in the group, leaving its
// client-id-to-name mapping intact.
func (g *Group) RemoveEvent(eventID uint32) error {
	if err := g.svc.conn.Do(g.id, func(host transport.RawHost, handle transport.Handle) error {
		return host.RemoveClientEventFromNotificationGroup(handle, g.id, eventID)
	}); err != nil {
		return err
	}

	g.mu.Lock()
	for i, m := range g.members {
		if m.eventID == eventID {
			g.members = append(g.members[:i], g.members[i+1:]...)
			break
		}
	}
	g.mu.Unlock()
	return nil
}

// Clear removes every event from the group. Member events remain mapped
// on the host and in the catalog; only group membership is dropped.
func (g *Group) Clear() error {
	if err := g.svc.conn.Do(g.id, func(host transport.RawHost, handle transport.Handle) error {
		return host.ClearNotificationGroup(handle, g.id)
	}); err != nil {
		return err
	}
	g.mu.Lock()
	g.members = nil
	g.mu.Unlock()
	return nil
}
