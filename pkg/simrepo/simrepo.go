// Package simrepo implements the SimObject repository (§4.11): an
// in-memory catalog of AI-created SimObjects indexed by id, tag, and
// title, backed by a simple newline-delimited persistence file and an
// optional file-watched reload.
package simrepo

import (
	"sync"

	"github.com/google/uuid"
)

// Type enumerates the SimObject categories the repository tracks.
// HotAirBalloon/Animal/UserAvatar are 2024-era categories; unlike the
// facility-data wire fields, these are plain catalog labels with no
// wire-layout consequence, so they are always available rather than
// generation-gated.
type Type int

const (
	TypeAircraft Type = iota
	TypeHelicopter
	TypeBoat
	TypeGround
	TypeHotAirBalloon
	TypeAnimal
	TypeUserAvatar
)

func (t Type) String() string {
	switch t {
	case TypeAircraft:
		return "aircraft"
	case TypeHelicopter:
		return "helicopter"
	case TypeBoat:
		return "boat"
	case TypeGround:
		return "ground"
	case TypeHotAirBalloon:
		return "hotAirBalloon"
	case TypeAnimal:
		return "animal"
	case TypeUserAvatar:
		return "userAvatar"
	default:
		return "aircraft"
	}
}

// ParseType recovers a Type from its String() form, defaulting to
// TypeAircraft for anything unrecognized.
func ParseType(s string) Type {
	switch s {
	case "helicopter":
		return TypeHelicopter
	case "boat":
		return TypeBoat
	case "ground":
		return TypeGround
	case "hotAirBalloon":
		return TypeHotAirBalloon
	case "animal":
		return TypeAnimal
	case "userAvatar":
		return TypeUserAvatar
	default:
		return TypeAircraft
	}
}

// Info is one repository entry: a SimObject's identity, classification,
// and optional tag/livery.
type Info struct {
	ID     string
	Tag    string // empty means none
	Type   Type
	Title  string
	Livery string // empty means none
}

// Repository indexes SimObjects by id, with secondary lookups by tag
// (unique) and title (many-to-many). Safe for concurrent use.
type Repository struct {
	path string

	mu         sync.RWMutex
	objects    map[string]Info
	tagIndex   map[string]string
	titleIndex map[string]map[string]struct{}
}

// New returns an empty repository whose default persistence file lives
// under path.
func New(path string) *Repository {
	return &Repository{
		path:       path,
		objects:    make(map[string]Info),
		tagIndex:   make(map[string]string),
		titleIndex: make(map[string]map[string]struct{}),
	}
}

// Path returns the repository's root directory.
func (r *Repository) Path() string { return r.path }

// Set adds or updates info in the repository. If info.ID is empty a new
// UUID is generated. Returns the id the entry was stored under.
func (r *Repository) Set(info Info) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.setLocked(info)
}

func (r *Repository) setLocked(info Info) string {
	if info.ID == "" {
		info.ID = uuid.NewString()
	}
	id := info.ID

	if existing, ok := r.objects[id]; ok {
		if existing.Tag != "" {
			delete(r.tagIndex, existing.Tag)
		}
		if ids, ok := r.titleIndex[existing.Title]; ok {
			delete(ids, id)
			if len(ids) == 0 {
				delete(r.titleIndex, existing.Title)
			}
		}
	}

	if info.Tag != "" {
		r.tagIndex[info.Tag] = id
	}
	if r.titleIndex[info.Title] == nil {
		r.titleIndex[info.Title] = make(map[string]struct{})
	}
	r.titleIndex[info.Title][id] = struct{}{}

	r.objects[id] = info
	return id
}

// GetByID looks up an entry by its id.
func (r *Repository) GetByID(id string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.objects[id]
	return info, ok
}

// GetByTag looks up an entry by its unique tag.
func (r *Repository) GetByTag(tag string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.tagIndex[tag]
	if !ok {
		return Info{}, false
	}
	info, ok := r.objects[id]
	return info, ok
}

// IDsByTitle returns every id registered under title, in no particular
// order.
func (r *Repository) IDsByTitle(title string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids, ok := r.titleIndex[title]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	return out
}

// HasID reports whether id is registered.
func (r *Repository) HasID(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.objects[id]
	return ok
}

// HasTag reports whether tag is registered.
func (r *Repository) HasTag(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tagIndex[tag]
	return ok
}

// Len reports the number of entries in the repository.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.objects)
}

// Empty reports whether the repository holds no entries.
func (r *Repository) Empty() bool { return r.Len() == 0 }

// All returns every entry in the repository, in no particular order.
func (r *Repository) All() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Info, 0, len(r.objects))
	for _, info := range r.objects {
		out = append(out, info)
	}
	return out
}

// clear empties every index. Callers must hold the write lock.
func (r *Repository) clearLocked() {
	r.objects = make(map[string]Info)
	r.tagIndex = make(map[string]string)
	r.titleIndex = make(map[string]map[string]struct{})
}
