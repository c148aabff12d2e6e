package room

import (
	"errors"
	"regexp"
	"sort"
	"sync"

	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/comms"
)

// Room names are restricted to a short, printable alphabet.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9-_ ]+$`)

const (
	// MaxNameLength is the longest accepted room name.
	MaxNameLength = 20
	// DefaultMaxRooms caps the number of simultaneously active rooms.
	DefaultMaxRooms = 256
)

// Creation failures, mapped to CREATE ack codes by the caller.
var (
	ErrBadName   = errors.New("room name is invalid")
	ErrNameTaken = errors.New("room already exists")
	ErrRoomLimit = errors.New("maximum number of rooms reached")
)

// ValidName reports whether name is an acceptable room name.
func ValidName(name string) bool {
	return len(name) <= MaxNameLength && namePattern.MatchString(name)
}

// Registry is the server-wide collection of active rooms, keyed by room name,
// with an index of which room each username is in.
type Registry struct {
	mu       sync.Mutex
	maxRooms int
	rooms    map[string]*Room
	byUser   map[string]string // username -> room name
}

// NewRegistry creates an empty registry. maxRooms <= 0 applies the default
// cap.
func NewRegistry(maxRooms int) *Registry {
	if maxRooms <= 0 {
		maxRooms = DefaultMaxRooms
	}
	return &Registry{
		maxRooms: maxRooms,
		rooms:    make(map[string]*Room),
		byUser:   make(map[string]string),
	}
}

// Create validates the room name and, if the registry has capacity, creates
// the room with owner seated as the X player.
func (g *Registry) Create(name, owner string, conn comms.Conn) (*Room, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !ValidName(name) {
		return nil, ErrBadName
	}
	if _, ok := g.rooms[name]; ok {
		return nil, ErrNameTaken
	}
	if len(g.rooms) >= g.maxRooms {
		return nil, ErrRoomLimit
	}

	r := New(name)
	r.AssignX(conn)
	g.rooms[name] = r
	g.byUser[owner] = name
	return r, nil
}

// Get looks a room up by name.
func (g *Registry) Get(name string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[name]
	return r, ok
}

// RoomOf returns the room a username is playing in, if any.
func (g *Registry) RoomOf(username string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	name, ok := g.byUser[username]
	if !ok {
		return nil, false
	}
	r, ok := g.rooms[name]
	return r, ok
}

// Enter records that username is playing in the named room.
func (g *Registry) Enter(username, name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.byUser[username] = name
}

// Remove deletes a room and every username index entry pointing at it.
func (g *Registry) Remove(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.rooms, name)
	for user, room := range g.byUser {
		if room == name {
			delete(g.byUser, user)
		}
	}
}

// Len returns the number of active rooms.
func (g *Registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rooms)
}

// Viewable returns the sorted names of every active room.
func (g *Registry) Viewable() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	names := make([]string, 0, len(g.rooms))
	for name := range g.rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Playable returns the sorted names of rooms with an open player slot.
func (g *Registry) Playable() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	names := make([]string, 0, len(g.rooms))
	for name, r := range g.rooms {
		if !r.Full() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
