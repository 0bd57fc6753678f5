package core

import "github.com/rs/zerolog"

// DefaultRoomID is the room the server addresses when a payload carries no
// room header. It is the one room whose outbound prefix is empty.
const DefaultRoomID = "lobby"

// Registry owns every room the bot currently tracks. A room exists exactly
// as long as the registry holds it.
type Registry struct {
	rooms  map[string]*Room
	dir    *Directory
	sender Sender
	engine CommandEngine
	log    zerolog.Logger
}

// NewRegistry builds an empty registry. sender and engine are handed to
// every room it creates.
func NewRegistry(dir *Directory, sender Sender, engine CommandEngine, logger zerolog.Logger) *Registry {
	return &Registry{
		rooms:  make(map[string]*Room),
		dir:    dir,
		sender: sender,
		engine: engine,
		log:    logger,
	}
}

// Get returns the room for an id, or nil. It never creates.
func (rg *Registry) Get(id string) *Room { return rg.rooms[id] }

// Add returns the room for an id, creating and registering it on first use.
// Repeated calls with the same id return the same room.
func (rg *Registry) Add(id string) *Room {
	if room, ok := rg.rooms[id]; ok {
		return room
	}
	room := newRoom(id, rg.dir, rg.sender, rg.engine, rg.log)
	rg.rooms[id] = room
	rg.log.Debug().Str("room", id).Msg("room created")
	return room
}

// Destroy drops a room. Every member is unlinked first so no user record
// keeps pointing at a dead room; skipping that walk would leave dangling
// back-references in the directory. No-op for unknown ids.
func (rg *Registry) Destroy(id string) {
	room, ok := rg.rooms[id]
	if !ok {
		return
	}
	if room.activity != nil {
		room.activity.End()
		room.activity = nil
	}
	for u := range room.users {
		delete(u.Rooms, room)
	}
	delete(rg.rooms, id)
	rg.log.Debug().Str("room", id).Msg("room destroyed")
}

// Clear destroys every room. Used when the connection drops: the server
// resends full room state on the next init.
func (rg *Registry) Clear() {
	for id := range rg.rooms {
		rg.Destroy(id)
	}
}

// Len reports how many rooms are tracked.
func (rg *Registry) Len() int { return len(rg.rooms) }
