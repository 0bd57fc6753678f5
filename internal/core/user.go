package core

import "github.com/corvidae/roombot/internal/text"

// User is one known chat participant. ID is the normalized identity key the
// directory is indexed by; Name keeps the server's display casing. The id
// only changes through rename reconciliation (Room.OnRename).
type User struct {
	ID   string
	Name string
	// Rooms maps every room the user occupies to the rank held there.
	// Mirrors Room.users: a user lists a room iff the room lists the user.
	Rooms map[*Room]string
}

func newUser(name, id string) *User {
	return &User{
		ID:    id,
		Name:  name,
		Rooms: make(map[*Room]string),
	}
}

// Directory is the shared table of user records keyed by normalized id.
// One instance per connected session; tests construct their own.
type Directory struct {
	users map[string]*User
	self  *User
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{users: make(map[string]*User)}
}

// ResolveOrCreate returns the record a ranked name token refers to, creating
// it on first sight. Returns nil if the token normalizes to an empty id.
func (d *Directory) ResolveOrCreate(rankedName string) *User {
	name := text.ToName(rankedName)
	id := text.ToID(name)
	if id == "" {
		return nil
	}
	if u, ok := d.users[id]; ok {
		return u
	}
	u := newUser(name, id)
	d.users[id] = u
	return u
}

// ResolveExisting returns the record a ranked name token refers to, or nil
// if no such user is known.
func (d *Directory) ResolveExisting(rankedName string) *User {
	return d.users[text.ToID(rankedName)]
}

// Lookup returns the record bound to a normalized id, or nil.
func (d *Directory) Lookup(id string) *User { return d.users[id] }

// Bind writes an id binding directly. Rename reconciliation moves records
// between ids with Bind and Unbind.
func (d *Directory) Bind(id string, u *User) { d.users[id] = u }

// Unbind drops an id binding. The record itself survives as long as rooms
// still reference it.
func (d *Directory) Unbind(id string) { delete(d.users, id) }

// Len reports the number of known records.
func (d *Directory) Len() int { return len(d.users) }

// SetSelf marks the record this connection is logged in as. Chat lines from
// self resolve reply listeners instead of reaching the command engine.
func (d *Directory) SetSelf(u *User) { d.self = u }

// Self returns the bot's own record, or nil before login completes.
func (d *Directory) Self() *User { return d.self }
