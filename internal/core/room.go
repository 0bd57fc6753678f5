package core

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/corvidae/roombot/internal/text"
)

// Sender is the outbound transport. Send queues one raw protocol line and
// returns immediately; delivery is fire-and-forget.
type Sender interface {
	Send(line string)
}

// CommandEngine receives chat lines that did not originate from the bot
// itself. delay is how long ago the message was actually sent; zero for
// live lines, positive for backlog replay.
type CommandEngine interface {
	Dispatch(message string, room *Room, user *User, delay time.Duration)
}

// Activity is a long-running interactive session attached to a room.
// At most one activity is attached at a time.
type Activity interface {
	Name() string
	End()
}

// RenameAware is implemented by activities that index participants by
// display name and must migrate that state when a participant renames.
type RenameAware interface {
	OnParticipantRenamed(user *User, oldName string)
}

// Room tracks the bot's view of one joined room: who occupies it and at
// what rank, pending reply listeners, and the attached activity if any.
type Room struct {
	// ID uniquely keys the room in the registry.
	ID string
	// ClientID prefixes outbound lines. The default room sends with an
	// empty prefix; every other room sends with its own id.
	ClientID string

	users     map[*User]string
	listeners map[string]func()
	activity  Activity

	dir    *Directory
	sender Sender
	engine CommandEngine
	log    zerolog.Logger
}

func newRoom(id string, dir *Directory, sender Sender, engine CommandEngine, logger zerolog.Logger) *Room {
	clientID := id
	if id == DefaultRoomID {
		clientID = ""
	}
	return &Room{
		ID:        id,
		ClientID:  clientID,
		users:     make(map[*User]string),
		listeners: make(map[string]func()),
		dir:       dir,
		sender:    sender,
		engine:    engine,
		log:       logger.With().Str("room", id).Logger(),
	}
}

// Rank returns the rank the user holds here, or false if not a member.
func (r *Room) Rank(u *User) (string, bool) {
	rank, ok := r.users[u]
	return rank, ok
}

// MemberCount reports how many users the room currently tracks.
func (r *Room) MemberCount() int { return len(r.users) }

// Activity returns the attached session, or nil.
func (r *Room) Activity() Activity { return r.activity }

// SetActivity attaches a session. Pass nil to detach.
func (r *Room) SetActivity(a Activity) { r.activity = a }

// OnJoin records the user at the given rank and mirrors the membership on
// the user record. Calling again with the same arguments changes nothing.
func (r *Room) OnJoin(u *User, rank string) {
	r.users[u] = rank
	u.Rooms[r] = rank
}

// OnLeave forgets the user on both sides. Not an error if the user was
// never here.
func (r *Room) OnLeave(u *User) {
	delete(r.users, u)
	delete(u.Rooms, r)
}

// OnRename reconciles a rename event. newRanked is the raw ranked token the
// server reported as the user's new identity. The protocol reuses this
// event for cosmetic renames and account switches alike, so the target id
// may already belong to another record: the event then folds onto that
// record, and the one it arrived on is evicted once no room lists it.
func (r *Room) OnRename(u *User, newRanked string) {
	rank := text.Rank(newRanked)
	name := text.ToName(newRanked)
	id := text.ToID(name)
	oldName := u.Name

	switch {
	case id == u.ID:
		u.Name = name
	case r.dir.Lookup(id) == nil:
		r.dir.Unbind(u.ID)
		u.Name = name
		u.ID = id
		r.dir.Bind(id, u)
	default:
		prev := u
		u = r.dir.Lookup(id)
		u.Name = name
		if len(prev.Rooms) == 0 {
			r.dir.Unbind(prev.ID)
		}
		r.log.Debug().Str("from", prev.ID).Str("to", u.ID).Msg("rename merged onto existing user")
	}

	r.OnJoin(u, rank)
	if aware, ok := r.activity.(RenameAware); ok {
		aware.OnParticipantRenamed(u, oldName)
	}
}

// Say sends a chat message to the room. Text that normalizes to nothing is
// dropped. This is the only transport write path in the room layer.
func (r *Room) Say(message string) {
	message = text.NormalizeOutbound(message)
	if message == "" || r.sender == nil {
		return
	}
	r.sender.Send(r.ClientID + "|" + message)
}

// On registers a reply listener fired when the bot's own chat line echoes
// back with matching text. Matching is by identity key; a listener fires
// once and is removed before it runs. Registering the same key again
// replaces the previous listener.
func (r *Room) On(message string, listener func()) {
	message = text.NormalizeOutbound(message)
	if message == "" {
		return
	}
	r.listeners[text.ToID(message)] = listener
}

// ParseMessage applies one inbound protocol line to the room. tag is the
// message-type token, fields the pipe-delimited payload that followed it.
// Unknown tags and lines about unknown users are dropped without effect;
// both are routine during churn.
func (r *Room) ParseMessage(tag string, fields []string) {
	switch tag {
	case "J", "j":
		if len(fields) < 1 {
			return
		}
		u := r.dir.ResolveOrCreate(fields[0])
		if u == nil {
			return
		}
		r.OnJoin(u, text.Rank(fields[0]))
	case "L", "l":
		if len(fields) < 1 {
			return
		}
		u := r.dir.ResolveExisting(fields[0])
		if u == nil {
			return
		}
		r.OnLeave(u)
	case "N", "n":
		if len(fields) < 2 {
			return
		}
		u := r.dir.ResolveExisting(fields[1])
		if u == nil {
			return
		}
		r.OnRename(u, fields[0])
	case "c":
		if len(fields) < 1 {
			return
		}
		r.onChat(fields[0], fields[1:], 0)
	case "c:":
		if len(fields) < 2 {
			return
		}
		secs, err := strconv.Atoi(fields[0])
		if err != nil {
			secs = 0
		}
		r.onChat(fields[1], fields[2:], time.Duration(secs)*time.Second)
	}
}

func (r *Room) onChat(ranked string, parts []string, delay time.Duration) {
	u := r.dir.ResolveExisting(ranked)
	if u == nil {
		return
	}
	if rank := text.Rank(ranked); r.users[u] != rank {
		r.OnJoin(u, rank)
	}
	message := strings.Join(parts, "|")
	if self := r.dir.Self(); self != nil && u.ID == self.ID {
		key := text.ToID(message)
		if listener, ok := r.listeners[key]; ok {
			delete(r.listeners, key)
			listener()
		}
		return
	}
	if r.engine != nil {
		r.engine.Dispatch(message, r, u, delay)
	}
}
