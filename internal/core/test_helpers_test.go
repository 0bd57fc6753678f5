package core

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeSender struct {
	lines []string
}

func (s *fakeSender) Send(line string) { s.lines = append(s.lines, line) }

type dispatched struct {
	message string
	room    *Room
	user    *User
	delay   time.Duration
}

type fakeEngine struct {
	calls []dispatched
}

func (e *fakeEngine) Dispatch(message string, room *Room, user *User, delay time.Duration) {
	e.calls = append(e.calls, dispatched{message, room, user, delay})
}

type fakeActivity struct {
	ended bool
}

func (a *fakeActivity) Name() string { return "fake" }
func (a *fakeActivity) End()         { a.ended = true }

type renameRecord struct {
	user    *User
	oldName string
}

// renameAwareActivity additionally records rename notifications.
type renameAwareActivity struct {
	fakeActivity
	renames []renameRecord
}

func (a *renameAwareActivity) OnParticipantRenamed(u *User, oldName string) {
	a.renames = append(a.renames, renameRecord{user: u, oldName: oldName})
}

func newTestRegistry(t *testing.T) (*Registry, *Directory, *fakeSender, *fakeEngine) {
	t.Helper()

	dir := NewDirectory()
	sender := &fakeSender{}
	engine := &fakeEngine{}
	return NewRegistry(dir, sender, engine, zerolog.Nop()), dir, sender, engine
}

// checkMember fails when the room and the user disagree about membership, or
// when the agreed state is not the wanted one.
func checkMember(t *testing.T, room *Room, u *User, want bool) {
	t.Helper()

	_, inRoom := room.users[u]
	_, inUser := u.Rooms[room]
	if inRoom != inUser {
		t.Fatalf("membership maps disagree for %q in %q: room=%v user=%v", u.ID, room.ID, inRoom, inUser)
	}
	if inRoom != want {
		t.Fatalf("membership of %q in %q = %v, want %v", u.ID, room.ID, inRoom, want)
	}
}
