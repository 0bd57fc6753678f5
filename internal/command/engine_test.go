package command

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/corvidae/roombot/internal/core"
	"github.com/corvidae/roombot/internal/games"
)

type fakeSender struct {
	lines []string
}

func (s *fakeSender) Send(line string) { s.lines = append(s.lines, line) }

func newTestEngine(t *testing.T) (*Engine, *core.Registry, *core.Directory, *fakeSender) {
	t.Helper()

	dir := core.NewDirectory()
	sender := &fakeSender{}
	logger := zerolog.Nop()
	engine := NewEngine(".", sender, &logger)
	registry := core.NewRegistry(dir, sender, engine, zerolog.Nop())
	return engine, registry, dir, sender
}

func TestDispatchIgnoresPlainChat(t *testing.T) {
	engine, registry, dir, sender := newTestEngine(t)
	room := registry.Add("games")
	room.ParseMessage("J", []string{" Anna"})

	engine.Dispatch("just chatting", room, dir.Lookup("anna"), 0)
	engine.Dispatch(".nosuchcommand", room, dir.Lookup("anna"), 0)

	if len(sender.lines) != 0 {
		t.Fatalf("sent %d lines, want 0", len(sender.lines))
	}
}

func TestDispatchRunsCommand(t *testing.T) {
	engine, registry, dir, sender := newTestEngine(t)
	room := registry.Add("games")
	room.ParseMessage("J", []string{" Anna"})

	engine.Dispatch(".about", room, dir.Lookup("anna"), 0)

	if len(sender.lines) != 1 {
		t.Fatalf("sent %d lines, want 1", len(sender.lines))
	}
	if !strings.HasPrefix(sender.lines[0], "games|") {
		t.Fatalf("reply went to %q", sender.lines[0])
	}
}

func TestDispatchDropsStaleBacklog(t *testing.T) {
	engine, registry, dir, sender := newTestEngine(t)
	room := registry.Add("games")
	room.ParseMessage("J", []string{" Anna"})

	engine.Dispatch(".about", room, dir.Lookup("anna"), 5*time.Minute)

	if len(sender.lines) != 0 {
		t.Fatal("answered a stale backlog line")
	}
}

func TestPollLifecycle(t *testing.T) {
	engine, registry, dir, sender := newTestEngine(t)
	room := registry.Add("games")
	room.ParseMessage("J", []string{"%Anna"})
	room.ParseMessage("J", []string{" Bob"})
	anna := dir.Lookup("anna")
	bob := dir.Lookup("bob")

	engine.Dispatch(".poll lunch, pizza, soup", room, anna, 0)

	poll, ok := room.Activity().(*games.Poll)
	if !ok {
		t.Fatal("poll command did not attach a poll")
	}
	if poll.Name() != "poll" {
		t.Fatalf("activity name = %q", poll.Name())
	}

	engine.Dispatch(".vote pizza", room, bob, 0)
	engine.Dispatch(".endpoll", room, anna, 0)

	if room.Activity() != nil {
		t.Fatal("endpoll did not detach the poll")
	}
	last := sender.lines[len(sender.lines)-1]
	if !strings.Contains(last, "pizza: 1") {
		t.Fatalf("tally line = %q", last)
	}
}

func TestPollRequiresRank(t *testing.T) {
	engine, registry, dir, _ := newTestEngine(t)
	room := registry.Add("games")
	room.ParseMessage("J", []string{" Bob"})

	engine.Dispatch(".poll lunch, pizza, soup", room, dir.Lookup("bob"), 0)

	if room.Activity() != nil {
		t.Fatal("unranked user started a poll")
	}
}

func TestPollRefusedWhileActivityRunning(t *testing.T) {
	engine, registry, dir, sender := newTestEngine(t)
	room := registry.Add("games")
	room.ParseMessage("J", []string{"%Anna"})
	anna := dir.Lookup("anna")

	engine.Dispatch(".poll lunch, pizza, soup", room, anna, 0)
	first := room.Activity()
	engine.Dispatch(".poll dinner, rice, stew", room, anna, 0)

	if room.Activity() != first {
		t.Fatal("second poll replaced the running one")
	}
	last := sender.lines[len(sender.lines)-1]
	if !strings.Contains(last, "already running") {
		t.Fatalf("refusal line = %q", last)
	}
}
