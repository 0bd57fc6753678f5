// Package command routes chat messages that start with the configured
// command character to their handlers.
package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/corvidae/roombot/internal/core"
	"github.com/corvidae/roombot/internal/games"
)

// staleAfter is how old a replayed backlog line may be and still get an
// answer. Responding to older lines would spam the room on every rejoin.
const staleAfter = 30 * time.Second

// Handler runs one command. target is everything after the command word.
type Handler func(target string, room *core.Room, user *core.User)

// Engine implements core.CommandEngine with a dispatch table.
type Engine struct {
	char     string
	sender   core.Sender
	log      *zerolog.Logger
	started  time.Time
	handlers map[string]Handler
}

// NewEngine builds the engine with its built-in commands registered.
func NewEngine(commandChar string, sender core.Sender, logger *zerolog.Logger) *Engine {
	e := &Engine{
		char:    commandChar,
		sender:  sender,
		log:     logger,
		started: time.Now(),
	}
	e.handlers = map[string]Handler{
		"about":   e.about,
		"uptime":  e.uptime,
		"poll":    e.poll,
		"vote":    e.vote,
		"endpoll": e.endPoll,
	}
	return e
}

// Dispatch implements core.CommandEngine.
func (e *Engine) Dispatch(message string, room *core.Room, user *core.User, delay time.Duration) {
	if delay > staleAfter {
		return
	}
	if !strings.HasPrefix(message, e.char) {
		return
	}
	rest := message[len(e.char):]
	name, target := rest, ""
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		name, target = rest[:i], strings.TrimSpace(rest[i+1:])
	}
	name = strings.ToLower(name)
	handler, ok := e.handlers[name]
	if !ok {
		return
	}
	e.log.Debug().Str("command", name).Str("user", user.ID).Str("room", room.ID).Msg("command dispatched")
	handler(target, room, user)
}

func (e *Engine) about(_ string, room *core.Room, _ *core.User) {
	room.Say("Hi, I track this room. Commands start with " + e.char + ".")
}

func (e *Engine) uptime(_ string, room *core.Room, _ *core.User) {
	room.Say(fmt.Sprintf("Up for %s.", time.Since(e.started).Round(time.Second)))
}

// poll starts a poll: "poll question, option, option". Restricted to ranked
// users so random visitors cannot occupy the room's single activity slot.
func (e *Engine) poll(target string, room *core.Room, user *core.User) {
	if !isRanked(room, user) {
		return
	}
	if room.Activity() != nil {
		room.Say("A session is already running in this room.")
		return
	}
	parts := strings.Split(target, ",")
	if len(parts) < 3 {
		room.Say("Usage: " + e.char + "poll question, option, option")
		return
	}
	question := strings.TrimSpace(parts[0])
	options := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		if o := strings.TrimSpace(p); o != "" {
			options = append(options, o)
		}
	}
	if question == "" || len(options) < 2 {
		room.Say("Usage: " + e.char + "poll question, option, option")
		return
	}
	p := games.NewPoll(room, question, options)
	room.SetActivity(p)
	p.Open()
}

func (e *Engine) vote(target string, room *core.Room, user *core.User) {
	p, ok := room.Activity().(*games.Poll)
	if !ok {
		return
	}
	p.Vote(user, target)
}

func (e *Engine) endPoll(_ string, room *core.Room, user *core.User) {
	if !isRanked(room, user) {
		return
	}
	if p, ok := room.Activity().(*games.Poll); ok {
		p.End()
		room.SetActivity(nil)
	}
}

// isRanked reports whether the user holds any rank above a regular member
// in the room.
func isRanked(room *core.Room, user *core.User) bool {
	rank, ok := room.Rank(user)
	return ok && rank != " " && rank != ""
}
