// Package games holds the interactive sessions that can be attached to a
// room. Only one session runs per room at a time.
package games

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/corvidae/roombot/internal/core"
	"github.com/corvidae/roombot/internal/text"
)

// Poll is a minimal room session: one question, a fixed set of options,
// votes keyed by the voter's display name. The display-name keying is why
// it implements core.RenameAware.
type Poll struct {
	id       string
	room     *core.Room
	question string
	options  []string
	votes    map[string]string
	open     bool
}

// NewPoll builds a poll for a room. It is not announced until Open.
func NewPoll(room *core.Room, question string, options []string) *Poll {
	return &Poll{
		id:       uuid.NewString(),
		room:     room,
		question: question,
		options:  options,
		votes:    make(map[string]string),
	}
}

// Name implements core.Activity.
func (p *Poll) Name() string { return "poll" }

// ID returns the session id.
func (p *Poll) ID() string { return p.id }

// Open announces the poll in its room and starts accepting votes.
func (p *Poll) Open() {
	p.open = true
	p.room.Say(fmt.Sprintf("Poll: %s (vote with one of: %s)", p.question, strings.Join(p.options, ", ")))
}

// Vote records or replaces the user's vote. Votes for unknown options and
// votes after the poll closed are ignored.
func (p *Poll) Vote(user *core.User, option string) {
	if !p.open {
		return
	}
	key := text.ToID(option)
	for _, o := range p.options {
		if text.ToID(o) == key {
			p.votes[user.Name] = o
			return
		}
	}
}

// End implements core.Activity: closes voting and announces the tally.
func (p *Poll) End() {
	if !p.open {
		return
	}
	p.open = false
	if len(p.votes) == 0 {
		p.room.Say("Poll closed: no votes.")
		return
	}
	counts := make(map[string]int)
	for _, option := range p.votes {
		counts[option]++
	}
	results := make([]string, 0, len(counts))
	for option, n := range counts {
		results = append(results, fmt.Sprintf("%s: %d", option, n))
	}
	sort.Strings(results)
	p.room.Say("Poll closed: " + strings.Join(results, ", "))
}

// OnParticipantRenamed implements core.RenameAware: a vote recorded under
// the old display name moves to the new one.
func (p *Poll) OnParticipantRenamed(user *core.User, oldName string) {
	vote, ok := p.votes[oldName]
	if !ok {
		return
	}
	delete(p.votes, oldName)
	p.votes[user.Name] = vote
}
