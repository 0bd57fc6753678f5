// Package client holds the single upstream WebSocket connection. It reads
// frames, routes their lines into the room registry, and writes queued
// outbound lines at a fixed throttle.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/corvidae/roombot/internal/config"
	"github.com/corvidae/roombot/internal/core"
	"github.com/corvidae/roombot/internal/protocol"
	"github.com/corvidae/roombot/internal/text"
)

const outboundQueueSize = 128

// Client implements core.Sender over one WebSocket connection.
type Client struct {
	cfg config.Config
	log *zerolog.Logger
	dir *core.Directory

	registry *core.Registry
	outbound chan string
}

// New builds a client. AttachRegistry must be called before Run.
func New(cfg config.Config, logger *zerolog.Logger, dir *core.Directory) *Client {
	return &Client{
		cfg:      cfg,
		log:      logger,
		dir:      dir,
		outbound: make(chan string, outboundQueueSize),
	}
}

// AttachRegistry hands the client the registry it routes inbound lines into.
// Separate from New because the registry needs the client as its sender.
func (c *Client) AttachRegistry(registry *core.Registry) {
	c.registry = registry
}

// Send implements core.Sender. The line is queued and written later by the
// write loop; a full queue drops the line rather than blocking dispatch.
func (c *Client) Send(line string) {
	select {
	case c.outbound <- line:
	default:
		c.log.Warn().Str("line", line).Msg("outbound queue full, dropping line")
	}
}

// Run dials the server and processes the connection until the context is
// cancelled or the connection fails.
func (c *Client) Run(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, c.cfg.ServerURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.cfg.ServerURL, err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "closing")
	conn.SetReadLimit(1 << 20)

	c.log.Info().Str("server", c.cfg.ServerURL).Msg("connected")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() { errCh <- c.readLoop(ctx, conn) }()
	go func() { errCh <- c.writeLoop(ctx, conn) }()

	err = <-errCh
	cancel() // stop the other loop
	<-errCh

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		c.handleFrame(ctx, string(data))
	}
}

func (c *Client) writeLoop(ctx context.Context, conn *websocket.Conn) error {
	throttle := time.NewTicker(c.cfg.SendThrottle)
	defer throttle.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line := <-c.outbound:
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-throttle.C:
			}
			if err := conn.Write(ctx, websocket.MessageText, []byte(line)); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		}
	}
}

func (c *Client) handleFrame(ctx context.Context, payload string) {
	frame := protocol.ParseFrame(payload)
	roomID := frame.RoomID
	if roomID == "" {
		roomID = core.DefaultRoomID
	}
	for _, raw := range frame.Lines {
		c.handleLine(ctx, roomID, protocol.ParseLine(raw))
	}
}

// handleLine routes one inbound line: connection-level tags are handled
// here, everything room-scoped goes through the registry.
func (c *Client) handleLine(ctx context.Context, roomID string, line protocol.Line) {
	switch line.Tag {
	case "challstr":
		go c.login(ctx, strings.Join(line.Fields, protocol.FieldSep))
	case "updateuser":
		c.onUpdateUser(line.Fields)
	case "init":
		c.registry.Add(roomID)
	case "deinit", "noinit":
		c.registry.Destroy(roomID)
	case "users":
		c.onUserList(roomID, line.Fields)
	case "nametaken":
		c.log.Error().Strs("fields", line.Fields).Msg("login rejected, name taken")
	case "J", "j", "L", "l", "N", "n", "c", "c:":
		room := c.registry.Get(roomID)
		if room == nil {
			return
		}
		room.ParseMessage(line.Tag, line.Fields)
	default:
		// The server emits many informational tags this bot does not track.
	}
}

// onUpdateUser fires when the server confirms who this connection is. Once
// the named login lands, the directory learns the bot's own record and the
// configured rooms are joined.
func (c *Client) onUpdateUser(fields []string) {
	if len(fields) < 2 {
		return
	}
	if text.ToID(fields[0]) != text.ToID(c.cfg.Username) {
		return
	}
	if fields[1] != "1" {
		c.log.Warn().Str("user", fields[0]).Msg("connected as guest, waiting for login")
		return
	}
	self := c.dir.ResolveOrCreate(fields[0])
	if self == nil {
		return
	}
	c.dir.SetSelf(self)
	c.log.Info().Str("user", self.Name).Msg("logged in")
	for _, room := range c.cfg.Rooms {
		c.Send("|/join " + room)
	}
}

// onUserList seeds membership from the roster line sent on room init. The
// field is a leading member count followed by comma-separated ranked names.
func (c *Client) onUserList(roomID string, fields []string) {
	if len(fields) < 1 {
		return
	}
	room := c.registry.Add(roomID)
	entries := strings.Split(fields[0], ",")
	if len(entries) > 0 {
		entries = entries[1:] // drop the count
	}
	for _, ranked := range entries {
		u := c.dir.ResolveOrCreate(ranked)
		if u == nil {
			continue
		}
		room.OnJoin(u, text.Rank(ranked))
	}
}
