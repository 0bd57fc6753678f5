// Package protocol tokenizes the upstream line protocol: each WebSocket
// payload is an optional ">roomid" header followed by newline-separated
// lines, and each line is a message-type tag with pipe-delimited fields.
package protocol

import "strings"

// FieldSep separates the tag and fields inside one protocol line.
const FieldSep = "|"

// Frame is one decoded WebSocket payload.
type Frame struct {
	// RoomID is the target room, empty when the payload carried no room
	// header (the server then means its default room).
	RoomID string
	Lines  []string
}

// Line is one protocol line split into its message-type tag and fields.
type Line struct {
	Tag    string
	Fields []string
}

// ParseFrame splits a payload into its target room and non-empty lines.
func ParseFrame(payload string) Frame {
	lines := strings.Split(payload, "\n")
	var roomID string
	if len(lines) > 0 && strings.HasPrefix(lines[0], ">") {
		roomID = strings.TrimSpace(lines[0][1:])
		lines = lines[1:]
	}
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			kept = append(kept, l)
		}
	}
	return Frame{RoomID: roomID, Lines: kept}
}

// ParseLine splits one raw line. A line that does not start with the field
// separator carries no tag; its full text comes back as a single field.
func ParseLine(raw string) Line {
	if !strings.HasPrefix(raw, FieldSep) {
		return Line{Fields: []string{raw}}
	}
	parts := strings.Split(raw[1:], FieldSep)
	return Line{Tag: parts[0], Fields: parts[1:]}
}
