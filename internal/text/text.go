package text

import (
	"strings"
	"unicode/utf8"
)

// rankSymbols are the permission-tier prefixes the server puts in front of
// names in protocol lines. A plain space marks a regular user.
const rankSymbols = " +%@*#&~!?☆✖†§"

// maxMessageLength caps outbound chat lines; the server truncates or rejects
// anything longer.
const maxMessageLength = 300

// ToID reduces a name to its identity key: lowercase letters and digits
// only. Rank prefixes and formatting fall away, so the ranked token from a
// protocol line and the bare display name key to the same record.
func ToID(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// ToName strips the rank prefix and surrounding whitespace from a ranked
// name token, leaving the display form.
func ToName(raw string) string {
	s := raw
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if !strings.ContainsRune(rankSymbols, r) {
			break
		}
		s = s[size:]
	}
	return strings.TrimSpace(s)
}

// Rank returns the first character of a ranked name token, which is the
// user's permission symbol in that room. Empty input yields an empty rank.
func Rank(ranked string) string {
	_, size := utf8.DecodeRuneInString(ranked)
	if size == 0 {
		return ""
	}
	return ranked[:size]
}

// NormalizeOutbound prepares text for sending: newlines collapse to spaces,
// surrounding whitespace goes, overlong messages are cut. An empty result
// means the message should not be sent at all.
func NormalizeOutbound(raw string) string {
	msg := strings.ReplaceAll(raw, "\n", " ")
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return ""
	}
	if len(msg) > maxMessageLength {
		msg = strings.TrimSpace(msg[:maxMessageLength])
	}
	return msg
}
