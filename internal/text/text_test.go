package text

import (
	"strings"
	"testing"
)

func TestToID(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Bob", "bob"},
		{" Bob", "bob"},
		{"+Bob", "bob"},
		{"User 0", "user0"},
		{"Mr. O'Neill", "mroneill"},
		{"ANNA-42", "anna42"},
		{"~!!", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := ToID(c.in); got != c.want {
			t.Errorf("ToID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestToName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{" Bob", "Bob"},
		{"+Bob", "Bob"},
		{"*RoomBot", "RoomBot"},
		{"☆Anna", "Anna"},
		{"User 0", "User 0"},
		{"  padded  ", "padded"},
		{"", ""},
	}
	for _, c := range cases {
		if got := ToName(c.in); got != c.want {
			t.Errorf("ToName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRank(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{" Bob", " "},
		{"+Bob", "+"},
		{"☆Anna", "☆"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Rank(c.in); got != c.want {
			t.Errorf("Rank(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeOutbound(t *testing.T) {
	if got := NormalizeOutbound("  hello  "); got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
	if got := NormalizeOutbound("two\nlines"); got != "two lines" {
		t.Errorf("got %q, want %q", got, "two lines")
	}
	if got := NormalizeOutbound(" \n \t"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestNormalizeOutboundTruncatesLongMessages(t *testing.T) {
	long := strings.Repeat("a", 1000)
	got := NormalizeOutbound(long)
	if len(got) != maxMessageLength {
		t.Fatalf("len = %d, want %d", len(got), maxMessageLength)
	}
}
