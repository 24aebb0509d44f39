package glob

import "testing"

func TestMatch(t *testing.T) {
	cases := []struct {
		pattern string
		data    string
		want    bool
	}{
		// literals
		{"", "", true},
		{"", "a", false},
		{"abc", "abc", true},
		{"abc", "abd", false},
		{"abc", "ab", false},

		// '?' matches exactly one byte
		{"a?c", "abc", true},
		{"a?c", "ac", false},
		{"a?c", "abbc", false},
		{"???", "abc", true},

		// '*' matches zero or more bytes
		{"a*c", "abc", true},
		{"a*c", "ac", true},
		{"a*c", "abd", false},
		{"a*c", "axxxxc", true},
		{"*", "anything", true},
		{"*.log", "server.log", true},
		{"*.log", "server.txt", false},

		// backtracking: resume one byte later from the last '*'
		{"a*bc", "aXbXbc", true},
		{"a*b*c", "a1b2b3c", true},
		{"*aab", "aaaab", true},

		// character classes
		{"[a-c]x", "bx", true},
		{"[a-c]x", "dx", false},
		{"[^a-c]x", "dx", true},
		{"[^a-c]x", "bx", false},
		{"[c-a]x", "bx", true}, // range is normalized
		{"[]]x", "]x", true},   // leading ']' is a literal member
		{"[abc]", "b", true},
		{"[abc]", "d", false},
		{"[a-]", "-", true}, // trailing '-' is a literal member

		// escapes strip special meaning
		{`\*`, "*", true},
		{`\*`, "a", false},
		{`\*`, "ab", false},
		{`a\?c`, "a?c", true},
		{`a\?c`, "abc", false},
		{`\[a]`, "[a]", true},

		// undefined constructs never match
		{`a\`, `a\`, false}, // dangling escape
		{"[ab", "a", false}, // unterminated class
		{"[", "x", false},

		// channel-style patterns
		{"room.*", "room.1", true},
		{"room.*", "lobby.1", false},
		{"room.?", "room.1", true},
		{"user.*.events", "user.42.events", true},
	}

	for _, tc := range cases {
		if got := Match([]byte(tc.pattern), []byte(tc.data)); got != tc.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tc.pattern, tc.data, got, tc.want)
		}
	}
}

func TestMatchBinaryData(t *testing.T) {
	// Patterns and data are plain byte slices; NUL bytes are not terminators.
	pattern := []byte{'a', '?', 'c'}
	data := []byte{'a', 0x00, 'c'}
	if !Match(pattern, data) {
		t.Error("expected '?' to match a NUL byte")
	}

	if !Match([]byte{'*', 0x00}, []byte{'x', 'y', 0x00}) {
		t.Error("expected '*' to match across arbitrary bytes")
	}
}

func TestMatchString(t *testing.T) {
	if !MatchString("a*c", "abc") {
		t.Error("MatchString should agree with Match")
	}
	if MatchString("a*c", "abd") {
		t.Error("MatchString should agree with Match on mismatch")
	}
}
