package strutil

import "testing"

func TestStrLen(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"e\u0301", 1},                                    // e + combining acute
		{"\U0001F1F3\U0001F1F1", 1},                       // regional indicator pair
		{"\U0001F469\u200D\U0001F469\u200D\U0001F467", 1}, // ZWJ family
		{"h\u00e9llo w\u00f6rld", 11},
	}

	for _, tt := range tests {
		if got := StrLen(tt.in); got != tt.want {
			t.Errorf("StrLen(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEqStr(t *testing.T) {
	if !EqStr("  Hello ", "hello") {
		t.Error("expected case and whitespace insensitive match")
	}
	if EqStr("hello", "help") {
		t.Error("different strings should not match")
	}
}

func TestFormatWithUnderscores(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1_000"},
		{1234567, "1_234_567"},
		{1_000_000_000_000, "1_000_000_000_000"},
	}

	for _, tt := range tests {
		if got := FormatWithUnderscores(tt.in); got != tt.want {
			t.Errorf("FormatWithUnderscores(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
