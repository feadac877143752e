package events

import "testing"

func TestDeckSubject(t *testing.T) {
	if got := DeckSubject("abc123"); got != "decks.abc123.events" {
		t.Errorf("DeckSubject = %q", got)
	}
}

func TestDeckFromSubject(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{"decks.abc123.events", "abc123"},
		{"decks.abc123.other", ""},
		{"other.abc123.events", ""},
		{"decks.events", ""},
	}
	for _, tt := range tests {
		if got := DeckFromSubject(tt.subject); got != tt.want {
			t.Errorf("DeckFromSubject(%q) = %q, want %q", tt.subject, got, tt.want)
		}
	}
}

func TestMatchSubject(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		want    bool
	}{
		{"decks.d1.events", "decks.d1.events", true},
		{"decks.*.events", "decks.d1.events", true},
		{"decks.*.events", "decks.d1.other", false},
		{"decks.>", "decks.d1.events", true},
		{"decks.>", "decks", false},
		{"decks.d1.events", "decks.d2.events", false},
		{"decks.*.events", "decks.d1.events.extra", false},
	}
	for _, tt := range tests {
		if got := matchSubject(tt.pattern, tt.subject); got != tt.want {
			t.Errorf("matchSubject(%q, %q) = %v, want %v", tt.pattern, tt.subject, got, tt.want)
		}
	}
}
