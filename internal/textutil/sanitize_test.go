package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"summer trip.mp4", "summer trip.mp4"},
		{"a/b\\c:d", "a-b-c-d"},
		{"what?.mp4", "what.mp4"},
		{"  <final> cut  ", "final cut"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeFileName(tc.input); got != tc.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Summer Trip 2026", "summer_trip_2026"},
		{"already-safe_token", "already-safe_token"},
		{"???", "export"},
		{"", "export"},
		{"__trimmed__", "trimmed"},
	}
	for _, tc := range cases {
		if got := SanitizeToken(tc.input); got != tc.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"/projects/summer_trip.json", "Summer Trip"},
		{"promo-v2.json", "Promo V2"},
		{"", "Untitled Export"},
		{"...", "Untitled Export"},
	}
	for _, tc := range cases {
		if got := DeriveTitle(tc.input); got != tc.want {
			t.Errorf("DeriveTitle(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
