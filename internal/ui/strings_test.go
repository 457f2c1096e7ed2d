package ui

import "testing"

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{-3, "0s"},
		{42, "42s"},
		{185, "3m 05s"},
		{3720, "1h 02m"},
	}
	for _, tc := range cases {
		if got := formatSeconds(tc.in); got != tc.want {
			t.Fatalf("formatSeconds(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Monstrous Nightmare", 10); got != "Monstro..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("Skrill", 10); got != "Skrill" {
		t.Fatalf("truncate = %q", got)
	}
}

func TestBar(t *testing.T) {
	if got := bar(50, 4); got != "██░░" {
		t.Fatalf("bar(50,4) = %q", got)
	}
	if got := bar(150, 2); got != "██" {
		t.Fatalf("bar clamps high values, got %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	if got := titleCase("boulder_class"); got != "Boulder Class" {
		t.Fatalf("titleCase = %q", got)
	}
}
