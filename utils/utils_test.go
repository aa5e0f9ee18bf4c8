package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Deluxe Suite", "deluxe-suite"},
		{"Standard Sea View", "standard-sea-view"},
		{"  Family  Garden   View  ", "family-garden-view"},
		{"Room #3 (top floor)", "room-3-top-floor"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMaskEmail(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"ivan@example.com", "i**n@e******.com"},
		{"ab@example.com", "a*@e******.com"},
		{"a@b.co", "a@b.co"},
		{"not-an-email", "not-an-email"},
	}
	for _, tc := range cases {
		if got := MaskEmail(tc.in); got != tc.want {
			t.Errorf("MaskEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGenerateSecureToken(t *testing.T) {
	tok, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tok) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(tok))
	}
	if _, err := GenerateSecureToken(0); err == nil {
		t.Error("zero length must be rejected")
	}
}
