package language

import "testing"

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"en-US", "en"},
		{"eng", "en"},
		{"fra", "fr"},
		{"deu", "de"},
		{"english", "en"},
		{"GERMAN", "de"},
		{"", ""},
		{" ", ""},
		{"not a language", ""},
	}
	for _, tc := range tests {
		if got := ToISO2(tc.input); got != tc.expected {
			t.Errorf("ToISO2(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestToISO3(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "eng"},
		{"es", "spa"},
		{"fr-CA", "fra"},
		{"icelandic", "isl"},
		{"", "und"},
		{"not a language", "und"},
	}
	for _, tc := range tests {
		if got := ToISO3(tc.input); got != tc.expected {
			t.Errorf("ToISO3(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(""); got != "Unknown" {
		t.Fatalf("DisplayName(\"\") = %q", got)
	}
	if got := DisplayName("en"); got != "English" {
		t.Fatalf("DisplayName(en) = %q", got)
	}
	if got := DisplayName("zz zz"); got != "ZZ ZZ" {
		t.Fatalf("DisplayName(zz zz) = %q", got)
	}
}

func TestValid(t *testing.T) {
	if !Valid("en") || Valid("") || Valid("!!") {
		t.Fatal("unexpected Valid results")
	}
}
