package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  John   Smith  ", "John Smith"},
		{"no change", "no change"},
		{"tabs\tand\nnewlines", "tabs and newlines"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := TrimAndNormalize(tt.input); got != tt.want {
			t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"USER@Example.COM", "user@example.com"},
		{"  user@example.com ", "user@example.com"},
		{"already@lower.com", "already@lower.com"},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.input); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(555) 123-4567", "5551234567"},
		{"+1 555 123 4567", "15551234567"},
		{"no digits", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := DigitsOnly(tt.input); got != tt.want {
			t.Errorf("DigitsOnly(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPrettyPhone(t *testing.T) {
	if got := PrettyPhone("5551234567"); got != "(555) 123-4567" {
		t.Errorf("PrettyPhone(5551234567) = %q, want (555) 123-4567", got)
	}
	// Unparseable input falls back to the raw string.
	if got := PrettyPhone("not a phone"); got != "not a phone" {
		t.Errorf("PrettyPhone fallback = %q, want raw input", got)
	}
}
