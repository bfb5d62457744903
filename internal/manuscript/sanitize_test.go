package manuscript

import (
	"strings"
	"testing"
)

// --- Sanitize tests ---

func TestSanitize_StripsHeadingMarkers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"h1", "# Title", "Title"},
		{"h3", "### Deep heading", "Deep heading"},
		{"h6", "###### Deepest", "Deepest"},
		{"overlong prefix", "#######Seven hashes", "Seven hashes"},
		{"mid-line hash kept", "price is #1", "price is #1"},
		{"multiple lines", "# One\nbody\n## Two", "One\nbody\nTwo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitize_StripsHorizontalRules(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dashes", "above\n---\nbelow", "above\n\nbelow"},
		{"underscores", "above\n____\nbelow", "above\n\nbelow"},
		{"asterisks", "above\n***\nbelow", "above\n\nbelow"},
		{"indented rule", "above\n  ---  \nbelow", "above\n\nbelow"},
		{"two dashes kept", "a\n--\nb", "a\n--\nb"},
		{"mixed characters kept", "a\n-_*\nb", "a\n-_*\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitize_NormalizesCRLF(t *testing.T) {
	if got := Sanitize("a\r\nb"); got != "a\nb" {
		t.Errorf("got %q, want %q", got, "a\nb")
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"# Heading\nbody text\n---\nmore",
		"plain paragraph",
		"",
		"## Two\n\n**bold** stays",
		"#######Seven hashes",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

// --- Tokenize tests ---

func TestTokenize_AlternatesBold(t *testing.T) {
	runs := Tokenize("**Important:** read this.")
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d: %+v", len(runs), runs)
	}
	if !runs[0].Bold || runs[0].Text != "Important:" {
		t.Errorf("first run = %+v, want bold 'Important:'", runs[0])
	}
	if runs[1].Bold || runs[1].Text != " read this." {
		t.Errorf("second run = %+v, want plain ' read this.'", runs[1])
	}
}

func TestTokenize_PlainText(t *testing.T) {
	runs := Tokenize("no markers here")
	if len(runs) != 1 || runs[0].Bold || runs[0].Text != "no markers here" {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}

func TestTokenize_Empty(t *testing.T) {
	if runs := Tokenize(""); runs != nil {
		t.Errorf("expected no runs for empty input, got %+v", runs)
	}
	if runs := Tokenize("   \n\t"); runs != nil {
		t.Errorf("expected no runs for whitespace input, got %+v", runs)
	}
}

func TestTokenize_StripsStrayAsterisks(t *testing.T) {
	runs := Tokenize("odd *marker and **bold** tail")
	var joined strings.Builder
	for _, r := range runs {
		joined.WriteString(r.Text)
	}
	if strings.Contains(joined.String(), "*") {
		t.Errorf("stray asterisk survived: %q", joined.String())
	}
}

func TestTokenize_ReconstructsContent(t *testing.T) {
	in := "Start **middle** end **again** done"
	runs := Tokenize(in)
	var joined strings.Builder
	for _, r := range runs {
		joined.WriteString(r.Text)
	}
	want := "Start middle end again done"
	if joined.String() != want {
		t.Errorf("reconstruction = %q, want %q", joined.String(), want)
	}
}

func TestTokenize_UnbalancedMarkers(t *testing.T) {
	// Unbalanced ** degrades to stripped asterisks, never an error.
	runs := Tokenize("before **unclosed")
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %+v", runs)
	}
	if runs[0].Text != "before " || runs[0].Bold {
		t.Errorf("first run = %+v", runs[0])
	}
	if runs[1].Text != "unclosed" {
		t.Errorf("second run = %+v", runs[1])
	}
}
