package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple two words", input: "Hello World", want: "hello-world"},
		{name: "title with year", input: "Hello World 2026", want: "hello-world-2026"},
		{name: "punctuation", input: "Hello, World! 2026", want: "hello-world-2026"},
		{name: "surrounding whitespace", input: "  Padded Title  ", want: "padded-title"},
		{name: "tabs and newlines", input: "a\tb\nc", want: "a-b-c"},
		{name: "repeated hyphens", input: "a -- b", want: "a-b"},
		{name: "leading and trailing hyphens", input: "-edge-", want: "edge"},
		{name: "non-latin is dropped", input: "日本語 title", want: "title"},
		{name: "empty", input: "", want: ""},
		{name: "only symbols", input: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"nextjs", "nextjs"},
		{"Tag A", "tag-a"},
		{"  Next   JS ", "next-js"},
		{"C++", "c++"},
		{"日本語 タグ", "日本語-タグ"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// TestNormalizeCollapsesDuplicates checks that names differing only in
// case and spacing share one identity.
func TestNormalizeCollapsesDuplicates(t *testing.T) {
	a, b := Normalize("Tag A"), Normalize("tag   a")
	if a != b {
		t.Errorf("expected equal slugs, got %q and %q", a, b)
	}
}
