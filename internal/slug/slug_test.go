package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Hello World", "hello-world"},
		{"accents folded", "Python é Legal!", "python-e-legal"},
		{"punctuation collapsed", "Go -- the best?? language!!", "go-the-best-language"},
		{"leading and trailing junk", "  ...Hello...  ", "hello"},
		{"digits kept", "Top 10 APIs of 2024", "top-10-apis-of-2024"},
		{"already a slug", "already-a-slug", "already-a-slug"},
		{"cedilla", "Ação e Reação", "acao-e-reacao"},
		{"empty", "", ""},
		{"only symbols", "!?!?", ""},
		{"mixed case", "CamelCase Title", "camelcase-title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.in); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
