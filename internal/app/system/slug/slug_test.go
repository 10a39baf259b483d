package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello, World!  Foo", "hello-world-foo"},
		{"  ---Test---  ", "test"},
		{"Judul Artikel", "judul-artikel"},
		{"UPPER lower", "upper-lower"},
		{"semicolons; and: punctuation?", "semicolons-and-punctuation"},
		{"trailing space ", "trailing-space"},
		{"", ""},
		{"!!!", ""},
		{"already-valid-slug", "already-valid-slug"},
	}
	for _, tt := range tests {
		if got := Make(tt.title); got != tt.want {
			t.Errorf("Make(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestMake_Idempotent(t *testing.T) {
	titles := []string{"Hello, World!  Foo", "  ---Test---  ", "Opini: Pendidikan 2024"}
	for _, title := range titles {
		once := Make(title)
		twice := Make(once)
		if once != twice {
			t.Errorf("Make not idempotent: Make(%q) = %q, Make(Make) = %q", title, once, twice)
		}
	}
}
