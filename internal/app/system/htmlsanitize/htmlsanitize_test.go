package htmlsanitize

import (
	"strings"
	"testing"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "ringkasan artikel", "ringkasan artikel"},
		{"empty", "", ""},
		{"script removed", `<script>alert("x")</script>hello`, "hello"},
		{"formatting removed", "<b>bold</b> text", "bold text"},
		{"trimmed", "  <p>spaced</p>  ", "spaced"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTags(tt.in); got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	got := Sanitize(`<b>ok</b><script>alert("x")</script>`)
	if !strings.Contains(got, "<b>ok</b>") {
		t.Errorf("Sanitize() dropped safe formatting: %q", got)
	}
	if strings.Contains(got, "script") {
		t.Errorf("Sanitize() kept script: %q", got)
	}
}
