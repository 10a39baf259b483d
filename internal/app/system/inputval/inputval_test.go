package inputval

import "testing"

type createArticleInput struct {
	Title    string `json:"title" validate:"required,max=200" label:"Title"`
	Category string `json:"category" validate:"required,category" label:"Category"`
	Status   string `json:"status" validate:"required,articlestatus" label:"Status"`
}

func TestValidate_Valid(t *testing.T) {
	result := Validate(createArticleInput{
		Title:    "Judul Artikel",
		Category: "Opini",
		Status:   "Draft",
	})
	if result.HasErrors() {
		t.Errorf("Validate() unexpected errors: %s", result.All())
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	result := Validate(createArticleInput{Category: "Opini", Status: "Draft"})
	if !result.HasErrors() {
		t.Fatal("Validate() expected errors for missing title")
	}
	if result.First() != "Title is required." {
		t.Errorf("First() = %q, want %q", result.First(), "Title is required.")
	}
	fields := result.Fields()
	if fields["title"] == "" {
		t.Errorf("Fields() missing title entry: %v", fields)
	}
}

func TestValidate_CustomRules(t *testing.T) {
	result := Validate(createArticleInput{
		Title:    "ok",
		Category: "NotACategory",
		Status:   "Draft",
	})
	if !result.HasErrors() {
		t.Fatal("Validate() expected category error")
	}

	result = Validate(createArticleInput{
		Title:    "ok",
		Category: "Berita",
		Status:   "draft",
	})
	if !result.HasErrors() {
		t.Fatal("Validate() expected status error for wrong casing")
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last@sub.example.org", true},
		{"", false},
		{"not-an-email", false},
		{"user@localhost", false},
		{"user @example.com", false},
		{"Name <user@example.com>", false},
	}
	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestIsValidHTTPURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/hook", true},
		{"http://localhost:8080", true},
		{"ftp://example.com", false},
		{"", false},
		{"not a url", false},
	}
	for _, tt := range tests {
		if got := IsValidHTTPURL(tt.url); got != tt.want {
			t.Errorf("IsValidHTTPURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestIsValidPhotoRef(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"https://example.com/photo.jpg", true},
		{"data:image/png;base64,iVBORw0KGgo=", true},
		{"data:image/jpeg;base64,/9j/4AAQ", true},
		{"data:text/html,<script></script>", false},
		{"ftp://example.com/photo.jpg", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidPhotoRef(tt.ref); got != tt.want {
			t.Errorf("IsValidPhotoRef(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}
