package project

import (
	"errors"
	"testing"

	"github.com/foliohq/folio/internal/domain"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"My Cool Project", "my-cool-project"},
		{"Already-Slugged", "already-slugged"},
		{"  Spaces  Everywhere  ", "spaces-everywhere"},
		{"Symbols & Stuff!!!", "symbols-stuff"},
		{"CamelCase2024", "camelcase2024"},
		{"---", ""},
		{"", ""},
		{"émigré café", "migr-caf"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestCreateRequestValidate(t *testing.T) {
	valid := CreateRequest{Title: "T", Summary: "S"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	tests := []struct {
		name string
		mod  func(r *CreateRequest)
	}{
		{"empty title", func(r *CreateRequest) { r.Title = "  " }},
		{"empty summary", func(r *CreateRequest) { r.Summary = "" }},
		{"bad slug uppercase", func(r *CreateRequest) { r.Slug = "Not-Lower" }},
		{"bad slug trailing hyphen", func(r *CreateRequest) { r.Slug = "ends-" }},
		{"bad live url", func(r *CreateRequest) { r.LiveURL = "ftp://example.com" }},
		{"bad repo url", func(r *CreateRequest) { r.RepoURL = "not a url" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mod(&r)
			if err := r.Validate(); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestValidateURLAcceptsRelativePaths(t *testing.T) {
	r := CreateRequest{Title: "T", Summary: "S", ImageURL: "/uploads/abc.png"}
	if err := r.Validate(); err != nil {
		t.Errorf("relative image path rejected: %v", err)
	}

	r.LiveURL = "https://example.com/demo"
	if err := r.Validate(); err != nil {
		t.Errorf("https URL rejected: %v", err)
	}
}
