package message

import (
	"errors"
	"strings"
	"testing"

	"github.com/foliohq/folio/internal/domain"
)

func validRequest() SubmitRequest {
	return SubmitRequest{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hello",
		Body:    "I enjoyed your portfolio.",
	}
}

func TestSubmitRequestValid(t *testing.T) {
	r := validRequest()
	if err := r.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	// Subject is optional.
	r.Subject = ""
	if err := r.Validate(); err != nil {
		t.Errorf("empty subject rejected: %v", err)
	}
}

func TestSubmitRequestRejections(t *testing.T) {
	tests := []struct {
		name string
		mod  func(r *SubmitRequest)
	}{
		{"empty name", func(r *SubmitRequest) { r.Name = " " }},
		{"name too long", func(r *SubmitRequest) { r.Name = strings.Repeat("a", 101) }},
		{"missing at sign", func(r *SubmitRequest) { r.Email = "ada.example.com" }},
		{"missing domain", func(r *SubmitRequest) { r.Email = "ada@" }},
		{"email with spaces", func(r *SubmitRequest) { r.Email = "ada @example.com" }},
		{"subject too long", func(r *SubmitRequest) { r.Subject = strings.Repeat("s", 201) }},
		{"empty body", func(r *SubmitRequest) { r.Body = "\n\t " }},
		{"body too long", func(r *SubmitRequest) { r.Body = strings.Repeat("b", 5001) }},
		{"crlf in name", func(r *SubmitRequest) { r.Name = "Eve\r\nBcc: victim@example.com" }},
		{"newline in subject", func(r *SubmitRequest) { r.Subject = "Hi\nX-Injected: 1" }},
		{"tab in name", func(r *SubmitRequest) { r.Name = "A\tB" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mod(&r)
			if err := r.Validate(); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}
