// Package message provides the domain model for contact-form messages.
package message

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/foliohq/folio/internal/domain"
)

// Message is a contact-form submission stored for review in the admin area.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitRequest is the public contact-form payload.
type SubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Length caps match the public form; the body cap keeps abuse of the
// unauthenticated endpoint bounded.
const (
	maxNameLen    = 100
	maxSubjectLen = 200
	maxBodyLen    = 5000
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// hasControl reports whether s contains a control character. Name and
// subject end up in notification email headers, where a stray CR or LF
// smuggles in extra headers.
func hasControl(s string) bool {
	return strings.ContainsFunc(s, unicode.IsControl)
}

// Validate checks required fields and caps on a SubmitRequest.
func (r *SubmitRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if len(r.Name) > maxNameLen {
		return fmt.Errorf("%w: name too long (max %d chars)", domain.ErrValidation, maxNameLen)
	}
	if hasControl(r.Name) {
		return fmt.Errorf("%w: name contains control characters", domain.ErrValidation)
	}
	if !emailRe.MatchString(r.Email) {
		return fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if len(r.Subject) > maxSubjectLen {
		return fmt.Errorf("%w: subject too long (max %d chars)", domain.ErrValidation, maxSubjectLen)
	}
	if hasControl(r.Subject) {
		return fmt.Errorf("%w: subject contains control characters", domain.ErrValidation)
	}
	if strings.TrimSpace(r.Body) == "" {
		return fmt.Errorf("%w: message body is required", domain.ErrValidation)
	}
	if len(r.Body) > maxBodyLen {
		return fmt.Errorf("%w: message too long (max %d chars)", domain.ErrValidation, maxBodyLen)
	}
	return nil
}
