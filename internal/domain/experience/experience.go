// Package experience provides the domain model for work experience entries.
package experience

import (
	"fmt"
	"strings"
	"time"

	"github.com/foliohq/folio/internal/domain"
)

// Entry is a single position on the experience timeline. A nil EndDate
// marks the current position.
type Entry struct {
	ID         string     `json:"id"`
	Company    string     `json:"company"`
	Role       string     `json:"role"`
	Location   string     `json:"location"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Summary    string     `json:"summary"`
	Highlights []string   `json:"highlights"`
	Tech       []string   `json:"tech"`
	SortOrder  int        `json:"sort_order"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateRequest is the input for creating an experience entry.
type CreateRequest struct {
	Company    string     `json:"company"`
	Role       string     `json:"role"`
	Location   string     `json:"location"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Summary    string     `json:"summary"`
	Highlights []string   `json:"highlights"`
	Tech       []string   `json:"tech"`
	SortOrder  int        `json:"sort_order"`
}

// UpdateRequest is the input for partially updating an entry.
// Nil fields are left unchanged. ClearEndDate resets the entry to
// "current position" regardless of EndDate.
type UpdateRequest struct {
	Company      *string     `json:"company,omitempty"`
	Role         *string     `json:"role,omitempty"`
	Location     *string     `json:"location,omitempty"`
	StartDate    *time.Time  `json:"start_date,omitempty"`
	EndDate      *time.Time  `json:"end_date,omitempty"`
	ClearEndDate bool        `json:"clear_end_date,omitempty"`
	Summary      *string     `json:"summary,omitempty"`
	Highlights   *[]string   `json:"highlights,omitempty"`
	Tech         *[]string   `json:"tech,omitempty"`
	SortOrder    *int        `json:"sort_order,omitempty"`
}

// Validate checks required fields on a CreateRequest.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.Company) == "" {
		return fmt.Errorf("%w: company is required", domain.ErrValidation)
	}
	if strings.TrimSpace(r.Role) == "" {
		return fmt.Errorf("%w: role is required", domain.ErrValidation)
	}
	if r.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("%w: end_date must not precede start_date", domain.ErrValidation)
	}
	return nil
}

// Validate checks field formats on an UpdateRequest.
func (r *UpdateRequest) Validate() error {
	if r.Company != nil && strings.TrimSpace(*r.Company) == "" {
		return fmt.Errorf("%w: company must not be empty", domain.ErrValidation)
	}
	if r.Role != nil && strings.TrimSpace(*r.Role) == "" {
		return fmt.Errorf("%w: role must not be empty", domain.ErrValidation)
	}
	if r.ClearEndDate && r.EndDate != nil {
		return fmt.Errorf("%w: end_date and clear_end_date are mutually exclusive", domain.ErrValidation)
	}
	return nil
}
