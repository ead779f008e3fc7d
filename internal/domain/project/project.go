// Package project provides the domain model for portfolio projects.
package project

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/foliohq/folio/internal/domain"
)

// Project is a portfolio entry shown on the public site and managed
// through the admin area.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Tech        []string  `json:"tech"`
	ImageURL    string    `json:"image_url"`
	LiveURL     string    `json:"live_url"`
	RepoURL     string    `json:"repo_url"`
	Featured    bool      `json:"featured"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRequest is the input for creating a project.
type CreateRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	ImageURL    string   `json:"image_url"`
	LiveURL     string   `json:"live_url"`
	RepoURL     string   `json:"repo_url"`
	Featured    bool     `json:"featured"`
	SortOrder   int      `json:"sort_order"`
}

// UpdateRequest is the input for partially updating a project.
// Nil fields are left unchanged.
type UpdateRequest struct {
	Title       *string   `json:"title,omitempty"`
	Slug        *string   `json:"slug,omitempty"`
	Summary     *string   `json:"summary,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tech        *[]string `json:"tech,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	LiveURL     *string   `json:"live_url,omitempty"`
	RepoURL     *string   `json:"repo_url,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
	SortOrder   *int      `json:"sort_order,omitempty"`
}

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Slugify derives a URL slug from a title: lowercase, non-alphanumerics
// collapsed to single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Validate checks required fields and formats on a CreateRequest.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len(r.Title) > 200 {
		return fmt.Errorf("%w: title too long (max 200 chars)", domain.ErrValidation)
	}
	if r.Slug != "" && !slugRe.MatchString(r.Slug) {
		return fmt.Errorf("%w: slug must be lowercase alphanumerics and hyphens", domain.ErrValidation)
	}
	if strings.TrimSpace(r.Summary) == "" {
		return fmt.Errorf("%w: summary is required", domain.ErrValidation)
	}
	for _, u := range []string{r.ImageURL, r.LiveURL, r.RepoURL} {
		if err := validateURL(u); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks formats on an UpdateRequest.
func (r *UpdateRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
	}
	if r.Slug != nil && !slugRe.MatchString(*r.Slug) {
		return fmt.Errorf("%w: slug must be lowercase alphanumerics and hyphens", domain.ErrValidation)
	}
	if r.Summary != nil && strings.TrimSpace(*r.Summary) == "" {
		return fmt.Errorf("%w: summary must not be empty", domain.ErrValidation)
	}
	for _, u := range []*string{r.ImageURL, r.LiveURL, r.RepoURL} {
		if u == nil {
			continue
		}
		if err := validateURL(*u); err != nil {
			return err
		}
	}
	return nil
}

// validateURL accepts empty strings and absolute http(s) URLs or
// site-relative paths (uploaded assets are served as /uploads/...).
func validateURL(s string) error {
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "/") {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q is not a valid URL", domain.ErrValidation, s)
	}
	return nil
}
