package service

import (
	"context"

	"github.com/foliohq/folio/internal/domain/experience"
	"github.com/foliohq/folio/internal/port/cache"
	"github.com/foliohq/folio/internal/port/database"
)

// ExperienceService handles work experience business logic.
type ExperienceService struct {
	store  database.Store
	loader *cache.Loader
}

// NewExperienceService creates a new ExperienceService.
func NewExperienceService(store database.Store, loader *cache.Loader) *ExperienceService {
	return &ExperienceService{store: store, loader: loader}
}

// List returns the experience timeline, cached under experience:all.
func (s *ExperienceService) List(ctx context.Context) ([]experience.Entry, error) {
	return cache.Lookup(ctx, s.loader, cache.ExperienceAll, func(ctx context.Context) ([]experience.Entry, error) {
		return s.store.ListExperience(ctx)
	})
}

// Get returns an entry by ID.
func (s *ExperienceService) Get(ctx context.Context, id string) (*experience.Entry, error) {
	return s.store.GetExperience(ctx, id)
}

// Create creates a new experience entry after validating the request.
func (s *ExperienceService) Create(ctx context.Context, req *experience.CreateRequest) (*experience.Entry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.store.CreateExperience(ctx, req)
	if err != nil {
		return nil, err
	}

	_ = s.loader.Invalidate(ctx, "experience")
	return e, nil
}

// Update applies partial updates to an experience entry.
func (s *ExperienceService) Update(ctx context.Context, id string, req experience.UpdateRequest) (*experience.Entry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.store.GetExperience(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Company != nil {
		e.Company = *req.Company
	}
	if req.Role != nil {
		e.Role = *req.Role
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.StartDate != nil {
		e.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		e.EndDate = req.EndDate
	}
	if req.ClearEndDate {
		e.EndDate = nil
	}
	if req.Summary != nil {
		e.Summary = *req.Summary
	}
	if req.Highlights != nil {
		e.Highlights = *req.Highlights
	}
	if req.Tech != nil {
		e.Tech = *req.Tech
	}
	if req.SortOrder != nil {
		e.SortOrder = *req.SortOrder
	}

	if err := s.store.UpdateExperience(ctx, e); err != nil {
		return nil, err
	}

	_ = s.loader.Invalidate(ctx, "experience")
	return e, nil
}

// Delete removes an experience entry.
func (s *ExperienceService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteExperience(ctx, id); err != nil {
		return err
	}
	_ = s.loader.Invalidate(ctx, "experience")
	return nil
}
