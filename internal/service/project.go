// Package service implements business logic on top of ports.
package service

import (
	"context"

	"github.com/foliohq/folio/internal/domain/project"
	"github.com/foliohq/folio/internal/port/cache"
	"github.com/foliohq/folio/internal/port/database"
)

// ProjectService handles portfolio project business logic. List reads are
// served through the cache; every mutation invalidates the projects
// namespace so the next read recomputes.
type ProjectService struct {
	store  database.Store
	loader *cache.Loader
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store database.Store, loader *cache.Loader) *ProjectService {
	return &ProjectService{store: store, loader: loader}
}

// List returns all projects, cached under the projects:all preset.
func (s *ProjectService) List(ctx context.Context) ([]project.Project, error) {
	return cache.Lookup(ctx, s.loader, cache.ProjectsAll, func(ctx context.Context) ([]project.Project, error) {
		return s.store.ListProjects(ctx)
	})
}

// Featured returns featured projects, cached under projects:featured.
func (s *ProjectService) Featured(ctx context.Context) ([]project.Project, error) {
	return cache.Lookup(ctx, s.loader, cache.ProjectsFeatured, func(ctx context.Context) ([]project.Project, error) {
		return s.store.ListFeaturedProjects(ctx)
	})
}

// GetBySlug returns one project by its public slug, cached per slug.
func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (*project.Project, error) {
	return cache.Lookup(ctx, s.loader, cache.ProjectSlug(slug), func(ctx context.Context) (*project.Project, error) {
		return s.store.GetProjectBySlug(ctx, slug)
	})
}

// Get returns a project by ID (admin reads, uncached).
func (s *ProjectService) Get(ctx context.Context, id string) (*project.Project, error) {
	return s.store.GetProject(ctx, id)
}

// Create creates a new project after validating the request. An empty slug
// is derived from the title.
func (s *ProjectService) Create(ctx context.Context, req *project.CreateRequest) (*project.Project, error) {
	if req.Slug == "" {
		req.Slug = project.Slugify(req.Title)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.store.CreateProject(ctx, req)
	if err != nil {
		return nil, err
	}

	_ = s.loader.Invalidate(ctx, "projects")
	return p, nil
}

// Update applies partial updates to a project.
func (s *ProjectService) Update(ctx context.Context, id string, req project.UpdateRequest) (*project.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Slug != nil {
		p.Slug = *req.Slug
	}
	if req.Summary != nil {
		p.Summary = *req.Summary
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Tech != nil {
		p.Tech = *req.Tech
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.LiveURL != nil {
		p.LiveURL = *req.LiveURL
	}
	if req.RepoURL != nil {
		p.RepoURL = *req.RepoURL
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.SortOrder != nil {
		p.SortOrder = *req.SortOrder
	}

	if err := s.store.UpdateProject(ctx, p); err != nil {
		return nil, err
	}

	_ = s.loader.Invalidate(ctx, "projects")
	return p, nil
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return err
	}
	_ = s.loader.Invalidate(ctx, "projects")
	return nil
}
