package service

import (
	"context"
	"errors"
	"testing"

	"github.com/foliohq/folio/internal/adapter/memcache"
	"github.com/foliohq/folio/internal/domain"
	"github.com/foliohq/folio/internal/domain/project"
	"github.com/foliohq/folio/internal/port/cache"
)

func newTestLoader() *cache.Loader {
	return cache.NewLoader(memcache.New(100), false)
}

func TestProjectListCachesResult(t *testing.T) {
	store := newMockStore()
	store.projects["p1"] = &project.Project{ID: "p1", Title: "Folio", Slug: "folio"}
	svc := NewProjectService(store, newTestLoader())

	ctx := context.Background()
	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("first List: %v", err)
	}
	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("second List: %v", err)
	}

	if store.listProjectsCalls != 1 {
		t.Errorf("store queried %d times, want 1 (second read should hit cache)", store.listProjectsCalls)
	}
}

func TestProjectCreateInvalidatesCache(t *testing.T) {
	store := newMockStore()
	svc := NewProjectService(store, newTestLoader())
	ctx := context.Background()

	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}

	if _, err := svc.Create(ctx, &project.CreateRequest{Title: "New Thing", Summary: "s"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List after create: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d projects after create, want 1", len(got))
	}
	if store.listProjectsCalls != 2 {
		t.Errorf("store queried %d times, want 2 (create must invalidate)", store.listProjectsCalls)
	}
}

func TestProjectCreateDerivesSlug(t *testing.T) {
	store := newMockStore()
	svc := NewProjectService(store, newTestLoader())

	p, err := svc.Create(context.Background(), &project.CreateRequest{Title: "My Cool Project!", Summary: "s"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Slug != "my-cool-project" {
		t.Errorf("slug = %q, want %q", p.Slug, "my-cool-project")
	}
}

func TestProjectCreateRejectsInvalid(t *testing.T) {
	store := newMockStore()
	svc := NewProjectService(store, newTestLoader())

	_, err := svc.Create(context.Background(), &project.CreateRequest{Title: ""})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if store.createCalls != 0 {
		t.Error("store write attempted for invalid request")
	}
}

func TestProjectUpdateAppliesPartialFields(t *testing.T) {
	store := newMockStore()
	store.projects["p1"] = &project.Project{ID: "p1", Title: "Old", Slug: "old", Summary: "keep"}
	svc := NewProjectService(store, newTestLoader())

	title := "New Title"
	featured := true
	p, err := svc.Update(context.Background(), "p1", project.UpdateRequest{Title: &title, Featured: &featured})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if p.Title != "New Title" || !p.Featured {
		t.Errorf("updated fields not applied: %+v", p)
	}
	if p.Summary != "keep" {
		t.Errorf("untouched field changed: summary = %q", p.Summary)
	}
}

func TestProjectGetBySlugMissReturnsNotFound(t *testing.T) {
	svc := NewProjectService(newMockStore(), newTestLoader())

	_, err := svc.GetBySlug(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestProjectStoreErrorNotCached(t *testing.T) {
	store := newMockStore()
	boom := errors.New("db down")
	store.listProjectsFn = func(context.Context) ([]project.Project, error) { return nil, boom }
	svc := NewProjectService(store, newTestLoader())
	ctx := context.Background()

	if _, err := svc.List(ctx); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want db error", err)
	}

	store.listProjectsFn = nil
	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("List after recovery: %v", err)
	}
	if store.listProjectsCalls != 2 {
		t.Errorf("store queried %d times, want 2 (errors must not be cached)", store.listProjectsCalls)
	}
}
