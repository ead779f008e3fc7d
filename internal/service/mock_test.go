package service

import (
	"context"
	"fmt"

	"github.com/foliohq/folio/internal/domain"
	"github.com/foliohq/folio/internal/domain/experience"
	"github.com/foliohq/folio/internal/domain/message"
	"github.com/foliohq/folio/internal/domain/project"
	"github.com/foliohq/folio/internal/domain/user"
)

// mockStore implements database.Store with overridable function fields.
// Unset fields fall back to simple in-memory behavior or ErrNotFound.
type mockStore struct {
	listProjectsFn  func(ctx context.Context) ([]project.Project, error)
	createMessageFn func(ctx context.Context, req *message.SubmitRequest) (*message.Message, error)

	projects   map[string]*project.Project
	experience map[string]*experience.Entry
	messages   map[string]*message.Message
	users      map[string]*user.User

	listProjectsCalls int
	createCalls       int
}

func newMockStore() *mockStore {
	return &mockStore{
		projects:   make(map[string]*project.Project),
		experience: make(map[string]*experience.Entry),
		messages:   make(map[string]*message.Message),
		users:      make(map[string]*user.User),
	}
}

func (m *mockStore) ListProjects(ctx context.Context) ([]project.Project, error) {
	m.listProjectsCalls++
	if m.listProjectsFn != nil {
		return m.listProjectsFn(ctx)
	}
	out := make([]project.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockStore) ListFeaturedProjects(ctx context.Context) ([]project.Project, error) {
	var out []project.Project
	for _, p := range m.projects {
		if p.Featured {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockStore) GetProjectBySlug(_ context.Context, slug string) (*project.Project, error) {
	for _, p := range m.projects {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetProject(_ context.Context, id string) (*project.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockStore) CreateProject(_ context.Context, req *project.CreateRequest) (*project.Project, error) {
	m.createCalls++
	id := fmt.Sprintf("proj-%d", len(m.projects)+1)
	p := &project.Project{
		ID:       id,
		Title:    req.Title,
		Slug:     req.Slug,
		Summary:  req.Summary,
		Featured: req.Featured,
	}
	m.projects[id] = p
	cp := *p
	return &cp, nil
}

func (m *mockStore) UpdateProject(_ context.Context, p *project.Project) error {
	if _, ok := m.projects[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	m.projects[p.ID] = &cp
	return nil
}

func (m *mockStore) DeleteProject(_ context.Context, id string) error {
	if _, ok := m.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m *mockStore) ListExperience(context.Context) ([]experience.Entry, error) {
	out := make([]experience.Entry, 0, len(m.experience))
	for _, e := range m.experience {
		out = append(out, *e)
	}
	return out, nil
}

func (m *mockStore) GetExperience(_ context.Context, id string) (*experience.Entry, error) {
	e, ok := m.experience[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *mockStore) CreateExperience(_ context.Context, req *experience.CreateRequest) (*experience.Entry, error) {
	id := fmt.Sprintf("exp-%d", len(m.experience)+1)
	e := &experience.Entry{
		ID:        id,
		Company:   req.Company,
		Role:      req.Role,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	m.experience[id] = e
	cp := *e
	return &cp, nil
}

func (m *mockStore) UpdateExperience(_ context.Context, e *experience.Entry) error {
	if _, ok := m.experience[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	m.experience[e.ID] = &cp
	return nil
}

func (m *mockStore) DeleteExperience(_ context.Context, id string) error {
	if _, ok := m.experience[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.experience, id)
	return nil
}

func (m *mockStore) ListMessages(context.Context) ([]message.Message, error) {
	out := make([]message.Message, 0, len(m.messages))
	for _, msg := range m.messages {
		out = append(out, *msg)
	}
	return out, nil
}

func (m *mockStore) GetMessage(_ context.Context, id string) (*message.Message, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *msg
	return &cp, nil
}

func (m *mockStore) CreateMessage(ctx context.Context, req *message.SubmitRequest) (*message.Message, error) {
	if m.createMessageFn != nil {
		return m.createMessageFn(ctx, req)
	}
	id := fmt.Sprintf("msg-%d", len(m.messages)+1)
	msg := &message.Message{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	}
	m.messages[id] = msg
	cp := *msg
	return &cp, nil
}

func (m *mockStore) MarkMessageRead(_ context.Context, id string, read bool) error {
	msg, ok := m.messages[id]
	if !ok {
		return domain.ErrNotFound
	}
	msg.Read = read
	return nil
}

func (m *mockStore) DeleteMessage(_ context.Context, id string) error {
	if _, ok := m.messages[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.messages, id)
	return nil
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListUsers(context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockStore) CreateUser(_ context.Context, u *user.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.ErrConflict
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockStore) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *mockStore) Ping(context.Context) error { return nil }
