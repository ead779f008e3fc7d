// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/foliohq/folio/internal/domain/experience"
	"github.com/foliohq/folio/internal/domain/message"
	"github.com/foliohq/folio/internal/domain/project"
	"github.com/foliohq/folio/internal/domain/user"
)

// Store is the port interface for database operations.
type Store interface {
	// Projects
	ListProjects(ctx context.Context) ([]project.Project, error)
	ListFeaturedProjects(ctx context.Context) ([]project.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (*project.Project, error)
	GetProject(ctx context.Context, id string) (*project.Project, error)
	CreateProject(ctx context.Context, req *project.CreateRequest) (*project.Project, error)
	UpdateProject(ctx context.Context, p *project.Project) error
	DeleteProject(ctx context.Context, id string) error

	// Experience
	ListExperience(ctx context.Context) ([]experience.Entry, error)
	GetExperience(ctx context.Context, id string) (*experience.Entry, error)
	CreateExperience(ctx context.Context, req *experience.CreateRequest) (*experience.Entry, error)
	UpdateExperience(ctx context.Context, e *experience.Entry) error
	DeleteExperience(ctx context.Context, id string) error

	// Messages
	ListMessages(ctx context.Context) ([]message.Message, error)
	GetMessage(ctx context.Context, id string) (*message.Message, error)
	CreateMessage(ctx context.Context, req *message.SubmitRequest) (*message.Message, error)
	MarkMessageRead(ctx context.Context, id string, read bool) error
	DeleteMessage(ctx context.Context, id string) error

	// Users
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
	CreateUser(ctx context.Context, u *user.User) error
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error

	// Ping verifies database connectivity (health checks).
	Ping(ctx context.Context) error
}
