package workspace

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Workspace, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*Workspace, error)
	GetByCustomDomain(ctx context.Context, domain string) (*Workspace, error)
	// GetAll returns all workspaces ordered by creation time, newest first.
	GetAll(ctx context.Context) ([]*Workspace, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, w *Workspace) (*Workspace, error)
	Update(ctx context.Context, w *Workspace) (*Workspace, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
