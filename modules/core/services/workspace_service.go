package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/nimbusdesk/nimbusdesk/modules/core/domain/entities/workspace"
	"github.com/nimbusdesk/nimbusdesk/pkg/composables"
	"github.com/nimbusdesk/nimbusdesk/pkg/eventbus"
)

type WorkspaceService struct {
	repo      workspace.Repository
	publisher eventbus.EventBus
}

func NewWorkspaceService(repo workspace.Repository, publisher eventbus.EventBus) *WorkspaceService {
	return &WorkspaceService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *WorkspaceService) GetByID(ctx context.Context, id uuid.UUID) (*workspace.Workspace, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *WorkspaceService) GetBySubdomain(ctx context.Context, subdomain string) (*workspace.Workspace, error) {
	return s.repo.GetBySubdomain(ctx, subdomain)
}

func (s *WorkspaceService) GetByCustomDomain(ctx context.Context, domain string) (*workspace.Workspace, error) {
	return s.repo.GetByCustomDomain(ctx, domain)
}

func (s *WorkspaceService) GetAll(ctx context.Context) ([]*workspace.Workspace, error) {
	return s.repo.GetAll(ctx)
}

func (s *WorkspaceService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *WorkspaceService) Create(ctx context.Context, data *workspace.Workspace) (*workspace.Workspace, error) {
	var created *workspace.Workspace
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.Create(txCtx, data)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspace.NewCreatedEvent(created))
	return created, nil
}

func (s *WorkspaceService) Update(ctx context.Context, data *workspace.Workspace) (*workspace.Workspace, error) {
	var updated *workspace.Workspace
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.repo.Update(txCtx, data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *WorkspaceService) Delete(ctx context.Context, id uuid.UUID) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}
