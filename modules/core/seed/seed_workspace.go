package seed

import (
	"context"
	"errors"

	"github.com/nimbusdesk/nimbusdesk/modules/core/domain/entities/workspace"
	"github.com/nimbusdesk/nimbusdesk/modules/core/infrastructure/persistence"
	"github.com/nimbusdesk/nimbusdesk/pkg/application"
	"github.com/nimbusdesk/nimbusdesk/pkg/configuration"
)

// CreateDefaultWorkspace ensures the workspace on the default subdomain
// exists. Single-workspace deployments resolve every request to it.
func CreateDefaultWorkspace(ctx context.Context, app application.Application) error {
	conf := configuration.Use()
	logger := conf.Logger()
	repo := persistence.NewWorkspaceRepository()
	subdomain := conf.Front.DefaultSubdomain

	if _, err := repo.GetBySubdomain(ctx, subdomain); err == nil {
		logger.Infof("Default workspace %q already exists", subdomain)
		return nil
	} else if !errors.Is(err, persistence.ErrWorkspaceNotFound) {
		return err
	}

	if _, err := repo.Create(ctx, workspace.New("Default", subdomain)); err != nil {
		logger.Errorf("Failed to create default workspace: %v", err)
		return err
	}
	logger.Infof("Created default workspace %q", subdomain)
	return nil
}
