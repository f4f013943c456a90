package core

import (
	"context"
	"embed"

	"github.com/nimbusdesk/nimbusdesk/modules/core/domain/entities/workspace"
	"github.com/nimbusdesk/nimbusdesk/modules/core/infrastructure/cloudflare"
	"github.com/nimbusdesk/nimbusdesk/modules/core/infrastructure/persistence"
	"github.com/nimbusdesk/nimbusdesk/modules/core/presentation/controllers"
	"github.com/nimbusdesk/nimbusdesk/modules/core/services"
	"github.com/nimbusdesk/nimbusdesk/pkg/application"
	"github.com/nimbusdesk/nimbusdesk/pkg/configuration"
	"github.com/nimbusdesk/nimbusdesk/pkg/exceptions"
)

//go:embed infrastructure/persistence/schema/core-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Name() string {
	return "core"
}

func (m *Module) Register(app application.Application) error {
	cfg := configuration.Use()
	app.Migrations().RegisterSchema(&MigrationFiles)

	workspaceRepo := persistence.NewWorkspaceRepository()
	validator := cloudflare.New(cloudflare.Config{
		APIURL: cfg.Cloudflare.APIURL,
		APIKey: cfg.Cloudflare.APIKey,
		ZoneID: cfg.Cloudflare.ZoneID,
	})
	reporter := exceptions.NewLogReporter(app.Logger())

	domainService := services.NewDomainService(cfg, workspaceRepo, app.Cache(), app.Logger())

	app.RegisterServices(
		domainService,
		services.NewWorkspaceService(workspaceRepo, app.EventPublisher()),
		services.NewCustomDomainService(workspaceRepo, validator, app.EventPublisher(), reporter),
	)

	// Cached host lookups go stale the moment a hostname's validation state
	// flips, so reconciliation events evict them.
	app.EventPublisher().Subscribe(func(event *workspace.CustomDomainUpdatedEvent) {
		domainService.InvalidateCustomDomain(context.Background(), event.Hostname)
	})
	app.EventPublisher().Subscribe(func(event *workspace.CustomDomainClearedEvent) {
		domainService.InvalidateCustomDomain(context.Background(), event.Hostname)
	})

	app.RegisterControllers(
		controllers.NewHealthController(app),
		controllers.NewWorkspaceController(app),
		controllers.NewCustomDomainWebhookController(app),
	)

	return nil
}
