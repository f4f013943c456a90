package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nimbusdesk/nimbusdesk/modules/core/services"
	"github.com/nimbusdesk/nimbusdesk/pkg/application"
	"github.com/nimbusdesk/nimbusdesk/pkg/composables"
	"github.com/nimbusdesk/nimbusdesk/pkg/httpapi"
	"github.com/nimbusdesk/nimbusdesk/pkg/middleware"
)

// WorkspaceController serves the workspace addressed by the request host.
type WorkspaceController struct {
	app              application.Application
	workspaceService *services.WorkspaceService
	domainService    *services.DomainService
	basePath         string
}

func NewWorkspaceController(app application.Application) application.Controller {
	return &WorkspaceController{
		app:              app,
		workspaceService: app.Service(services.WorkspaceService{}).(*services.WorkspaceService),
		domainService:    app.Service(services.DomainService{}).(*services.DomainService),
		basePath:         "/api/workspace",
	}
}

func (c *WorkspaceController) Key() string {
	return "/api/workspace"
}

func (c *WorkspaceController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireWorkspaceFromHost(c.app))
	router.HandleFunc("", c.Get).Methods(http.MethodGet)
}

type workspaceResponse struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Subdomain             string `json:"subdomain"`
	CustomDomain          string `json:"customDomain,omitempty"`
	IsCustomDomainEnabled bool   `json:"isCustomDomainEnabled"`
	URL                   string `json:"url"`
}

func (c *WorkspaceController) Get(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := composables.UseWorkspaceID(r.Context())
	if !ok {
		_ = httpapi.WriteError(w, http.StatusNotFound, "WORKSPACE_NOT_FOUND", "workspace not found", nil)
		return
	}

	ws, err := c.workspaceService.GetByID(r.Context(), workspaceID)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusNotFound, "WORKSPACE_NOT_FOUND", "workspace not found", nil)
		return
	}

	u, err := c.domainService.WorkspaceURL(ws, "/", nil)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to build workspace url", nil)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, workspaceResponse{
		ID:                    ws.ID().String(),
		Name:                  ws.Name(),
		Subdomain:             ws.Subdomain(),
		CustomDomain:          ws.CustomDomain(),
		IsCustomDomainEnabled: ws.IsCustomDomainEnabled(),
		URL:                   u.String(),
	})
}
