package controllers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/nimbusdesk/nimbusdesk/modules/core/domain/entities/customdomain"
	"github.com/nimbusdesk/nimbusdesk/modules/core/domain/entities/workspace"
	"github.com/nimbusdesk/nimbusdesk/modules/core/infrastructure/persistence"
	"github.com/nimbusdesk/nimbusdesk/modules/core/presentation/controllers"
	"github.com/nimbusdesk/nimbusdesk/modules/core/services"
	"github.com/nimbusdesk/nimbusdesk/pkg/application"
	"github.com/nimbusdesk/nimbusdesk/pkg/eventbus"
	"github.com/nimbusdesk/nimbusdesk/pkg/exceptions"
)

const testWebhookSecret = "webhook-test-secret"

type stubWorkspaceRepository struct {
	workspace *workspace.Workspace
	reads     int
	updates   int
}

func (s *stubWorkspaceRepository) GetByID(_ context.Context, id uuid.UUID) (*workspace.Workspace, error) {
	s.reads++
	if s.workspace != nil && s.workspace.ID() == id {
		return s.workspace, nil
	}
	return nil, persistence.ErrWorkspaceNotFound
}

func (s *stubWorkspaceRepository) GetBySubdomain(_ context.Context, subdomain string) (*workspace.Workspace, error) {
	s.reads++
	if s.workspace != nil && s.workspace.Subdomain() == subdomain {
		return s.workspace, nil
	}
	return nil, persistence.ErrWorkspaceNotFound
}

func (s *stubWorkspaceRepository) GetByCustomDomain(_ context.Context, domain string) (*workspace.Workspace, error) {
	s.reads++
	if s.workspace != nil && s.workspace.CustomDomain() == domain {
		return s.workspace, nil
	}
	return nil, persistence.ErrWorkspaceNotFound
}

func (s *stubWorkspaceRepository) GetAll(context.Context) ([]*workspace.Workspace, error) {
	s.reads++
	return nil, nil
}

func (s *stubWorkspaceRepository) Count(context.Context) (int64, error) {
	return 0, nil
}

func (s *stubWorkspaceRepository) Create(_ context.Context, data *workspace.Workspace) (*workspace.Workspace, error) {
	return data, nil
}

func (s *stubWorkspaceRepository) Update(_ context.Context, data *workspace.Workspace) (*workspace.Workspace, error) {
	s.updates++
	return data, nil
}

func (s *stubWorkspaceRepository) Delete(context.Context, uuid.UUID) error {
	return nil
}

type stubValidator struct {
	details *customdomain.Details
}

func (s *stubValidator) GetCustomDomainDetails(context.Context, string) (*customdomain.Details, error) {
	return s.details, nil
}

func newWebhookRouter(t *testing.T, repo *stubWorkspaceRepository, validator *stubValidator) *mux.Router {
	t.Helper()
	t.Setenv("CLOUDFLARE_WEBHOOK_SECRET", testWebhookSecret)

	log := logrus.New()
	log.SetOutput(io.Discard)

	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(log),
		Logger:   log,
	})
	app.RegisterServices(services.NewCustomDomainService(
		repo,
		validator,
		app.EventPublisher(),
		exceptions.Nop(),
	))

	router := mux.NewRouter()
	controllers.NewCustomDomainWebhookController(app).Register(router)
	return router
}

func postWebhook(router *mux.Router, secret, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/cloudflare", strings.NewReader(body))
	if secret != "" {
		req.Header.Set(controllers.WebhookAuthHeader, secret)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCustomDomainWebhook_RejectsInvalidSecret(t *testing.T) {
	repo := &stubWorkspaceRepository{}
	router := newWebhookRouter(t, repo, &stubValidator{})

	recorder := postWebhook(router, "wrong", `{"data":{"data":{"hostname":"crm.acme.com"}}}`)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	require.Zero(t, repo.reads)
	require.Zero(t, repo.updates)
}

func TestCustomDomainWebhook_RejectsMissingSecret(t *testing.T) {
	repo := &stubWorkspaceRepository{}
	router := newWebhookRouter(t, repo, &stubValidator{})

	recorder := postWebhook(router, "", `{"data":{"data":{"hostname":"crm.acme.com"}}}`)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	require.Zero(t, repo.reads)
}

func TestCustomDomainWebhook_AcknowledgesMissingHostname(t *testing.T) {
	repo := &stubWorkspaceRepository{}
	router := newWebhookRouter(t, repo, &stubValidator{})

	recorder := postWebhook(router, testWebhookSecret, `{"data":{}}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Zero(t, repo.updates)
}

func TestCustomDomainWebhook_AcknowledgesMalformedBody(t *testing.T) {
	repo := &stubWorkspaceRepository{}
	router := newWebhookRouter(t, repo, &stubValidator{})

	recorder := postWebhook(router, testWebhookSecret, `not json`)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Zero(t, repo.updates)
}

func TestCustomDomainWebhook_ReconcilesClaimedHostname(t *testing.T) {
	ws := workspace.New("Acme", "acme", workspace.WithCustomDomain("crm.acme.com"))
	repo := &stubWorkspaceRepository{workspace: ws}
	validator := &stubValidator{details: &customdomain.Details{
		Hostname: "crm.acme.com",
		Records: []customdomain.Record{
			{Name: "ownership", Value: "ok", Status: customdomain.RecordStatusSuccess},
		},
	}}
	router := newWebhookRouter(t, repo, validator)

	body := `{"data":{"data":{"hostname":"crm.acme.com"}}}`
	recorder := postWebhook(router, testWebhookSecret, body)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, ws.IsCustomDomainEnabled())
	require.Equal(t, 1, repo.updates)

	// Redelivery is acknowledged without a second write.
	recorder = postWebhook(router, testWebhookSecret, body)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, 1, repo.updates)
}
