package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nimbusdesk/nimbusdesk/modules/core/services"
	"github.com/nimbusdesk/nimbusdesk/pkg/application"
	"github.com/nimbusdesk/nimbusdesk/pkg/composables"
	"github.com/nimbusdesk/nimbusdesk/pkg/configuration"
	"github.com/nimbusdesk/nimbusdesk/pkg/httpapi"
	"github.com/nimbusdesk/nimbusdesk/pkg/webhooks"
)

// WebhookAuthHeader carries the shared secret on Cloudflare webhook deliveries.
const WebhookAuthHeader = "cf-webhook-auth"

// CustomDomainWebhookController receives Cloudflare custom-hostname
// notifications and reconciles the named workspace. Every authenticated
// delivery is answered with 200 regardless of the reconciliation result, so
// Cloudflare never retries a delivery we already absorbed.
type CustomDomainWebhookController struct {
	app                 application.Application
	customDomainService *services.CustomDomainService
	basePath            string
}

func NewCustomDomainWebhookController(app application.Application) application.Controller {
	return &CustomDomainWebhookController{
		app:                 app,
		customDomainService: app.Service(services.CustomDomainService{}).(*services.CustomDomainService),
		basePath:            "/webhooks/cloudflare",
	}
}

func (c *CustomDomainWebhookController) Key() string {
	return "/webhooks/cloudflare"
}

func (c *CustomDomainWebhookController) Register(r *mux.Router) {
	conf := configuration.Use()
	verifier := webhooks.NewSharedSecretVerifier(WebhookAuthHeader, conf.Cloudflare.WebhookSecret)
	// No replay protector: Cloudflare redelivers the same notification and
	// expects 200 each time. Reconciliation is idempotent, so repeats are safe.
	router := webhooks.Bind(r, c.basePath, verifier)
	router.HandleFunc("", c.Handle).Methods(http.MethodPost)
}

// cloudflarePayload is the notification envelope: the hostname sits two
// levels deep under data.data.
type cloudflarePayload struct {
	Data struct {
		Data struct {
			Hostname string `json:"hostname"`
		} `json:"data"`
	} `json:"data"`
}

func (c *CustomDomainWebhookController) Handle(w http.ResponseWriter, r *http.Request) {
	var payload cloudflarePayload
	// A malformed or hostname-less body is acknowledged without action.
	_ = json.NewDecoder(r.Body).Decode(&payload)
	hostname := payload.Data.Data.Hostname

	outcome, err := c.customDomainService.Reconcile(r.Context(), hostname)
	if entry, ok := composables.TryUseLogger(r.Context()); ok {
		fields := map[string]interface{}{
			"hostname": hostname,
			"outcome":  outcome.String(),
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		entry.WithFields(fields).Info("processed cloudflare custom hostname webhook")
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
