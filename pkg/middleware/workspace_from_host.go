package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nimbusdesk/nimbusdesk/modules/core/services"
	"github.com/nimbusdesk/nimbusdesk/pkg/application"
	"github.com/nimbusdesk/nimbusdesk/pkg/composables"
)

// RequireWorkspaceFromHost resolves the request origin (subdomain or custom
// domain) to a workspace and stores its ID in the request context. Requests
// whose host maps to no workspace get a 404.
func RequireWorkspaceFromHost(app application.Application) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Host == "" {
				http.NotFound(w, r)
				return
			}

			scheme := "http"
			if r.TLS != nil {
				scheme = "https"
			}
			origin := scheme + "://" + r.Host

			domainService := app.Service(services.DomainService{}).(*services.DomainService)
			ws, err := domainService.ResolveWorkspace(r.Context(), origin)
			if err != nil {
				logger := composables.UseLogger(r.Context())
				logger.WithField("host", r.Host).WithField("path", r.URL.Path).WithError(err).Warn("workspace not found for host")
				http.NotFound(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(composables.WithWorkspaceID(r.Context(), ws.ID())))
		})
	}
}
