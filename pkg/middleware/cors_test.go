package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/nimbusdesk/nimbusdesk/pkg/middleware"
)

func corsRouter(origins ...string) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Cors(origins...))
	router.HandleFunc("/api/workspace", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet, http.MethodOptions)
	return router
}

func TestCors_AllowsConfiguredOrigin(t *testing.T) {
	router := corsRouter("https://nimbusdesk.io")

	req := httptest.NewRequest(http.MethodGet, "/api/workspace", nil)
	req.Header.Set("Origin", "https://nimbusdesk.io")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "https://nimbusdesk.io", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestCors_WildcardCoversWorkspaceSubdomains(t *testing.T) {
	router := corsRouter("https://nimbusdesk.io", "https://*.nimbusdesk.io")

	req := httptest.NewRequest(http.MethodOptions, "/api/workspace", nil)
	req.Header.Set("Origin", "https://acme.nimbusdesk.io")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, "https://acme.nimbusdesk.io", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestCors_RejectsUnknownOrigin(t *testing.T) {
	router := corsRouter("https://nimbusdesk.io")

	req := httptest.NewRequest(http.MethodGet, "/api/workspace", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}
