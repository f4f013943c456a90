package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/nimbusdesk/nimbusdesk/pkg/application"
	"github.com/nimbusdesk/nimbusdesk/pkg/eventbus"
	"github.com/nimbusdesk/nimbusdesk/pkg/server"
)

type pingController struct{}

func (pingController) Key() string {
	return "/ping"
}

func (pingController) Register(r *mux.Router) {
	r.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	}).Methods(http.MethodGet)
	r.HandleFunc("/big", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(strings.Repeat("a", 4096)))
	}).Methods(http.MethodGet)
}

func taggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Chain", "applied")
		next.ServeHTTP(w, r)
	})
}

func newTestServer(t *testing.T) *server.HTTPServer {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(log),
		Logger:   log,
	})
	app.RegisterControllers(pingController{})
	app.RegisterMiddleware(taggingMiddleware)

	notFound := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
	return server.NewHTTPServer(app, notFound, methodNotAllowed)
}

func TestRouter_RegistersControllers(t *testing.T) {
	router := newTestServer(t).Router()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "pong", recorder.Body.String())
	require.Equal(t, "applied", recorder.Header().Get("X-Chain"))
}

func TestRouter_FallbackHandlersGoThroughMiddleware(t *testing.T) {
	router := newTestServer(t).Router()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Equal(t, "applied", recorder.Header().Get("X-Chain"))

	req = httptest.NewRequest(http.MethodDelete, "/ping", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	require.Equal(t, "applied", recorder.Header().Get("X-Chain"))
}

func TestHandler_CompressesLargeResponses(t *testing.T) {
	handler := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/big", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "gzip", recorder.Header().Get("Content-Encoding"))
}

func TestShutdown_BeforeStartIsANoop(t *testing.T) {
	require.NoError(t, newTestServer(t).Shutdown(context.Background()))
}
