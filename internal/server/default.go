package server

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/nimbusdesk/nimbusdesk/pkg/application"
	"github.com/nimbusdesk/nimbusdesk/pkg/configuration"
	"github.com/nimbusdesk/nimbusdesk/pkg/constants"
	"github.com/nimbusdesk/nimbusdesk/pkg/httpapi"
	"github.com/nimbusdesk/nimbusdesk/pkg/middleware"
	"github.com/nimbusdesk/nimbusdesk/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration

	front, err := conf.BaseFrontURL()
	if err != nil {
		return nil, err
	}

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, conf.RequestIDHeader),
		// The front domain and every workspace subdomain under it are
		// first-party origins of the API.
		middleware.Cors(
			front.Scheme+"://"+front.Host,
			front.Scheme+"://*."+front.Host,
		),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),
	}

	if conf.RateLimit.Enabled {
		var store limiter.Store
		var err error

		switch conf.RateLimit.Storage {
		case "redis":
			store, err = middleware.NewRedisStore(conf.RateLimit.RedisURL)
			if err != nil {
				options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
				store = middleware.NewMemoryStore()
			}
		default:
			store = middleware.NewMemoryStore()
		}

		middlewares = append(middlewares, middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerPeriod: conf.RateLimit.GlobalRPS,
			Store:             store,
		}))
	}

	app.RegisterMiddleware(middlewares...)

	return server.NewHTTPServer(app, httpapi.NotFoundHandler(), httpapi.MethodNotAllowedHandler()), nil
}
