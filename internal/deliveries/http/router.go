package http

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/lafise/go-fp-transfer/internal/common/graceful"
	commonhttp "github.com/lafise/go-fp-transfer/internal/common/http"
	"github.com/lafise/go-fp-transfer/internal/common/http/middleware"
	"github.com/lafise/go-fp-transfer/internal/common/idgenerator"
	"github.com/lafise/go-fp-transfer/internal/common/logger"
	"github.com/lafise/go-fp-transfer/internal/common/metrics"
	"github.com/lafise/go-fp-transfer/internal/config"
	"github.com/lafise/go-fp-transfer/internal/deliveries/http/health"
	"github.com/lafise/go-fp-transfer/internal/services"

	v1conversion "github.com/lafise/go-fp-transfer/internal/deliveries/http/v1/conversion"
	v1session "github.com/lafise/go-fp-transfer/internal/deliveries/http/v1/session"
	v1transaction "github.com/lafise/go-fp-transfer/internal/deliveries/http/v1/transaction"
	v1transfer "github.com/lafise/go-fp-transfer/internal/deliveries/http/v1/transfer"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus"
)

type svc struct {
	e               *echo.Echo
	addr            string
	gracefulTimeout time.Duration
}

var _ graceful.ProcessStartStopper = (*svc)(nil)

func (s *svc) Start() graceful.ProcessStarter {
	return func() error {
		return s.e.Start(s.addr)
	}
}

func (s *svc) Stop() graceful.ProcessStopper {
	return func(ctx context.Context) error {
		err := s.e.Shutdown(ctx)

		if err != nil {
			logger.Error(ctx, "[SHUTDOWN] HTTP server error", logger.Err(err))
		} else {
			logger.Info(ctx, "[SHUTDOWN] HTTP server stopped successfully")
		}

		return err
	}
}

// Handler exposes the router, mostly for tests.
func (s *svc) Handler() nethttp.Handler {
	return s.e
}

// Services groups what the BFF routes are served by.
type Services struct {
	Session    services.SessionService
	History    services.HistoryService
	Conversion services.ConversionService
	Wizard     services.WizardService
}

// @title GO FP TRANSFER BFF
// @version 1.0
// @description Session, history, conversion and transfer wizard endpoints.
// @BasePath /api
// @schemes http
func NewHTTPServer(
	conf config.Config,
	nr *newrelic.Application,
	reg prometheus.Registerer,
	idGenerator idgenerator.Generator,
	srv Services,
) *svc {
	app := echo.New()
	app.HideBanner = true

	svc := &svc{
		e:               app,
		addr:            fmt.Sprintf(":%d", conf.App.HTTPPort),
		gracefulTimeout: conf.App.GracefulTimeout,
	}

	m := middleware.NewMiddleware(conf, idGenerator)
	// options middleware
	app.Pre(echomiddleware.RemoveTrailingSlash())
	app.Use(echomiddleware.Recover())
	app.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: m.RequestIDGenerator(),
	}))
	app.Use(m.Context())
	app.Use(m.Logger())

	if nr != nil {
		app.Use(nrecho.Middleware(nr))

		app.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				txn := newrelic.FromContext(c.Request().Context())
				if txn != nil {
					txn.AddAttribute("x-correlation-id", logger.GetCorrelationID(c.Request().Context()))
				}

				return next(c)
			}
		})
	}

	// Endpoint debug/pprof/
	if config.StringToEnvironment(conf.App.Env) != config.PROD_ENV {
		pprof.Register(app)
	}

	if reg != nil {
		app.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  metrics.FlattenName(conf.App.Name),
			Registerer: reg,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
		if gatherer, ok := reg.(prometheus.Gatherer); ok {
			app.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
		}
	}

	apiGroup := app.Group("/api")
	health.New(apiGroup)

	v1Group := apiGroup.Group("/v1")
	v1session.New(v1Group, srv.Session)
	v1transaction.New(v1Group, srv.History)
	v1conversion.New(v1Group, srv.Conversion)
	v1transfer.New(v1Group, srv.Wizard)

	// prepare an endpoint for 'Not Found'.
	app.Any("*", func(c echo.Context) error {
		errorMessage := fmt.Errorf("route '%s' does not exist in this API", c.Request().URL)
		return commonhttp.RestErrorResponse(c, nethttp.StatusNotFound, errorMessage)
	})

	return svc
}
