package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/lafise/go-fp-transfer/internal/common/cache"
	"github.com/lafise/go-fp-transfer/internal/common/directory"
	"github.com/lafise/go-fp-transfer/internal/common/graceful"
	"github.com/lafise/go-fp-transfer/internal/common/idgenerator"
	"github.com/lafise/go-fp-transfer/internal/common/logger"
	cMetrics "github.com/lafise/go-fp-transfer/internal/common/metrics"
	"github.com/lafise/go-fp-transfer/internal/common/retry"
	"github.com/lafise/go-fp-transfer/internal/config"
	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/services"

	"github.com/newrelic/go-agent/v3/integrations/nrzap"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slices"
)

type Setup struct {
	Config      config.Config
	NewRelic    *newrelic.Application
	Registry    *prometheus.Registry
	Cache       *redis.Client
	Directory   directory.Client
	IDGenerator idgenerator.Generator
	Service     *services.Services
	Metrics     cMetrics.Metrics
}

// Init wires the process. The returned stoppers must be run even when err is not nil.
func Init(command string, opts ...config.LoaderOption) (setup *Setup, stopper []graceful.ProcessStopper, err error) {
	ctx := context.Background()

	cfg, err := config.Load(opts...)
	if err != nil {
		return
	}

	setup = &Setup{
		Config: cfg,
	}

	env := config.StringToEnvironment(cfg.App.Env)
	logLevel := cfg.App.LogLevel
	excludedDebugLevelOnEnvs := []config.Environment{
		config.DEV_ENV,
		config.UAT_ENV,
		config.PROD_ENV,
	}
	if logLevel == "debug" && slices.Contains(excludedDebugLevelOnEnvs, env) {
		logLevel = "info"
	}

	err = logger.Init(cfg.App.Name+"-"+command,
		logger.WithEnv(env.String()),
		logger.WithLevel(logLevel),
		logger.WithCaller(true),
	)
	if err != nil {
		return
	}
	stopper = append(stopper, func(ctx context.Context) error {
		_ = logger.Sync()
		return nil
	})

	newRelic := setupNR(ctx, cfg)
	if newRelic != nil {
		stopper = append(stopper, func(ctx context.Context) error {
			newRelic.Shutdown(5 * time.Second)
			return nil
		})
	}

	// metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	mtc := cMetrics.New(registry)

	lookupCache, rdb, cacheStopper, err := setupLookupCache(ctx, cfg, mtc, command)
	if err != nil {
		err = fmt.Errorf("failed to setup lookup cache: %w", err)
		return
	}
	stopper = append(stopper, cacheStopper)

	directoryClient := directory.New(cfg.Directory, mtc)

	srv := services.New(cfg, directoryClient, lookupCache, mtc)
	stopper = append(stopper, func(ctx context.Context) error {
		srv.Close()
		return nil
	})

	waitForDirectory(ctx, cfg, srv.Session)

	return &Setup{
		Config:      cfg,
		NewRelic:    newRelic,
		Registry:    registry,
		Cache:       rdb,
		Directory:   directoryClient,
		IDGenerator: idgenerator.New(),
		Service:     srv,
		Metrics:     mtc,
	}, stopper, nil
}

// setupLookupCache uses redis when a host is configured and an in-memory cache otherwise.
func setupLookupCache(ctx context.Context, cfg config.Config, mtc cMetrics.Metrics, command string) (
	cache.Client[models.Account], *redis.Client, graceful.ProcessStopper, error,
) {
	if cfg.Redis.Host == "" {
		inMemory := cache.NewInMemoryClient[models.Account]()
		return inMemory, nil, func(ctx context.Context) error {
			inMemory.Close()
			return nil
		}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Db,
	})
	closer := func(ctx context.Context) error { return rdb.Close() }

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, nil, closer, err
	}

	if err := mtc.RegisterRedis(rdb, cfg.App.Name, command); err != nil {
		return nil, nil, closer, fmt.Errorf("failed register redis prometheus: %w", err)
	}

	return cache.NewRedisClient[models.Account](rdb, cfg.App.Name+":lookup"), rdb, closer, nil
}

// waitForDirectory loads the session with backoff. Giving up is not fatal: the session
// keeps the load error for display and a refresh can be requested later.
func waitForDirectory(ctx context.Context, cfg config.Config, session services.SessionService) {
	retryer := retry.NewExponentialBackOff(cfg.ExponentialBackoff)

	_ = retryer.Retry(ctx,
		func() error { return session.Load(ctx) },
		func() error {
			logger.Warn(ctx, "[SETUP]", logger.String("message", "directory not reachable, starting with an empty session"))
			return nil
		},
	)
}

func setupNR(ctx context.Context, cfg config.Config) *newrelic.Application {
	if cfg.NewRelicLicenseKey == "" {
		return nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.App.Name),
		newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
		func(config *newrelic.Config) {
			config.Logger = nrzap.Transform(logger.L())
		},
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		logger.Errorf(ctx, "setupNR.NewApplication - %v", err)
		return nil
	}
	if err = app.WaitForConnection(15 * time.Second); nil != err {
		logger.Errorf(ctx, "setupNR.WaitForConnection - %v", err)
	}
	return app
}
