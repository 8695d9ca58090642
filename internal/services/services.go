package services

import (
	"github.com/lafise/go-fp-transfer/internal/common/cache"
	"github.com/lafise/go-fp-transfer/internal/common/directory"
	"github.com/lafise/go-fp-transfer/internal/common/metrics"
	"github.com/lafise/go-fp-transfer/internal/config"
	"github.com/lafise/go-fp-transfer/internal/models"
)

type service struct {
	srv *Services
}

type Services struct {
	conf config.Config

	directory   directory.Client
	lookupCache cache.Client[models.Account]
	metrics     metrics.Metrics

	common service

	Session    *Session
	Verifier   *Verifier
	Wizard     *Wizard
	History    *history
	Conversion *conversion
}

func New(
	conf config.Config,
	directoryClient directory.Client,
	lookupCache cache.Client[models.Account],
	metrics metrics.Metrics,
) *Services {
	srv := &Services{
		conf:        conf,
		directory:   directoryClient,
		lookupCache: lookupCache,
		metrics:     metrics,
	}
	srv.common.srv = srv

	srv.Session = NewSession(directoryClient, conf.Directory.UserID)
	srv.Verifier = NewVerifier(directoryClient, lookupCache, conf.Transfer, metrics)
	srv.Wizard = NewWizard(srv.Session, srv.Verifier, directoryClient, conf.Transfer, metrics)
	srv.History = (*history)(&srv.common)
	srv.Conversion = (*conversion)(&srv.common)

	return srv
}

// Close stops background timers.
func (s *Services) Close() {
	s.Wizard.Close()
}
