package main

import (
	"context"
	"sync"
	"time"

	"github.com/lafise/go-fp-transfer/cmd/setup"
	"github.com/lafise/go-fp-transfer/internal/common/graceful"
	"github.com/lafise/go-fp-transfer/internal/common/logger"
	"github.com/lafise/go-fp-transfer/internal/deliveries/http"
)

func main() {
	var (
		ctx      = context.Background()
		starters []graceful.ProcessStarter
		stoppers []graceful.ProcessStopper
	)

	s, stopperContract, err := setup.Init("api")
	if err != nil {
		timeout := 5 * time.Second
		if s != nil && s.Config.App.GracefulTimeout != 0 {
			timeout = s.Config.App.GracefulTimeout
		}

		graceful.StopProcess(timeout, stopperContract...)

		logger.Fatalf(ctx, "failed to setup app: %v", err)
	}

	httpServer := http.NewHTTPServer(s.Config, s.NewRelic, s.Registry, s.IDGenerator, http.Services{
		Session:    s.Service.Session,
		History:    s.Service.History,
		Conversion: s.Service.Conversion,
		Wizard:     s.Service.Wizard,
	})

	starters = append(starters, httpServer.Start())
	stoppers = append(stoppers, stopperContract...)
	stoppers = append(stoppers, httpServer.Stop())

	wg := new(sync.WaitGroup)
	wg.Add(1)
	go func() {
		graceful.StartProcessAtBackground(starters...)
		graceful.StopProcessAtBackground(s.Config.App.GracefulTimeout, stoppers...)
		wg.Done()
	}()
	wg.Wait()
	logger.Info(ctx, "http server stopped!")
}
