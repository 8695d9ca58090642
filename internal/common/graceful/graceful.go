package graceful

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lafise/go-fp-transfer/internal/common/logger"

	"golang.org/x/exp/slices"
)

type ProcessStarter func() error

type ProcessStopper func(ctx context.Context) error

type ProcessStartStopper interface {
	Start() ProcessStarter
	Stop() ProcessStopper
}

// StartProcessAtBackground runs every starter in its own goroutine. A server closed
// by a stopper is not reported as a failure.
func StartProcessAtBackground(ps ...ProcessStarter) {
	for _, p := range ps {
		if p != nil {
			go func(_p ProcessStarter) {
				if err := _p(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error(context.Background(), "[GRACEFUL] process stopped", logger.Err(err))
				}
			}(p)
		}
	}
}

// StopProcessAtBackground blocks until SIGINT, SIGTERM or SIGUSR1 and then stops ps.
func StopProcessAtBackground(duration time.Duration, ps ...ProcessStopper) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1)
	defer signal.Stop(sig)

	s := <-sig
	logger.Info(context.Background(), "[GRACEFUL] signal received", logger.String("signal", s.String()))

	StopProcess(duration, ps...)
}

// StopProcess calls the stoppers in reverse order, each with its own timeout.
func StopProcess(duration time.Duration, ps ...ProcessStopper) {
	stoppers := slices.Clone(ps)
	slices.Reverse(stoppers)

	for _, p := range stoppers {
		if p == nil {
			continue
		}
		func() {
			ctx, stop := context.WithTimeout(context.Background(), duration)
			defer stop()
			if err := p(ctx); err != nil {
				logger.Warn(ctx, "[GRACEFUL] stopper failed", logger.Err(err))
			}
		}()
	}
}
