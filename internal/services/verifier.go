package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lafise/go-fp-transfer/internal/common/cache"
	"github.com/lafise/go-fp-transfer/internal/common/directory"
	"github.com/lafise/go-fp-transfer/internal/common/logger"
	"github.com/lafise/go-fp-transfer/internal/common/metrics"
	"github.com/lafise/go-fp-transfer/internal/config"
	"github.com/lafise/go-fp-transfer/internal/models"
)

const (
	logVerifier = "[VERIFIER]"

	MsgAccountEqualsOrigin = "account must differ from origin"
	MsgAccountNotFound     = "account not found"

	minAccountDigits = 10
	maxAccountDigits = 16
)

// VerificationResult is the outcome of one typed destination number.
type VerificationResult struct {
	Generation uint64
	Input      string
	Status     models.VerificationStatus
	Account    *models.Account
	Error      string
}

// Verifier resolves typed third-party account numbers with a debounced lookup.
// Only the most recent input can produce a result; older timers are stopped and
// older lookups are cancelled and discarded.
type Verifier struct {
	client   directory.Client
	cache    cache.Client[models.Account]
	cacheTTL time.Duration
	debounce time.Duration
	metrics  metrics.Metrics

	mu         sync.Mutex
	generation uint64
	timer      *time.Timer
	cancel     context.CancelFunc
}

func NewVerifier(client directory.Client, lookupCache cache.Client[models.Account], conf config.TransferConfig, m metrics.Metrics) *Verifier {
	debounce := conf.VerificationDebounce
	if debounce <= 0 {
		debounce = config.DefaultVerificationDebounce
	}

	return &Verifier{
		client:   client,
		cache:    lookupCache,
		cacheTTL: conf.LookupCacheTTL,
		debounce: debounce,
		metrics:  m,
	}
}

// Verify supersedes any pending verification. Incomplete input and an input equal to
// origin are decided immediately; otherwise the returned status is pending and
// onResult is called once from another goroutine, unless superseded first.
func (v *Verifier) Verify(ctx context.Context, input, origin string, onResult func(VerificationResult)) VerificationResult {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.stopLocked()
	v.generation++
	gen := v.generation

	digits := NormalizeAccountNumber(input)
	res := VerificationResult{Generation: gen, Input: digits}

	if len(digits) < minAccountDigits || len(digits) > maxAccountDigits {
		res.Status = models.VerificationIncomplete
		return res
	}

	if origin != "" && digits == origin {
		res.Status = models.VerificationFailed
		res.Error = MsgAccountEqualsOrigin
		v.recordLookup(metrics.StatusInvalid)
		return res
	}

	// the lookup outlives the caller's request but keeps its values
	lookupCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	v.cancel = cancel
	v.timer = time.AfterFunc(v.debounce, func() {
		result := v.lookup(lookupCtx, gen, digits)
		if !v.current(gen) || lookupCtx.Err() != nil {
			return
		}
		if onResult != nil {
			onResult(result)
		}
	})

	res.Status = models.VerificationPending
	return res
}

// Cancel drops any pending or in-flight verification.
func (v *Verifier) Cancel() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.stopLocked()
	v.generation++
}

func (v *Verifier) lookup(ctx context.Context, gen uint64, accountNumber string) VerificationResult {
	res := VerificationResult{Generation: gen, Input: accountNumber}

	acc, err := v.getAccount(ctx, accountNumber)
	if err != nil {
		if ctx.Err() == nil {
			logger.Info(ctx, logVerifier,
				logger.String("message", "account lookup failed"),
				logger.String("accountNumber", accountNumber),
				logger.Err(err))
			v.recordLookup(metrics.StatusFailed)
		}
		res.Status = models.VerificationFailed
		res.Error = MsgAccountNotFound
		return res
	}

	v.recordLookup(metrics.StatusSuccess)
	res.Status = models.VerificationResolved
	res.Account = &acc
	return res
}

func (v *Verifier) getAccount(ctx context.Context, accountNumber string) (models.Account, error) {
	if v.cache == nil || v.cacheTTL <= 0 {
		return v.client.GetAccount(ctx, accountNumber)
	}

	return v.cache.GetOrSet(ctx, cache.GetOrSetOpts[models.Account]{
		Key: fmt.Sprintf("account-lookup:%s", accountNumber),
		TTL: v.cacheTTL,
		Callback: func() (models.Account, error) {
			return v.client.GetAccount(ctx, accountNumber)
		},
	})
}

func (v *Verifier) current(gen uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.generation == gen
}

func (v *Verifier) stopLocked() {
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *Verifier) recordLookup(status string) {
	if v.metrics != nil {
		v.metrics.GetTransferPrometheus().RecordLookup(status)
	}
}
