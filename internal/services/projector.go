package services

import (
	"context"

	"github.com/lafise/go-fp-transfer/internal/common/logger"
	"github.com/lafise/go-fp-transfer/internal/common/metrics"

	"github.com/shopspring/decimal"
)

const (
	legDebit  = "debit"
	legCredit = "credit"
)

// Projector applies confirmed transfers to the cached balances without asking the directory.
// Projected balances drift from the server until the next account refresh.
type Projector struct {
	session *Session
	metrics metrics.Metrics
}

func NewProjector(session *Session, m metrics.Metrics) *Projector {
	return &Projector{session: session, metrics: m}
}

// Apply subtracts debit from origin and, when credit is set, adds it to destination.
func (p *Projector) Apply(ctx context.Context, origin int64, debit decimal.Decimal, destination int64, credit *decimal.Decimal) {
	p.apply(ctx, legDebit, origin, debit.Neg())

	if credit != nil {
		p.apply(ctx, legCredit, destination, *credit)
	}
}

func (p *Projector) apply(ctx context.Context, leg string, accountNumber int64, delta decimal.Decimal) {
	if !p.session.adjustBalance(accountNumber, delta) {
		logger.Warn(ctx, logSession,
			logger.String("message", "projected account not in session"),
			logger.String("leg", leg),
			logger.Int64("accountNumber", accountNumber))
		return
	}

	if p.metrics != nil {
		p.metrics.GetTransferPrometheus().RecordProjection(leg)
	}
}
