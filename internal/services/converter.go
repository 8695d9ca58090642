package services

import (
	"context"
	"fmt"

	"github.com/lafise/go-fp-transfer/internal/common"
	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/monitoring"

	"github.com/shopspring/decimal"
)

// Fixed exchange rates. Buy and sell differ, so a round trip does not return the original amount.
var (
	RateUSDToNIO = decimal.RequireFromString("35.95")
	RateNIOToUSD = decimal.RequireFromString("35.10")
)

// Convert is exact decimal arithmetic; callers round for display only.
func Convert(amount decimal.Decimal, from, to models.Currency) (decimal.Decimal, error) {
	switch {
	case from == to:
		return amount, nil
	case from == models.CurrencyUSD && to == models.CurrencyNIO:
		return amount.Mul(RateUSDToNIO), nil
	case from == models.CurrencyNIO && to == models.CurrencyUSD:
		return amount.Div(RateNIOToUSD), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %s to %s", common.ErrUnsupportedCurrencyPair, from, to)
	}
}

// NewConversionPreview returns nil when both sides share a currency or the pair is unsupported.
func NewConversionPreview(amount decimal.Decimal, from, to models.Currency) *models.ConversionPreview {
	if from == to {
		return nil
	}

	received, err := Convert(amount, from, to)
	if err != nil {
		return nil
	}

	return &models.ConversionPreview{
		From:     from,
		To:       to,
		Amount:   models.NewDecimalFromExternal(amount),
		Received: models.NewMoney(received),
	}
}

//go:generate mockgen -source=converter.go -destination=mock/mock_converter.go -package=mock
type ConversionService interface {
	Convert(ctx context.Context, in models.DoGetConversionRequest) (out models.ConversionPreview, err error)
}

type conversion service

var _ ConversionService = (*conversion)(nil)

func (cs *conversion) Convert(ctx context.Context, in models.DoGetConversionRequest) (out models.ConversionPreview, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	amount, ok := ParseAmount(in.Amount)
	if !ok {
		err = common.ErrInvalidAmount
		return
	}

	from := models.NormalizeCurrency(in.From)
	to := models.NormalizeCurrency(in.To)

	received, err := Convert(amount, from, to)
	if err != nil {
		return
	}

	out = models.ConversionPreview{
		From:     from,
		To:       to,
		Amount:   models.NewDecimalFromExternal(amount),
		Received: models.NewMoney(received),
	}

	return
}
