package services_test

import (
	"context"
	"testing"

	"github.com/lafise/go-fp-transfer/internal/common"
	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		from    models.Currency
		to      models.Currency
		want    string
		wantErr error
	}{
		{name: "usd to nio multiplies", amount: "50", from: models.CurrencyUSD, to: models.CurrencyNIO, want: "1797.5"},
		{name: "nio to usd divides", amount: "3510", from: models.CurrencyNIO, to: models.CurrencyUSD, want: "100"},
		{name: "same currency is identity", amount: "12.34", from: models.CurrencyNIO, to: models.CurrencyNIO, want: "12.34"},
		{name: "unsupported pair", amount: "1", from: models.CurrencyUSD, to: "EUR", wantErr: common.ErrUnsupportedCurrencyPair},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := services.Convert(decimal.RequireFromString(tt.amount), tt.from, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestConvert_RatesAreAsymmetric(t *testing.T) {
	nio, err := services.Convert(decimal.NewFromInt(100), models.CurrencyUSD, models.CurrencyNIO)
	require.NoError(t, err)

	usd, err := services.Convert(nio, models.CurrencyNIO, models.CurrencyUSD)
	require.NoError(t, err)

	assert.True(t, usd.GreaterThan(decimal.NewFromInt(100)))
	assert.Equal(t, "102.42", usd.StringFixed(2))
}

func TestNewConversionPreview(t *testing.T) {
	assert.Nil(t, services.NewConversionPreview(decimal.NewFromInt(1), models.CurrencyUSD, models.CurrencyUSD))
	assert.Nil(t, services.NewConversionPreview(decimal.NewFromInt(1), models.CurrencyUSD, "EUR"))

	preview := services.NewConversionPreview(decimal.NewFromInt(100), models.CurrencyNIO, models.CurrencyUSD)
	require.NotNil(t, preview)
	assert.Equal(t, "2.85", preview.Received.StringFixed(2))
}

func Test_conversion_Convert(t *testing.T) {
	testHelper := serviceTestHelper(t)

	tests := []struct {
		name     string
		in       models.DoGetConversionRequest
		want     string
		wantFrom models.Currency
		wantErr  error
	}{
		{
			name:     "symbols are normalized",
			in:       models.DoGetConversionRequest{Amount: "10", From: "$", To: "C$"},
			want:     "359.50",
			wantFrom: models.CurrencyUSD,
		},
		{
			name:    "invalid amount",
			in:      models.DoGetConversionRequest{Amount: "-1", From: "USD", To: "NIO"},
			wantErr: common.ErrInvalidAmount,
		},
		{
			name:    "unsupported pair",
			in:      models.DoGetConversionRequest{Amount: "1", From: "USD", To: "EUR"},
			wantErr: common.ErrUnsupportedCurrencyPair,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testHelper.services.Conversion.Convert(context.Background(), tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, got.From)
			assert.Equal(t, tt.want, got.Received.StringFixed(2))
		})
	}
}
