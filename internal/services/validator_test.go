package services_test

import (
	"testing"

	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateTransfer(t *testing.T) {
	origin := &models.Account{AccountNumber: 1000000002, Balance: models.MustDecimal("2000"), Currency: "NIO"}

	tests := []struct {
		name string
		in   services.TransferValidationInput
		want models.TransferValidationResult
	}{
		{
			name: "valid",
			in:   services.TransferValidationInput{Origin: origin, Destination: "1000000001", Amount: "100"},
			want: models.TransferValidationResult{Valid: true, Errors: []string{}},
		},
		{
			name: "amount equal to balance is allowed",
			in:   services.TransferValidationInput{Origin: origin, Destination: "1000000001", Amount: "2000.00"},
			want: models.TransferValidationResult{Valid: true, Errors: []string{}},
		},
		{
			name: "everything missing",
			in:   services.TransferValidationInput{},
			want: models.TransferValidationResult{Errors: []string{
				services.MsgOriginRequired,
				services.MsgDestinationRequired,
				services.MsgInvalidAmount,
			}},
		},
		{
			name: "same account",
			in:   services.TransferValidationInput{Origin: origin, Destination: "1000000002", Amount: "1"},
			want: models.TransferValidationResult{Errors: []string{services.MsgSameAccount}},
		},
		{
			name: "amount not a number",
			in:   services.TransferValidationInput{Origin: origin, Destination: "1000000001", Amount: "abc"},
			want: models.TransferValidationResult{Errors: []string{services.MsgInvalidAmount}},
		},
		{
			name: "zero amount",
			in:   services.TransferValidationInput{Origin: origin, Destination: "1000000001", Amount: "0"},
			want: models.TransferValidationResult{Errors: []string{services.MsgInvalidAmount}},
		},
		{
			name: "insufficient balance is a single message with the available balance",
			in:   services.TransferValidationInput{Origin: origin, Destination: "1000000001", Amount: "2000.01"},
			want: models.TransferValidationResult{Errors: []string{"insufficient balance; available: C$ 2000.00"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.ValidateTransfer(tt.in))
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   models.FieldValidationResult
	}{
		{amount: "", want: models.FieldValidationResult{Error: "amount is required"}},
		{amount: "  ", want: models.FieldValidationResult{Error: "amount is required"}},
		{amount: "1,5", want: models.FieldValidationResult{Error: "amount must be a valid number"}},
		{amount: "-3", want: models.FieldValidationResult{Error: "amount must be greater than 0"}},
		{amount: "0.01", want: models.FieldValidationResult{Valid: true}},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, services.ValidateAmount(tt.amount))
		})
	}
}

func TestValidateAccountNumber(t *testing.T) {
	tests := []struct {
		accountNumber string
		wantValid     bool
	}{
		{accountNumber: "", wantValid: false},
		{accountNumber: "12345", wantValid: false},
		{accountNumber: "1234567890", wantValid: true},
		{accountNumber: "1234567890123456", wantValid: true},
		{accountNumber: "12345678901234567", wantValid: false},
		{accountNumber: "12345-67890", wantValid: false},
	}
	for _, tt := range tests {
		t.Run(tt.accountNumber, func(t *testing.T) {
			assert.Equal(t, tt.wantValid, services.ValidateAccountNumber(tt.accountNumber).Valid)
		})
	}
}

func TestHasSufficientBalance(t *testing.T) {
	assert.True(t, services.HasSufficientBalance(decimal.NewFromInt(10), decimal.NewFromInt(10)))
	assert.False(t, services.HasSufficientBalance(decimal.RequireFromString("10.01"), decimal.NewFromInt(10)))
}

func TestNormalizeAccountNumber(t *testing.T) {
	assert.Equal(t, "1000000001", services.NormalizeAccountNumber(" 1000-0000 01 "))
	assert.Equal(t, "", services.NormalizeAccountNumber("abc"))
}
