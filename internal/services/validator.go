package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lafise/go-fp-transfer/internal/models"

	"github.com/shopspring/decimal"
)

const (
	MsgOriginRequired      = "must select an origin account"
	MsgDestinationRequired = "must select a destination account"
	MsgSameAccount         = "origin and destination must differ"
	MsgInvalidAmount       = "amount must be a valid number greater than 0"

	msgAmountRequired         = "amount is required"
	msgAmountNotNumber        = "amount must be a valid number"
	msgAmountNotPositive      = "amount must be greater than 0"
	msgAccountNumberRequired  = "account number is required"
	msgAccountNumberMalformed = "account number must have between 10 and 16 digits"
)

var reAccountNumber = regexp.MustCompile(`^\d{10,16}$`)

// TransferValidationInput is what the validator needs from a draft.
// Destination is the account number of the chosen or resolved destination, empty when none.
type TransferValidationInput struct {
	Origin      *models.Account
	Destination string
	Amount      string
}

// ValidateTransfer reports every violated rule, in a stable order.
func ValidateTransfer(in TransferValidationInput) models.TransferValidationResult {
	errs := make([]string, 0)

	if in.Origin == nil {
		errs = append(errs, MsgOriginRequired)
	}

	if in.Destination == "" {
		errs = append(errs, MsgDestinationRequired)
	}

	if in.Origin != nil && in.Destination != "" && in.Origin.Key() == in.Destination {
		errs = append(errs, MsgSameAccount)
	}

	amount, ok := ParseAmount(in.Amount)
	if !ok {
		errs = append(errs, MsgInvalidAmount)
	} else if in.Origin != nil && !HasSufficientBalance(amount, in.Origin.Balance.Decimal) {
		errs = append(errs, InsufficientBalanceMessage(in.Origin.NormalizedCurrency(), in.Origin.Balance.Decimal))
	}

	return models.TransferValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// ParseAmount accepts only a plain positive decimal.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}

	return d, true
}

func HasSufficientBalance(amount, balance decimal.Decimal) bool {
	return balance.GreaterThanOrEqual(amount)
}

func InsufficientBalanceMessage(currency models.Currency, balance decimal.Decimal) string {
	return fmt.Sprintf("insufficient balance; available: %s %s", currency.Symbol(), balance.StringFixed(2))
}

func ValidateAmount(amount string) models.FieldValidationResult {
	if strings.TrimSpace(amount) == "" {
		return models.FieldValidationResult{Error: msgAmountRequired}
	}

	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return models.FieldValidationResult{Error: msgAmountNotNumber}
	}

	if !d.IsPositive() {
		return models.FieldValidationResult{Error: msgAmountNotPositive}
	}

	return models.FieldValidationResult{Valid: true}
}

func ValidateAccountNumber(accountNumber string) models.FieldValidationResult {
	if strings.TrimSpace(accountNumber) == "" {
		return models.FieldValidationResult{Error: msgAccountNumberRequired}
	}

	if !reAccountNumber.MatchString(accountNumber) {
		return models.FieldValidationResult{Error: msgAccountNumberMalformed}
	}

	return models.FieldValidationResult{Valid: true}
}

// NormalizeAccountNumber keeps only the digits of a typed account number.
func NormalizeAccountNumber(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
