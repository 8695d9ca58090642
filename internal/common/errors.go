package common

import (
	"errors"
)

var (
	ErrValidation              = errors.New("validation failed")
	ErrDataNotFound            = errors.New("data not found")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrAccountNotExists        = errors.New("account not exists")
	ErrUnsupportedCurrencyPair = errors.New("unsupported currency pair")
	ErrInvalidTransactionType  = errors.New("invalid transaction type")
	ErrDestinationNotOwned     = errors.New("destination account does not belong to the user")
	ErrCurrencyPinned          = errors.New("currency is fixed by the destination account")
	ErrSubmitNotAllowed        = errors.New("transfer cannot be submitted at this step")
	ErrSubmitInProgress        = errors.New("transfer submission already in progress")
	ErrSessionNotLoaded        = errors.New("session user is not loaded")
	ErrWizardResetting         = errors.New("transfer completed, wizard is resetting")
)
