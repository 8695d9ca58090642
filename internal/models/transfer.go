package models

import (
	"time"
)

type TransferType string

const (
	// TransferTypeOwn moves funds between two accounts of the current user.
	TransferTypeOwn TransferType = "Propias"
	// TransferTypeThirdParty moves funds to a typed account number resolved by lookup.
	TransferTypeThirdParty TransferType = "Terceros"
)

func (t TransferType) Valid() bool {
	return t == TransferTypeOwn || t == TransferTypeThirdParty
}

type WizardStep int

const (
	StepSelectOrigin WizardStep = iota + 1
	StepSelectDestination
	StepEnterAmount
	StepEnterMetadata
)

func (s WizardStep) Name() string {
	switch s {
	case StepSelectOrigin:
		return "origin account"
	case StepSelectDestination:
		return "destination account"
	case StepEnterAmount:
		return "amount"
	case StepEnterMetadata:
		return "additional data"
	default:
		return "unknown"
	}
}

// TransferDraft is the wizard-scoped form state. It never outlives a reset.
type TransferDraft struct {
	TransactionType          TransferType `json:"transaction_type"`
	OriginAccount            *Account     `json:"origin_account,omitempty"`
	DestinationAccount       *Account     `json:"destination_account,omitempty"`
	DestinationAccountNumber string       `json:"destination_account_number,omitempty"`
	Amount                   string       `json:"amount"`
	Concept                  string       `json:"concept"`
	Reference                string       `json:"reference"`
	ConfirmationEmail        string       `json:"confirmation_email"`
}

type TransferValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

type FieldValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

type ConversionPreview struct {
	From     Currency `json:"from"`
	To       Currency `json:"to"`
	Amount   Decimal  `json:"amount"`
	Received Decimal  `json:"received"`
}

// TransferReceipt summarizes a confirmed transfer for the success state.
type TransferReceipt struct {
	TransactionNumber string       `json:"transaction_number"`
	TransactionType   TransferType `json:"transaction_type"`
	Origin            Account      `json:"origin"`
	Destination       string       `json:"destination"`
	Debit             Amount       `json:"debit"`
	Credit            *Amount      `json:"credit,omitempty"`
	Concept           string       `json:"concept,omitempty"`
	Reference         string       `json:"reference,omitempty"`
	ConfirmationEmail string       `json:"confirmation_email,omitempty"`
	SubmittedAt       time.Time    `json:"submitted_at"`
}

type VerificationStatus string

const (
	VerificationIdle       VerificationStatus = "idle"
	VerificationPending    VerificationStatus = "pending"
	VerificationResolved   VerificationStatus = "resolved"
	VerificationFailed     VerificationStatus = "failed"
	VerificationIncomplete VerificationStatus = "incomplete"
)

// WizardView is a point-in-time copy of the wizard for rendering.
type WizardView struct {
	Step                WizardStep         `json:"step"`
	StepName            string             `json:"step_name"`
	Draft               TransferDraft      `json:"draft"`
	Verification        VerificationStatus `json:"verification"`
	VerificationError   string             `json:"verification_error,omitempty"`
	ManualCurrency      Currency           `json:"manual_currency,omitempty"`
	ManualCurrencyFixed bool               `json:"manual_currency_fixed"`
	BalanceWarning      string             `json:"balance_warning,omitempty"`
	ValidationErrors    []string           `json:"validation_errors"`
	Preview             *ConversionPreview `json:"preview,omitempty"`
	Busy                bool               `json:"busy"`
	CanSubmit           bool               `json:"can_submit"`
	Success             bool               `json:"success"`
	Receipt             *TransferReceipt   `json:"receipt,omitempty"`
}
