package models

// DoUpdateTransferRequest carries wizard field edits; nil fields are left untouched.
type DoUpdateTransferRequest struct {
	TransactionType          *string `json:"transaction_type" validate:"omitempty,oneof=Propias Terceros"`
	OriginAccount            *string `json:"origin_account" validate:"omitempty,numeric"`
	DestinationAccount       *string `json:"destination_account" validate:"omitempty,numeric"`
	DestinationAccountNumber *string `json:"destination_account_number" validate:"omitempty,max=32"`
	Amount                   *string `json:"amount" validate:"omitempty,max=32"`
	ManualCurrency           *string `json:"manual_currency" validate:"omitempty,oneof=USD NIO C$ $"`
	Concept                  *string `json:"concept" validate:"omitempty,max=140,noStartEndSpaces"`
	Reference                *string `json:"reference" validate:"omitempty,max=64,noStartEndSpaces"`
	ConfirmationEmail        *string `json:"confirmation_email" validate:"omitempty,email"`
}

type DoGetConversionRequest struct {
	Amount string `query:"amount" json:"amount" validate:"required,decimalGreaterThan=0"`
	From   string `query:"from" json:"from" validate:"required"`
	To     string `query:"to" json:"to" validate:"required"`
}

type DoGetRecentTransactionsRequest struct {
	Limit int `query:"limit" json:"limit" validate:"omitempty,min=1,max=200"`
}

type DoGetAccountTransactionsRequest struct {
	AccountNumber string `param:"accountNumber" json:"account_number" validate:"required,numeric"`
}
