package models

import (
	"strconv"
)

const ProductTypeAccount = "Account"

type Account struct {
	Alias         string  `json:"alias"`
	AccountNumber int64   `json:"account_number"`
	Balance       Decimal `json:"balance"`
	Currency      string  `json:"currency"`
}

// Key is the account number in the string form used by the ledger and the directory paths.
func (a Account) Key() string {
	return strconv.FormatInt(a.AccountNumber, 10)
}

func (a Account) NormalizedCurrency() Currency {
	return NormalizeCurrency(a.Currency)
}

type UserProduct struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type UserInfo struct {
	FullName     string        `json:"full_name"`
	ProfilePhoto string        `json:"profile_photo,omitempty"`
	Products     []UserProduct `json:"products"`
}

// SessionView is the read model of the loaded session.
type SessionView struct {
	User     *UserInfo `json:"user"`
	Accounts []Account `json:"accounts"`
	Error    string    `json:"error,omitempty"`
}
