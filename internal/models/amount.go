package models

type Amount struct {
	Currency string  `json:"currency"`
	Value    Decimal `json:"value"`
}
