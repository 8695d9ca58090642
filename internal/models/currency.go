package models

import "strings"

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyNIO Currency = "NIO"
)

// NormalizeCurrency maps display symbols to the ISO codes the directory expects.
func NormalizeCurrency(c string) Currency {
	switch strings.TrimSpace(c) {
	case "C$":
		return CurrencyNIO
	case "$":
		return CurrencyUSD
	default:
		return Currency(strings.ToUpper(strings.TrimSpace(c)))
	}
}

func (c Currency) Supported() bool {
	return c == CurrencyUSD || c == CurrencyNIO
}

// Symbol is the display symbol: "C$" for cordobas, the code otherwise.
func (c Currency) Symbol() string {
	if c == CurrencyNIO {
		return "C$"
	}
	return string(c)
}

func (c Currency) String() string {
	return string(c)
}
