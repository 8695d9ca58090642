package models

import (
	"encoding/json"
	"time"

	"github.com/lafise/go-fp-transfer/internal/common/dateutil"
)

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "Credit"
	TransactionTypeDebit  TransactionType = "Debit"
)

type SummarizedTransaction struct {
	TransactionNumber string          `json:"transaction_number"`
	Description       string          `json:"description"`
	BankDescription   string          `json:"bank_description"`
	TransactionType   TransactionType `json:"transaction_type"`
	Origin            string          `json:"origin"`
	Destination       string          `json:"destination"`
	Amount            Amount          `json:"amount"`
	TransactionDate   *time.Time      `json:"transaction_date,omitempty"`
}

// UnmarshalJSON accepts the date layouts the directory emits. An unreadable date is
// treated as missing so one record never fails the whole page.
func (t *SummarizedTransaction) UnmarshalJSON(data []byte) error {
	type alias SummarizedTransaction
	aux := struct {
		*alias
		TransactionDate *string `json:"transaction_date"`
	}{alias: (*alias)(t)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	t.TransactionDate = nil
	if aux.TransactionDate != nil {
		if parsed, err := dateutil.ParseTime(*aux.TransactionDate); err == nil {
			t.TransactionDate = &parsed
		}
	}

	return nil
}

type TransactionPage struct {
	Page       int                     `json:"page"`
	Size       int                     `json:"size"`
	Next       *int                    `json:"next,omitempty"`
	TotalCount int                     `json:"total_count"`
	Items      []SummarizedTransaction `json:"items"`
}

type TransactionRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Amount      Amount `json:"amount"`
}

type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	TraceID  string `json:"traceId,omitempty"`
}
