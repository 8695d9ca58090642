package services_test

import (
	"testing"
	"time"

	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/services"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trxAt(number, description string, typ models.TransactionType, date *time.Time) models.SummarizedTransaction {
	return models.SummarizedTransaction{
		TransactionNumber: number,
		Description:       description,
		TransactionType:   typ,
		Amount:            models.Amount{Currency: "USD", Value: models.MustDecimal("10")},
		TransactionDate:   date,
	}
}

func day(d int) *time.Time {
	t := time.Date(2024, 5, d, 10, 0, 0, 0, time.UTC)
	return &t
}

func TestLedger_AddPrependsWithoutDedupe(t *testing.T) {
	ledger := services.NewLedger()

	ledger.Add(usdAccount, trxAt("T-1", "first", models.TransactionTypeDebit, day(1)))
	ledger.Add(usdAccount, trxAt("T-2", "second", models.TransactionTypeDebit, day(2)))
	ledger.Add(usdAccount, trxAt("T-2", "second again", models.TransactionTypeDebit, day(2)))

	entries := ledger.Entries(usdAccount)
	require.Len(t, entries, 3)
	assert.Equal(t, "second again", entries[0].Description)
	assert.Equal(t, "first", entries[2].Description)
	assert.Empty(t, ledger.Entries(nioAccount))

	ledger.Clear()
	assert.Empty(t, ledger.Entries(usdAccount))
}

func TestMergeTransactions(t *testing.T) {
	tests := []struct {
		name   string
		local  []models.SummarizedTransaction
		server []models.SummarizedTransaction
		want   []string
	}{
		{
			name:   "only server",
			server: []models.SummarizedTransaction{trxAt("S-1", "s1", models.TransactionTypeCredit, day(1)), trxAt("S-2", "s2", models.TransactionTypeCredit, day(3))},
			want:   []string{"s2", "s1"},
		},
		{
			name:   "local wins on the same transaction number",
			local:  []models.SummarizedTransaction{trxAt("T-1", "local debit", models.TransactionTypeDebit, day(2))},
			server: []models.SummarizedTransaction{trxAt("T-1", "server copy", models.TransactionTypeCredit, day(2)), trxAt("S-1", "s1", models.TransactionTypeCredit, day(1))},
			want:   []string{"local debit", "s1"},
		},
		{
			name:   "records without date go last",
			local:  []models.SummarizedTransaction{trxAt("T-1", "local", models.TransactionTypeDebit, day(2))},
			server: []models.SummarizedTransaction{trxAt("S-0", "undated", models.TransactionTypeCredit, nil), trxAt("S-1", "s1", models.TransactionTypeCredit, day(5))},
			want:   []string{"s1", "local", "undated"},
		},
		{
			name:  "duplicate local records keep the newest",
			local: []models.SummarizedTransaction{trxAt("T-1", "newer", models.TransactionTypeDebit, day(4)), trxAt("T-1", "older", models.TransactionTypeDebit, day(4))},
			want:  []string{"newer"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.MergeTransactions(tt.local, tt.server)

			descriptions := make([]string, 0, len(got))
			for _, trx := range got {
				descriptions = append(descriptions, trx.Description)
			}
			assert.Equal(t, tt.want, descriptions)
		})
	}
}

func TestMergeTransactions_Idempotent(t *testing.T) {
	local := []models.SummarizedTransaction{
		trxAt("T-2", "local credit", models.TransactionTypeCredit, day(3)),
		trxAt("T-1", "local debit", models.TransactionTypeDebit, day(3)),
	}
	server := []models.SummarizedTransaction{
		trxAt("T-1", "server", models.TransactionTypeCredit, day(3)),
		trxAt("S-1", "s1", models.TransactionTypeCredit, day(1)),
		trxAt("S-2", "s2", models.TransactionTypeCredit, nil),
		trxAt("S-3", "s3", models.TransactionTypeDebit, day(3)),
	}

	once := services.MergeTransactions(local, server)
	twice := services.MergeTransactions(local, once)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("merge is not idempotent (-once +twice):\n%s", diff)
	}
}

func TestLedger_Merge(t *testing.T) {
	ledger := services.NewLedger()
	ledger.Add(usdAccount, trxAt("T-9", "mine", models.TransactionTypeDebit, day(9)))

	got := ledger.Merge(usdAccount, []models.SummarizedTransaction{trxAt("T-9", "theirs", models.TransactionTypeCredit, day(9))})
	require.Len(t, got, 1)
	assert.Equal(t, models.TransactionTypeDebit, got[0].TransactionType)
}
