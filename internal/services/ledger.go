package services

import (
	"sync"

	"github.com/lafise/go-fp-transfer/internal/models"

	"golang.org/x/exp/slices"
)

// Ledger keeps the records of transfers confirmed in this session, per account number.
// It lives only as long as the session.
type Ledger struct {
	mu      sync.RWMutex
	entries map[string][]models.SummarizedTransaction
}

func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string][]models.SummarizedTransaction)}
}

// Add prepends trx. Duplicates are kept and resolved by Merge.
func (l *Ledger) Add(accountNumber string, trx models.SummarizedTransaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current := l.entries[accountNumber]
	next := make([]models.SummarizedTransaction, 0, len(current)+1)
	next = append(next, trx)
	l.entries[accountNumber] = append(next, current...)
}

// Entries returns a copy, newest first.
func (l *Ledger) Entries(accountNumber string) []models.SummarizedTransaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	current := l.entries[accountNumber]
	out := make([]models.SummarizedTransaction, len(current))
	copy(out, current)
	return out
}

// Merge overlays the local records of accountNumber on a server page.
func (l *Ledger) Merge(accountNumber string, server []models.SummarizedTransaction) []models.SummarizedTransaction {
	return MergeTransactions(l.Entries(accountNumber), server)
}

func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = make(map[string][]models.SummarizedTransaction)
}

// MergeTransactions dedupes by transaction number, local records win and the first
// occurrence is kept, then sorts by date descending. Records without a date go last.
// Merging an already merged list with the same local records returns the same list.
func MergeTransactions(local, server []models.SummarizedTransaction) []models.SummarizedTransaction {
	seen := make(map[string]struct{}, len(local)+len(server))
	out := make([]models.SummarizedTransaction, 0, len(local)+len(server))

	for _, list := range [][]models.SummarizedTransaction{local, server} {
		for _, trx := range list {
			if _, ok := seen[trx.TransactionNumber]; ok {
				continue
			}
			seen[trx.TransactionNumber] = struct{}{}
			out = append(out, trx)
		}
	}

	SortByDateDesc(out)

	return out
}

// SortByDateDesc is stable so equal dates keep their merge order.
func SortByDateDesc(trxs []models.SummarizedTransaction) {
	slices.SortStableFunc(trxs, func(x, y models.SummarizedTransaction) int {
		a, b := x.TransactionDate, y.TransactionDate
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return 1
		case b == nil:
			return -1
		default:
			return b.Compare(*a)
		}
	})
}
