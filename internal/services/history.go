package services

import (
	"context"

	"github.com/lafise/go-fp-transfer/internal/common"
	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/monitoring"

	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=history.go -destination=mock/mock_history.go -package=mock
type HistoryService interface {
	AccountTransactions(ctx context.Context, accountNumber string) (trxs []models.SummarizedTransaction, err error)
	RecentTransactions(ctx context.Context, limit int) (trxs []models.SummarizedTransaction, err error)
}

type history service

var _ HistoryService = (*history)(nil)

// AccountTransactions is the server page of one account with the local ledger merged in.
func (hs *history) AccountTransactions(ctx context.Context, accountNumber string) (trxs []models.SummarizedTransaction, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	page, err := hs.srv.directory.GetAccountTransactions(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	return hs.srv.Session.Ledger().Merge(accountNumber, page.Items), nil
}

// RecentTransactions fetches every session account concurrently and returns the newest
// limit records across all of them. A limit of zero or less returns everything.
func (hs *history) RecentTransactions(ctx context.Context, limit int) (trxs []models.SummarizedTransaction, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	if hs.srv.Session.User() == nil {
		return nil, common.ErrSessionNotLoaded
	}

	accounts := hs.srv.Session.Accounts()
	perAccount := make([][]models.SummarizedTransaction, len(accounts))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, acc := range accounts {
		i, key := i, acc.Key()
		eg.Go(func() error {
			page, err := hs.srv.directory.GetAccountTransactions(egCtx, key)
			if err != nil {
				return err
			}
			perAccount[i] = hs.srv.Session.Ledger().Merge(key, page.Items)
			return nil
		})
	}

	if err = eg.Wait(); err != nil {
		return nil, err
	}

	trxs = make([]models.SummarizedTransaction, 0)
	for _, list := range perAccount {
		trxs = append(trxs, list...)
	}
	SortByDateDesc(trxs)

	if limit > 0 && len(trxs) > limit {
		trxs = trxs[:limit]
	}

	return trxs, nil
}
