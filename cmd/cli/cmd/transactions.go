package cmd

import (
	"context"

	"github.com/lafise/go-fp-transfer/cmd/setup"
	"github.com/lafise/go-fp-transfer/internal/common/validation"
	"github.com/lafise/go-fp-transfer/internal/models"

	"github.com/spf13/cobra"
)

const (
	flagAccount = "account"
	flagLimit   = "limit"
)

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Short:   "Show the history of one account or the most recent transactions of all of them",
	Example: "fp-transfer transactions -a 1000000001",
	RunE: withSetup(func(ctx context.Context, ccmd *cobra.Command, s *setup.Setup) error {
		account, _ := ccmd.Flags().GetString(flagAccount)
		limit, _ := ccmd.Flags().GetInt(flagLimit)

		var (
			trxs []models.SummarizedTransaction
			err  error
		)
		if account != "" {
			req := models.DoGetAccountTransactionsRequest{AccountNumber: account}
			if err = validation.ValidateStruct(req); err != nil {
				return err
			}
			trxs, err = s.Service.History.AccountTransactions(ctx, account)
		} else {
			trxs, err = s.Service.History.RecentTransactions(ctx, limit)
		}
		if err != nil {
			return err
		}

		return render(ccmd.OutOrStdout(), "transactions", trxs)
	}),
}

func init() {
	transactionsCmd.Flags().StringP(flagAccount, "a", "", "account number")
	transactionsCmd.Flags().IntP(flagLimit, "l", 10, "maximum number of recent transactions")
}
