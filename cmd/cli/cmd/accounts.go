package cmd

import (
	"context"

	"github.com/lafise/go-fp-transfer/cmd/setup"

	"github.com/spf13/cobra"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the user's accounts and balances",
	RunE: withSetup(func(ctx context.Context, ccmd *cobra.Command, s *setup.Setup) error {
		return render(ccmd.OutOrStdout(), "accounts", s.Service.Session.View())
	}),
}
