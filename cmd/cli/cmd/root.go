package cmd

import (
	"context"
	"os"
	"time"

	"github.com/lafise/go-fp-transfer/cmd/setup"
	"github.com/lafise/go-fp-transfer/internal/common/graceful"
	"github.com/lafise/go-fp-transfer/internal/config"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "fp-transfer",
	Short:         "Funds transfer client for the account directory",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

const flagConfigDir = "config-dir"

func init() {
	rootCmd.PersistentFlags().String(flagConfigDir, "", "directory holding config.yaml")

	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(transactionsCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(transferCmd)
}

type runner func(ctx context.Context, ccmd *cobra.Command, s *setup.Setup) error

// withSetup builds the application for one command and tears it down afterwards.
func withSetup(run runner) func(*cobra.Command, []string) error {
	return func(ccmd *cobra.Command, _ []string) error {
		ctx := ccmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		var opts []config.LoaderOption
		if dir, _ := ccmd.Flags().GetString(flagConfigDir); dir != "" {
			opts = append(opts, config.WithConfigFileSearchPaths(dir))
		}

		s, stoppers, err := setup.Init("cli", opts...)
		defer func() {
			timeout := 5 * time.Second
			if s != nil && s.Config.App.GracefulTimeout != 0 {
				timeout = s.Config.App.GracefulTimeout
			}
			graceful.StopProcess(timeout, stoppers...)
		}()
		if err != nil {
			return err
		}

		return run(ctx, ccmd, s)
	}
}
