package cmd

import (
	"context"

	"github.com/lafise/go-fp-transfer/cmd/setup"
	"github.com/lafise/go-fp-transfer/internal/common/validation"
	"github.com/lafise/go-fp-transfer/internal/models"

	"github.com/spf13/cobra"
)

const (
	flagAmount = "amount"
	flagFrom   = "from"
	flagTo     = "to"
)

var convertCmd = &cobra.Command{
	Use:     "convert",
	Short:   "Convert an amount between USD and NIO",
	Example: "fp-transfer convert -a 100 -f USD -t C$",
	RunE: withSetup(func(ctx context.Context, ccmd *cobra.Command, s *setup.Setup) error {
		req := models.DoGetConversionRequest{}
		req.Amount, _ = ccmd.Flags().GetString(flagAmount)
		req.From, _ = ccmd.Flags().GetString(flagFrom)
		req.To, _ = ccmd.Flags().GetString(flagTo)

		if err := validation.ValidateStruct(req); err != nil {
			return err
		}

		preview, err := s.Service.Conversion.Convert(ctx, req)
		if err != nil {
			return err
		}

		return render(ccmd.OutOrStdout(), "conversion", preview)
	}),
}

func init() {
	convertCmd.Flags().StringP(flagAmount, "a", "", "amount")
	convertCmd.Flags().StringP(flagFrom, "f", "", "source currency")
	convertCmd.Flags().StringP(flagTo, "t", "", "target currency")
	_ = convertCmd.MarkFlagRequired(flagAmount)
	_ = convertCmd.MarkFlagRequired(flagFrom)
	_ = convertCmd.MarkFlagRequired(flagTo)
}
