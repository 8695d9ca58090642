package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lafise/go-fp-transfer/cmd/setup"
	"github.com/lafise/go-fp-transfer/internal/common"
	"github.com/lafise/go-fp-transfer/internal/common/validation"
	"github.com/lafise/go-fp-transfer/internal/models"

	"github.com/spf13/cobra"
)

const (
	flagType        = "type"
	flagOrigin      = "origin"
	flagDestination = "destination"
	flagNumber      = "number"
	flagCurrency    = "currency"
	flagConcept     = "concept"
	flagReference   = "reference"
	flagEmail       = "email"
	flagWait        = "wait"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Send a transfer between own accounts or to a third party",
	Example: "fp-transfer transfer -T Propias -o 1000000001 -d 1000000002 -a 25\n" +
		"fp-transfer transfer -o 1000000001 -n 1000000003 -a 10 -c rent",
	RunE: withSetup(runTransfer),
}

func init() {
	f := transferCmd.Flags()
	f.StringP(flagType, "T", string(models.TransferTypeThirdParty), "transfer type, Propias or Terceros")
	f.StringP(flagOrigin, "o", "", "origin account number")
	f.StringP(flagDestination, "d", "", "own destination account number (Propias)")
	f.StringP(flagNumber, "n", "", "third-party account number (Terceros)")
	f.StringP(flagAmount, "a", "", "amount in the origin currency")
	f.String(flagCurrency, "", "currency of a third-party destination that is not resolved by lookup")
	f.StringP(flagConcept, "c", "", "concept")
	f.StringP(flagReference, "r", "", "reference")
	f.StringP(flagEmail, "e", "", "confirmation email")
	f.Duration(flagWait, 10*time.Second, "maximum wait for the destination lookup")
	_ = transferCmd.MarkFlagRequired(flagOrigin)
	_ = transferCmd.MarkFlagRequired(flagAmount)
	transferCmd.MarkFlagsMutuallyExclusive(flagDestination, flagNumber)
}

// transferRequest maps the command flags onto a wizard update; empty flags are left out.
func transferRequest(ccmd *cobra.Command) models.DoUpdateTransferRequest {
	get := func(name string) *string {
		v, _ := ccmd.Flags().GetString(name)
		if v == "" {
			return nil
		}
		return &v
	}

	return models.DoUpdateTransferRequest{
		TransactionType:          get(flagType),
		OriginAccount:            get(flagOrigin),
		DestinationAccount:       get(flagDestination),
		DestinationAccountNumber: get(flagNumber),
		Amount:                   get(flagAmount),
		ManualCurrency:           get(flagCurrency),
		Concept:                  get(flagConcept),
		Reference:                get(flagReference),
		ConfirmationEmail:        get(flagEmail),
	}
}

func runTransfer(ctx context.Context, ccmd *cobra.Command, s *setup.Setup) error {
	req := transferRequest(ccmd)
	if err := validation.ValidateStruct(req); err != nil {
		return err
	}

	wizard := s.Service.Wizard
	if _, err := wizard.Update(ctx, req); err != nil {
		return err
	}

	wait, _ := ccmd.Flags().GetDuration(flagWait)
	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	status, err := wizard.AwaitVerification(waitCtx)
	if err != nil {
		return fmt.Errorf("destination lookup did not finish: %w", err)
	}
	if status == models.VerificationFailed {
		return errors.New(wizard.Snapshot().VerificationError)
	}

	receipt, err := wizard.Submit(ctx)
	if errors.Is(err, common.ErrSubmitNotAllowed) {
		view := wizard.Snapshot()
		reasons := view.ValidationErrors
		if view.BalanceWarning != "" {
			reasons = append(reasons, view.BalanceWarning)
		}
		if len(reasons) > 0 {
			return fmt.Errorf("%w: %s", err, strings.Join(reasons, "; "))
		}
	}
	if err != nil {
		return err
	}

	return render(ccmd.OutOrStdout(), "receipt", receipt)
}
