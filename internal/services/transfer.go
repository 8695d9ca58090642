package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lafise/go-fp-transfer/internal/common/directory"
	"github.com/lafise/go-fp-transfer/internal/common/logger"
	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/monitoring"

	"github.com/shopspring/decimal"
)

// transferOrder is a validated draft ready to be sent.
type transferOrder struct {
	Type              models.TransferType
	Origin            models.Account
	Destination       string
	Amount            decimal.Decimal
	Concept           string
	Reference         string
	ConfirmationEmail string
}

// transferSubmitter creates the transaction and reflects it locally: a debit record under
// the origin and, for an owned destination, a credit record under it, then the balances.
type transferSubmitter struct {
	client    directory.Client
	session   *Session
	projector *Projector
	now       func() time.Time
}

func (ts *transferSubmitter) submit(ctx context.Context, order transferOrder) (receipt models.TransferReceipt, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	originCurrency := order.Origin.NormalizedCurrency()
	debit := models.Amount{
		Currency: originCurrency.String(),
		Value:    models.NewDecimalFromExternal(order.Amount),
	}

	created, err := ts.client.CreateTransaction(ctx, models.TransactionRequest{
		Origin:      order.Origin.Key(),
		Destination: order.Destination,
		Amount:      debit,
	})
	if err != nil {
		return receipt, err
	}

	submittedAt := ts.now()
	ledger := ts.session.Ledger()

	description := order.Concept
	if description == "" {
		description = fmt.Sprintf("Transfer to %s", order.Destination)
	}

	ledger.Add(order.Origin.Key(), models.SummarizedTransaction{
		TransactionNumber: created.TransactionNumber,
		Description:       description,
		BankDescription:   created.BankDescription,
		TransactionType:   models.TransactionTypeDebit,
		Origin:            order.Origin.Key(),
		Destination:       order.Destination,
		Amount:            debit,
		TransactionDate:   &submittedAt,
	})

	receipt = models.TransferReceipt{
		TransactionNumber: created.TransactionNumber,
		TransactionType:   order.Type,
		Origin:            order.Origin,
		Destination:       order.Destination,
		Debit:             debit,
		Concept:           order.Concept,
		Reference:         order.Reference,
		ConfirmationEmail: order.ConfirmationEmail,
		SubmittedAt:       submittedAt,
	}

	var creditValue *decimal.Decimal
	destinationAccount, owned := ts.session.AccountByNumber(order.Destination)
	if owned {
		destinationCurrency := destinationAccount.NormalizedCurrency()
		converted, convErr := Convert(order.Amount, originCurrency, destinationCurrency)
		if convErr != nil {
			logger.Warn(ctx, logWizard,
				logger.String("message", "credit leg skipped"),
				logger.String("transactionNumber", created.TransactionNumber),
				logger.Err(convErr))
		} else {
			credit := models.Amount{
				Currency: destinationCurrency.String(),
				Value:    models.NewDecimalFromExternal(converted),
			}
			ledger.Add(order.Destination, models.SummarizedTransaction{
				TransactionNumber: created.TransactionNumber,
				Description:       fmt.Sprintf("Transfer from %s", order.Origin.Key()),
				BankDescription:   created.BankDescription,
				TransactionType:   models.TransactionTypeCredit,
				Origin:            order.Origin.Key(),
				Destination:       order.Destination,
				Amount:            credit,
				TransactionDate:   &submittedAt,
			})
			receipt.Credit = &credit
			creditValue = &converted
		}
	}

	destinationNumber, _ := strconv.ParseInt(order.Destination, 10, 64)
	ts.projector.Apply(ctx, order.Origin.AccountNumber, order.Amount, destinationNumber, creditValue)

	return receipt, nil
}
