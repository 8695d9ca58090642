package transaction

import (
	nethttp "net/http"

	"github.com/lafise/go-fp-transfer/internal/common/http"
	"github.com/lafise/go-fp-transfer/internal/common/validation"
	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/services"

	"github.com/labstack/echo/v4"
)

type transactionHandler struct {
	historySvc services.HistoryService
}

// New transaction handler will initialize the transaction history endpoints
func New(app *echo.Group, historySvc services.HistoryService) {
	handler := transactionHandler{historySvc}

	app.GET("/accounts/:accountNumber/transactions", handler.getAccountTransactions)
	app.GET("/transactions/recent", handler.getRecentTransactions)
}

// getAccountTransactions API get the history of one account
// @Summary Get account transactions
// @Description Server history of the account merged with the transfers made in this session
// @Tags Transaction
// @Produce  json
// @Param accountNumber path string true "account number"
// @Success 200 {object} http.RestTotalRowResponseModel{contents=[]models.SummarizedTransaction}
// @Failure 404 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse}
// @Failure 502 {object} http.RestErrorResponseModel
// @Router /v1/accounts/{accountNumber}/transactions [get]
func (th *transactionHandler) getAccountTransactions(c echo.Context) error {
	req := new(models.DoGetAccountTransactionsRequest)
	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	trxs, err := th.historySvc.AccountTransactions(c.Request().Context(), req.AccountNumber)
	if err != nil {
		return http.RestErrorFromError(c, err)
	}

	return http.RestSuccessResponseListWithTotalRows(c, nonNil(trxs), len(trxs))
}

// getRecentTransactions API get the newest transactions of every account
// @Summary Get recent transactions
// @Tags Transaction
// @Produce  json
// @Param limit query int false "maximum number of records"
// @Success 200 {object} http.RestTotalRowResponseModel{contents=[]models.SummarizedTransaction}
// @Failure 422 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse}
// @Failure 503 {object} http.RestErrorResponseModel
// @Router /v1/transactions/recent [get]
func (th *transactionHandler) getRecentTransactions(c echo.Context) error {
	req := new(models.DoGetRecentTransactionsRequest)
	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	trxs, err := th.historySvc.RecentTransactions(c.Request().Context(), req.Limit)
	if err != nil {
		return http.RestErrorFromError(c, err)
	}

	return http.RestSuccessResponseListWithTotalRows(c, nonNil(trxs), len(trxs))
}

func nonNil(trxs []models.SummarizedTransaction) []models.SummarizedTransaction {
	if trxs == nil {
		return []models.SummarizedTransaction{}
	}
	return trxs
}
