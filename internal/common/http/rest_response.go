package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lafise/go-fp-transfer/internal/common"
	"github.com/lafise/go-fp-transfer/internal/common/directory"

	"github.com/hashicorp/go-multierror"
	"github.com/labstack/echo/v4"
)

type (
	RestErrorResponseModel struct {
		Status  string      `json:"status" example:"error"`
		Code    interface{} `json:"code"`
		Message string      `json:"message" example:"error"`
	}

	RestTotalRowResponseModel struct {
		Kind      string      `json:"kind" example:"collection"`
		Contents  interface{} `json:"contents"`
		TotalRows int         `json:"total_rows" example:"100"`
	}

	RestErrorValidationResponseModel struct {
		Status  string      `json:"status" example:"error"`
		Message string      `json:"message" example:"validation error"`
		Errors  interface{} `json:"errors"`
	}
)

func RestSuccessResponse(c echo.Context, code int, in interface{}) error {
	return c.JSON(code, in)
}

func RestSuccessResponseListWithTotalRows(c echo.Context, data interface{}, totalRows int) error {
	return c.JSON(http.StatusOK, RestTotalRowResponseModel{
		Kind:      "collection",
		Contents:  data,
		TotalRows: totalRows,
	})
}

func RestErrorResponse(c echo.Context, statusCode int, err error) error {
	res := RestErrorResponseModel{
		Status:  "error",
		Code:    statusCode,
		Message: err.Error(),
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		res.Code = echoErr.Code
		res.Message = fmt.Sprint(echoErr.Message)
	}

	return c.JSON(statusCode, res)
}

// RestErrorFromError picks the status code from the error chain.
func RestErrorFromError(c echo.Context, err error) error {
	return RestErrorResponse(c, StatusCodeFromError(err), err)
}

func RestErrorValidationResponse(c echo.Context, errors interface{}) error {
	res := RestErrorValidationResponseModel{
		Status:  "error",
		Message: common.ErrValidation.Error(),
	}
	if data, ok := errors.(*multierror.Error); ok {
		res.Errors = data.Errors
	}

	return c.JSON(http.StatusUnprocessableEntity, res)
}

func StatusCodeFromError(err error) int {
	var apiErr *directory.APIError

	switch {
	case errors.Is(err, common.ErrDataNotFound),
		errors.Is(err, common.ErrAccountNotExists):
		return http.StatusNotFound
	case errors.Is(err, common.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrInvalidAmount),
		errors.Is(err, common.ErrUnsupportedCurrencyPair),
		errors.Is(err, common.ErrInvalidTransactionType),
		errors.Is(err, common.ErrDestinationNotOwned),
		errors.Is(err, common.ErrCurrencyPinned):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrSubmitNotAllowed),
		errors.Is(err, common.ErrSubmitInProgress),
		errors.Is(err, common.ErrWizardResetting):
		return http.StatusConflict
	case errors.Is(err, common.ErrSessionNotLoaded):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
