package transfer

import (
	nethttp "net/http"

	"github.com/lafise/go-fp-transfer/internal/common/http"
	"github.com/lafise/go-fp-transfer/internal/common/validation"
	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/services"

	"github.com/labstack/echo/v4"
)

type transferHandler struct {
	wizardSvc services.WizardService
}

// New transfer handler will initialize the transfer/ wizard endpoints
func New(app *echo.Group, wizardSvc services.WizardService) {
	handler := transferHandler{wizardSvc}

	api := app.Group("/transfer")
	api.GET("", handler.getTransfer)
	api.PATCH("", handler.updateTransfer)
	api.POST("/back", handler.backTransfer)
	api.POST("/submit", handler.submitTransfer)
}

// getTransfer API get the wizard state
// @Summary Get transfer wizard
// @Tags Transfer
// @Produce  json
// @Success 200 {object} models.WizardView
// @Router /v1/transfer [get]
func (h *transferHandler) getTransfer(c echo.Context) error {
	return http.RestSuccessResponse(c, nethttp.StatusOK, h.wizardSvc.Snapshot())
}

// updateTransfer API edit wizard fields
// @Summary Update transfer wizard
// @Description Applies the given fields in form order. Omitted fields are left untouched.
// @Tags Transfer
// @Accept  json
// @Produce  json
// @Param body body models.DoUpdateTransferRequest true "body"
// @Success 200 {object} models.WizardView
// @Failure 400 {object} http.RestErrorResponseModel
// @Failure 409 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse}
// @Router /v1/transfer [patch]
func (h *transferHandler) updateTransfer(c echo.Context) error {
	req := new(models.DoUpdateTransferRequest)
	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	view, err := h.wizardSvc.Update(c.Request().Context(), *req)
	if err != nil {
		return http.RestErrorFromError(c, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, view)
}

// backTransfer API go one step back
// @Summary Previous wizard step
// @Tags Transfer
// @Produce  json
// @Success 200 {object} models.WizardView
// @Router /v1/transfer/back [post]
func (h *transferHandler) backTransfer(c echo.Context) error {
	return http.RestSuccessResponse(c, nethttp.StatusOK, h.wizardSvc.Back())
}

// submitTransfer API submit the transfer
// @Summary Submit transfer
// @Tags Transfer
// @Produce  json
// @Success 201 {object} models.TransferReceipt
// @Failure 409 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorResponseModel
// @Failure 502 {object} http.RestErrorResponseModel
// @Router /v1/transfer/submit [post]
func (h *transferHandler) submitTransfer(c echo.Context) error {
	receipt, err := h.wizardSvc.Submit(c.Request().Context())
	if err != nil {
		return http.RestErrorFromError(c, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusCreated, receipt)
}
