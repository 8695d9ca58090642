package conversion

import (
	nethttp "net/http"

	"github.com/lafise/go-fp-transfer/internal/common/http"
	"github.com/lafise/go-fp-transfer/internal/common/validation"
	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/services"

	"github.com/labstack/echo/v4"
)

type conversionHandler struct {
	conversionSvc services.ConversionService
}

// New conversion handler will initialize the conversions/ resources endpoint
func New(app *echo.Group, conversionSvc services.ConversionService) {
	handler := conversionHandler{conversionSvc}
	app.GET("/conversions", handler.getConversion)
}

// getConversion API preview a USD/NIO conversion
// @Summary Convert amount
// @Tags Conversion
// @Produce  json
// @Param amount query string true "amount"
// @Param from query string true "source currency, USD, NIO, $ or C$"
// @Param to query string true "target currency, USD, NIO, $ or C$"
// @Success 200 {object} models.ConversionPreview
// @Failure 400 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse}
// @Router /v1/conversions [get]
func (h *conversionHandler) getConversion(c echo.Context) error {
	req := new(models.DoGetConversionRequest)
	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	res, err := h.conversionSvc.Convert(c.Request().Context(), *req)
	if err != nil {
		return http.RestErrorFromError(c, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res)
}
