package health

import (
	nethttp "net/http"

	"github.com/lafise/go-fp-transfer/internal/common/http"

	"github.com/labstack/echo/v4"
)

type healthHandler struct{}

// New health handler will initialize the health/ resources endpoint
func New(app *echo.Group) {
	hh := healthHandler{}
	app.GET("/health", hh.healthCheck)
}

type (
	DoHealthCheckLivenessResponse struct {
		Kind   string `json:"kind" example:"health"`
		Status string `json:"status" example:"server is up and running"`
	}
)

// healthCheck godoc
// @Summary 	Get the status of server
// @Description	Get the status of server
// @Produce		json
// @Success 200 {object} DoHealthCheckLivenessResponse
// @Router /health [get]
func (hh healthHandler) healthCheck(c echo.Context) error {
	return http.RestSuccessResponse(c, nethttp.StatusOK, DoHealthCheckLivenessResponse{
		Kind:   "health",
		Status: "server is up and running",
	})
}
