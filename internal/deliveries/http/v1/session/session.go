package session

import (
	nethttp "net/http"

	"github.com/lafise/go-fp-transfer/internal/common/http"
	"github.com/lafise/go-fp-transfer/internal/common/logger"
	"github.com/lafise/go-fp-transfer/internal/services"

	"github.com/labstack/echo/v4"
)

type sessionHandler struct {
	sessionSvc services.SessionService
}

// New session handler will initialize the session/ resources endpoint
func New(app *echo.Group, sessionSvc services.SessionService) {
	handler := sessionHandler{
		sessionSvc: sessionSvc,
	}
	api := app.Group("/session")
	api.GET("", handler.getSession)
	api.POST("/refresh", handler.refreshSession)
}

// getSession API get the loaded user and accounts
// @Summary Get session
// @Description Get the user, their accounts with projected balances and the last load error
// @Tags Session
// @Produce  json
// @Success 200 {object} models.SessionView
// @Router /v1/session [get]
func (h *sessionHandler) getSession(c echo.Context) error {
	return http.RestSuccessResponse(c, nethttp.StatusOK, h.sessionSvc.View())
}

// refreshSession reloads the user and the accounts. A directory failure is reported
// in the view's error field, the previously loaded data is kept.
// @Summary Refresh session
// @Tags Session
// @Produce  json
// @Success 200 {object} models.SessionView
// @Router /v1/session/refresh [post]
func (h *sessionHandler) refreshSession(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.sessionSvc.Load(ctx); err != nil {
		logger.Warn(ctx, "[SESSION-HANDLER]", logger.String("message", "refresh failed"), logger.Err(err))
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, h.sessionSvc.View())
}
