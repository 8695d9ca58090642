package middleware

import (
	"github.com/lafise/go-fp-transfer/internal/common/idgenerator"
	"github.com/lafise/go-fp-transfer/internal/common/logger"

	"github.com/labstack/echo/v4"
)

const HeaderCorrelationID = "X-Correlation-Id"

// Context puts the caller's correlation id, or a new one, on the request context and the response.
func (m *AppMiddleware) Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			correlationID := c.Request().Header.Get(HeaderCorrelationID)
			if correlationID == "" {
				correlationID = m.idGenerator.Generate(idgenerator.PrefixCorrelation)
			}

			ctx := logger.WithCorrelationID(c.Request().Context(), correlationID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(HeaderCorrelationID, correlationID)

			return next(c)
		}
	}
}

// RequestIDGenerator feeds echo's request id middleware.
func (m *AppMiddleware) RequestIDGenerator() func() string {
	return func() string {
		return m.idGenerator.Generate(idgenerator.PrefixRequest)
	}
}
