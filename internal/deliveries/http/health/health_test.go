package health

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/lafise/go-fp-transfer/internal/common/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitForTest()
	os.Exit(m.Run())
}

func Test_Handler_healthCheck(t *testing.T) {
	app := echo.New()
	New(app.Group("/api"))

	tests := []struct {
		name     string
		method   string
		wantCode int
		wantRes  string
	}{
		{
			name:     "liveness",
			method:   http.MethodGet,
			wantCode: http.StatusOK,
			wantRes:  `{"kind":"health","status":"server is up and running"}`,
		},
		{
			name:     "only GET is routed",
			method:   http.MethodPost,
			wantCode: http.StatusMethodNotAllowed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/health", nil)
			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, req)

			resp := rec.Result()
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCode, resp.StatusCode)
			if tt.wantRes != "" {
				assert.JSONEq(t, tt.wantRes, string(body))
			}
		})
	}
}
