package conversion

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/lafise/go-fp-transfer/internal/common"
	"github.com/lafise/go-fp-transfer/internal/common/logger"
	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/services/mock"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.InitForTest()
	os.Exit(m.Run())
}

func Test_Handler_getConversion(t *testing.T) {
	type args struct {
		query url.Values
	}
	type mockData struct {
		wantRes  string
		wantCode int
	}
	tests := []struct {
		name     string
		args     args
		mockData mockData
		doMock   func(svc *mock.MockConversionService, args args)
	}{
		{
			name: "success",
			args: args{query: url.Values{"amount": {"100"}, "from": {"USD"}, "to": {"C$"}}},
			mockData: mockData{
				wantRes:  `{"from":"USD","to":"NIO","amount":100,"received":3595}`,
				wantCode: http.StatusOK,
			},
			doMock: func(svc *mock.MockConversionService, args args) {
				svc.EXPECT().Convert(gomock.Any(), models.DoGetConversionRequest{Amount: "100", From: "USD", To: "C$"}).
					Return(models.ConversionPreview{
						From:     models.CurrencyUSD,
						To:       models.CurrencyNIO,
						Amount:   models.MustDecimal("100"),
						Received: models.MustDecimal("3595"),
					}, nil)
			},
		},
		{
			name: "error validating request",
			args: args{query: url.Values{"amount": {"0"}, "from": {"USD"}}},
			mockData: mockData{
				wantRes:  `{"status":"error","message":"validation failed","errors":[{"code":"DECIMALGREATERTHAN","field":"amount","message":"must be a valid number greater than 0"},{"code":"REQUIRED","field":"to","message":"is required"}]}`,
				wantCode: http.StatusUnprocessableEntity,
			},
		},
		{
			name: "unsupported pair",
			args: args{query: url.Values{"amount": {"1"}, "from": {"USD"}, "to": {"EUR"}}},
			mockData: mockData{
				wantRes:  `{"status":"error","code":400,"message":"unsupported currency pair"}`,
				wantCode: http.StatusBadRequest,
			},
			doMock: func(svc *mock.MockConversionService, args args) {
				svc.EXPECT().Convert(gomock.Any(), gomock.Any()).Return(models.ConversionPreview{}, common.ErrUnsupportedCurrencyPair)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCtrl := gomock.NewController(t)
			svc := mock.NewMockConversionService(mockCtrl)
			if tt.doMock != nil {
				tt.doMock(svc, tt.args)
			}

			app := echo.New()
			New(app.Group("/api/v1"), svc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/conversions?"+tt.args.query.Encode(), nil)
			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, req)

			resp := rec.Result()
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			require.Equal(t, tt.mockData.wantCode, resp.StatusCode)
			require.Equal(t, tt.mockData.wantRes, strings.TrimSuffix(string(body), "\n"))
		})
	}
}
