package transaction

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/lafise/go-fp-transfer/internal/common"
	"github.com/lafise/go-fp-transfer/internal/common/logger"
	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/services/mock"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testTransactionHelper struct {
	router      *echo.Echo
	mockCtrl    *gomock.Controller
	mockHistory *mock.MockHistoryService
}

func TestMain(m *testing.M) {
	logger.InitForTest()
	os.Exit(m.Run())
}

func transactionTestHelper(t *testing.T) testTransactionHelper {
	t.Helper()

	mockCtrl := gomock.NewController(t)
	mockHistory := mock.NewMockHistoryService(mockCtrl)

	app := echo.New()
	app.Pre(echomiddleware.RemoveTrailingSlash())
	New(app.Group("/api/v1"), mockHistory)

	return testTransactionHelper{
		router:      app,
		mockCtrl:    mockCtrl,
		mockHistory: mockHistory,
	}
}

var sampleTransaction = models.SummarizedTransaction{
	TransactionNumber: "TRX-1",
	Description:       "Transfer to 1000000002",
	TransactionType:   models.TransactionTypeDebit,
	Origin:            "1000000001",
	Destination:       "1000000002",
	Amount:            models.Amount{Currency: "USD", Value: models.MustDecimal("10.5")},
}

const sampleTransactionJSON = `{"transaction_number":"TRX-1","description":"Transfer to 1000000002","bank_description":"","transaction_type":"Debit","origin":"1000000001","destination":"1000000002","amount":{"currency":"USD","value":10.5}}`

func Test_Handler_getAccountTransactions(t *testing.T) {
	type mockData struct {
		wantRes  string
		wantCode int
	}
	tests := []struct {
		name      string
		urlCalled string
		mockData  mockData
		doMock    func(h testTransactionHelper)
	}{
		{
			name:      "success",
			urlCalled: "/api/v1/accounts/1000000001/transactions",
			mockData: mockData{
				wantRes:  `{"kind":"collection","contents":[` + sampleTransactionJSON + `],"total_rows":1}`,
				wantCode: http.StatusOK,
			},
			doMock: func(h testTransactionHelper) {
				h.mockHistory.EXPECT().AccountTransactions(gomock.Any(), "1000000001").
					Return([]models.SummarizedTransaction{sampleTransaction}, nil)
			},
		},
		{
			name:      "empty history",
			urlCalled: "/api/v1/accounts/1000000001/transactions",
			mockData: mockData{
				wantRes:  `{"kind":"collection","contents":[],"total_rows":0}`,
				wantCode: http.StatusOK,
			},
			doMock: func(h testTransactionHelper) {
				h.mockHistory.EXPECT().AccountTransactions(gomock.Any(), "1000000001").Return(nil, nil)
			},
		},
		{
			name:      "error validating account number",
			urlCalled: "/api/v1/accounts/abc/transactions",
			mockData: mockData{
				wantRes:  `{"status":"error","message":"validation failed","errors":[{"code":"NUMERIC","field":"account_number","message":"must contain digits only"}]}`,
				wantCode: http.StatusUnprocessableEntity,
			},
		},
		{
			name:      "account not found",
			urlCalled: "/api/v1/accounts/1000000009/transactions",
			mockData: mockData{
				wantRes:  `{"status":"error","code":404,"message":"data not found"}`,
				wantCode: http.StatusNotFound,
			},
			doMock: func(h testTransactionHelper) {
				h.mockHistory.EXPECT().AccountTransactions(gomock.Any(), "1000000009").Return(nil, common.ErrDataNotFound)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHelper := transactionTestHelper(t)
			if tt.doMock != nil {
				tt.doMock(testHelper)
			}

			req := httptest.NewRequest(http.MethodGet, tt.urlCalled, nil)
			rec := httptest.NewRecorder()
			testHelper.router.ServeHTTP(rec, req)

			resp := rec.Result()
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			require.Equal(t, tt.mockData.wantCode, resp.StatusCode)
			require.Equal(t, tt.mockData.wantRes, strings.TrimSuffix(string(body), "\n"))
		})
	}
}

func Test_Handler_getRecentTransactions(t *testing.T) {
	type mockData struct {
		wantRes  string
		wantCode int
	}
	tests := []struct {
		name      string
		urlCalled string
		mockData  mockData
		doMock    func(h testTransactionHelper)
	}{
		{
			name:      "success with limit",
			urlCalled: "/api/v1/transactions/recent?limit=5",
			mockData: mockData{
				wantRes:  `{"kind":"collection","contents":[` + sampleTransactionJSON + `],"total_rows":1}`,
				wantCode: http.StatusOK,
			},
			doMock: func(h testTransactionHelper) {
				h.mockHistory.EXPECT().RecentTransactions(gomock.Any(), 5).
					Return([]models.SummarizedTransaction{sampleTransaction}, nil)
			},
		},
		{
			name:      "no limit returns everything",
			urlCalled: "/api/v1/transactions/recent",
			mockData: mockData{
				wantRes:  `{"kind":"collection","contents":[],"total_rows":0}`,
				wantCode: http.StatusOK,
			},
			doMock: func(h testTransactionHelper) {
				h.mockHistory.EXPECT().RecentTransactions(gomock.Any(), 0).Return([]models.SummarizedTransaction{}, nil)
			},
		},
		{
			name:      "limit is not a number",
			urlCalled: "/api/v1/transactions/recent?limit=x",
			mockData: mockData{
				wantCode: http.StatusBadRequest,
			},
		},
		{
			name:      "session not loaded",
			urlCalled: "/api/v1/transactions/recent",
			mockData: mockData{
				wantRes:  `{"status":"error","code":503,"message":"session user is not loaded"}`,
				wantCode: http.StatusServiceUnavailable,
			},
			doMock: func(h testTransactionHelper) {
				h.mockHistory.EXPECT().RecentTransactions(gomock.Any(), 0).Return(nil, common.ErrSessionNotLoaded)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHelper := transactionTestHelper(t)
			if tt.doMock != nil {
				tt.doMock(testHelper)
			}

			req := httptest.NewRequest(http.MethodGet, tt.urlCalled, nil)
			rec := httptest.NewRecorder()
			testHelper.router.ServeHTTP(rec, req)

			resp := rec.Result()
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			require.Equal(t, tt.mockData.wantCode, resp.StatusCode)
			if tt.mockData.wantRes != "" {
				require.Equal(t, tt.mockData.wantRes, strings.TrimSuffix(string(body), "\n"))
			}
		})
	}
}
