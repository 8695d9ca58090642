package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/lafise/go-fp-transfer/internal/common/logger"
	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/services/mock"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testSessionHelper struct {
	router      *echo.Echo
	mockCtrl    *gomock.Controller
	mockService *mock.MockSessionService
}

func TestMain(m *testing.M) {
	logger.InitForTest()
	os.Exit(m.Run())
}

func sessionTestHelper(t *testing.T) testSessionHelper {
	t.Helper()

	mockCtrl := gomock.NewController(t)
	mockService := mock.NewMockSessionService(mockCtrl)

	app := echo.New()
	app.Pre(echomiddleware.RemoveTrailingSlash())
	New(app.Group("/api/v1"), mockService)

	return testSessionHelper{
		router:      app,
		mockCtrl:    mockCtrl,
		mockService: mockService,
	}
}

func sampleView(errMsg string) models.SessionView {
	return models.SessionView{
		User: &models.UserInfo{
			FullName: "Ana Lopez",
		},
		Accounts: []models.Account{
			{
				AccountNumber: 1000000001,
				Alias:         "Main",
				Currency:      "USD",
				Balance:       models.MustDecimal("500"),
			},
		},
		Error: errMsg,
	}
}

func Test_Handler_session(t *testing.T) {
	type mockData struct {
		wantCode     int
		wantContains []string
	}
	tests := []struct {
		name      string
		method    string
		urlCalled string
		mockData  mockData
		doMock    func(h testSessionHelper)
	}{
		{
			name:      "get session",
			method:    http.MethodGet,
			urlCalled: "/api/v1/session",
			mockData: mockData{
				wantCode:     http.StatusOK,
				wantContains: []string{`"full_name":"Ana Lopez"`, `"account_number":1000000001`, `"balance":500`},
			},
			doMock: func(h testSessionHelper) {
				h.mockService.EXPECT().View().Return(sampleView(""))
			},
		},
		{
			name:      "refresh session",
			method:    http.MethodPost,
			urlCalled: "/api/v1/session/refresh",
			mockData: mockData{
				wantCode:     http.StatusOK,
				wantContains: []string{`"full_name":"Ana Lopez"`},
			},
			doMock: func(h testSessionHelper) {
				gomock.InOrder(
					h.mockService.EXPECT().Load(gomock.Any()).Return(nil),
					h.mockService.EXPECT().View().Return(sampleView("")),
				)
			},
		},
		{
			name:      "refresh failure is reported in the view",
			method:    http.MethodPost,
			urlCalled: "/api/v1/session/refresh/",
			mockData: mockData{
				wantCode:     http.StatusOK,
				wantContains: []string{`"error":"directory unavailable"`, `"full_name":"Ana Lopez"`},
			},
			doMock: func(h testSessionHelper) {
				gomock.InOrder(
					h.mockService.EXPECT().Load(gomock.Any()).Return(assert.AnError),
					h.mockService.EXPECT().View().Return(sampleView("directory unavailable")),
				)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHelper := sessionTestHelper(t)
			if tt.doMock != nil {
				tt.doMock(testHelper)
			}

			req := httptest.NewRequest(tt.method, tt.urlCalled, nil)
			rec := httptest.NewRecorder()
			testHelper.router.ServeHTTP(rec, req)

			resp := rec.Result()
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			require.Equal(t, tt.mockData.wantCode, resp.StatusCode)
			for _, want := range tt.mockData.wantContains {
				assert.True(t, strings.Contains(string(body), want), "%s not in %s", want, body)
			}
		})
	}
}
