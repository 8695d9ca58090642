// Package directory is the REST client of the Account/Transaction Directory.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lafise/go-fp-transfer/internal/common/httpclient"
	"github.com/lafise/go-fp-transfer/internal/common/logger"
	"github.com/lafise/go-fp-transfer/internal/common/metrics"
	"github.com/lafise/go-fp-transfer/internal/config"
	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/monitoring"

	"github.com/go-resty/resty/v2"
)

const (
	SERVICE_NAME = "directory"

	logMessage = "[DIRECTORY-CLIENT]"
)

//go:generate mockgen -source=client.go -destination=mock/mock_client.go -package=mock
type Client interface {
	GetUserInfo(ctx context.Context, userID int) (models.UserInfo, error)
	GetAccount(ctx context.Context, accountNumber string) (models.Account, error)
	GetAccountTransactions(ctx context.Context, accountNumber string) (models.TransactionPage, error)
	CreateTransaction(ctx context.Context, req models.TransactionRequest) (models.SummarizedTransaction, error)
}

type client struct {
	request *httpclient.RequestWrapper
}

func New(configuration config.HTTPConfiguration, metrics metrics.Metrics) Client {
	retryWaitTime := time.Duration(configuration.RetryWaitTime) * time.Millisecond

	restyClient := resty.New()
	restyClient = restyClient.AddRetryCondition(func(r *resty.Response, err error) bool {
		if r == nil {
			return false
		}

		_, shouldRetry := models.RetryableHTTPCodes[r.StatusCode()]
		return shouldRetry
	})

	restyClient = restyClient.
		SetBaseURL(configuration.BaseURL).
		SetTransport(monitoring.NewMiddlewareRoundTripper(restyClient.GetClient().Transport)).
		SetRetryCount(configuration.RetryCount).
		SetRetryWaitTime(retryWaitTime).
		SetTimeout(configuration.Timeout)

	return client{
		request: httpclient.NewRequestWrapper(restyClient, metrics, SERVICE_NAME, logMessage),
	}
}

func (c client) GetUserInfo(ctx context.Context, userID int) (res models.UserInfo, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	endpoint := "/users/" + strconv.Itoa(userID)
	err = c.do(ctx, http.MethodGet, endpoint, "/users/:id", nil, &res)

	return res, err
}

func (c client) GetAccount(ctx context.Context, accountNumber string) (res models.Account, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	endpoint := "/accounts/" + url.PathEscape(accountNumber)
	err = c.do(ctx, http.MethodGet, endpoint, "/accounts/:id", nil, &res)

	return res, err
}

func (c client) GetAccountTransactions(ctx context.Context, accountNumber string) (res models.TransactionPage, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	endpoint := fmt.Sprintf("/accounts/%s/transactions", url.PathEscape(accountNumber))
	err = c.do(ctx, http.MethodGet, endpoint, "/accounts/:id/transactions", nil, &res)

	return res, err
}

func (c client) CreateTransaction(ctx context.Context, req models.TransactionRequest) (res models.SummarizedTransaction, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	req.Amount.Currency = models.NormalizeCurrency(req.Amount.Currency).String()
	err = c.do(ctx, http.MethodPost, "/transactions", "/transactions", req, &res)

	return res, err
}

func (c client) do(ctx context.Context, method, endpoint, groupEndpoint string, body, out interface{}) error {
	httpRes, err := c.request.DoRequest(ctx, method, endpoint, groupEndpoint, func(r *resty.Request) *resty.Request {
		r = r.
			SetHeader("Accept", "application/json").
			SetHeader("Content-Type", "application/json").
			SetHeader("Cache-Control", "no-cache")
		if correlationID := logger.GetCorrelationID(ctx); correlationID != "" {
			r = r.SetHeader("X-Correlation-Id", correlationID)
		}
		if body != nil {
			r = r.SetBody(body)
		}
		return r
	})
	if err != nil {
		return err
	}

	if httpRes.StatusCode() < 200 || httpRes.StatusCode() >= 300 {
		return newAPIError(httpRes.StatusCode(), httpRes.Body())
	}

	if err = json.Unmarshal(httpRes.Body(), out); err != nil {
		return fmt.Errorf("error unmarshal response of %s: %w", endpoint, err)
	}

	return nil
}
