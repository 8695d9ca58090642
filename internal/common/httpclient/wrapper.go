package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lafise/go-fp-transfer/internal/common/logger"
	"github.com/lafise/go-fp-transfer/internal/common/metrics"

	"github.com/go-resty/resty/v2"
)

type RequestWrapper struct {
	client      *resty.Client
	metrics     metrics.Metrics
	serviceName string
	logPrefix   string
}

func NewRequestWrapper(client *resty.Client, metrics metrics.Metrics, serviceName, logPrefix string) *RequestWrapper {
	return &RequestWrapper{
		client:      client,
		metrics:     metrics,
		serviceName: serviceName,
		logPrefix:   logPrefix,
	}
}

// DoRequest sends one request. endpoint is the path relative to the client base url,
// groupEndpoint is the low-cardinality label used for metrics.
// Transport failures are returned as "failed to fetch <endpoint>: <cause>".
func (w *RequestWrapper) DoRequest(ctx context.Context, method, endpoint, groupEndpoint string, reqFunc func(*resty.Request) *resty.Request) (*resty.Response, error) {
	startTime := time.Now()

	logFields := []logger.Field{
		logger.String("endpoint", endpoint),
		logger.String("method", method),
	}

	logger.Info(ctx, w.logPrefix, append(logFields, logger.String("message", "send request"))...)

	req := w.client.R().SetContext(ctx)
	if reqFunc != nil {
		req = reqFunc(req)
	}

	var httpRes *resty.Response
	var err error

	switch method {
	case http.MethodGet:
		httpRes, err = req.Get(endpoint)
	case http.MethodPost:
		httpRes, err = req.Post(endpoint)
	case http.MethodPut:
		httpRes, err = req.Put(endpoint)
	case http.MethodPatch:
		httpRes, err = req.Patch(endpoint)
	case http.MethodDelete:
		httpRes, err = req.Delete(endpoint)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	if err != nil {
		logger.Warn(ctx, w.logPrefix, append(logFields, logger.Err(err))...)
		if w.metrics != nil {
			w.metrics.GetHTTPClientPrometheus().RecordTransportError(w.serviceName, method, groupEndpoint)
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}

	if w.metrics != nil {
		w.metrics.GetHTTPClientPrometheus().Record(
			time.Since(startTime),
			w.serviceName,
			method,
			groupEndpoint,
			httpRes.StatusCode(),
		)
	}

	logFields = append(logFields,
		logger.String("httpStatusCode", httpRes.Status()),
		logger.Duration("elapsed", time.Since(startTime)),
	)

	if httpRes.StatusCode() < 200 || httpRes.StatusCode() >= 300 {
		logger.Warn(ctx, w.logPrefix, append(logFields, logger.String("httpResponse", string(httpRes.Body())))...)
	} else {
		logger.Info(ctx, w.logPrefix, logFields...)
	}

	return httpRes, nil
}
