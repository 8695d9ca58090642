// Package monitoring times a unit of work, logs its outcome and, when a newrelic
// transaction is present in the context, records it as a segment.
package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/lafise/go-fp-transfer/internal/common/logger"

	"github.com/newrelic/go-agent/v3/newrelic"
)

const (
	LayerClient   = "common"
	LayerService  = "services"
	LayerDelivery = "deliveries"
	LayerUnknown  = "unknown"
)

var messagePrefix = map[string]string{
	LayerClient:   "[CLIENT]",
	LayerService:  "[SERVICE]",
	LayerDelivery: "[DELIVERY]",
	LayerUnknown:  "[-]",
}

type Monitor struct {
	ctx         context.Context
	segmentName string
	layer       string
	start       time.Time
	segment     *newrelic.Segment
}

type initOptions struct {
	layer       string
	segmentName string
}

type InitOption func(*initOptions)

func WithLayer(layer string) InitOption {
	return func(o *initOptions) {
		o.layer = layer
	}
}

func WithSegmentName(segmentName string) InitOption {
	return func(o *initOptions) {
		o.segmentName = segmentName
	}
}

// New starts a monitor. Without options the segment name and layer are taken from the caller.
func New(ctx context.Context, opts ...InitOption) *Monitor {
	fOpts := &initOptions{}
	for _, opt := range opts {
		opt(fOpts)
	}

	if fOpts.segmentName == "" {
		// must stay in New itself, the caller depth is fixed at 1
		pc, file, _, ok := runtime.Caller(1)
		if !ok {
			pc = 0
		}

		fOpts.segmentName = "unknown"
		if fn := runtime.FuncForPC(pc); fn != nil {
			fOpts.segmentName = getSegmentName(fn.Name())
		}

		if fOpts.layer == "" {
			fOpts.layer = layerFromFile(file)
		}
	}
	if fOpts.layer == "" {
		fOpts.layer = LayerUnknown
	}

	txn := newrelic.FromContext(ctx)
	segment := txn.StartSegment(fOpts.segmentName)
	if segment != nil {
		segment.AddAttribute("layer", fOpts.layer)
	}

	return &Monitor{
		ctx:         ctx,
		layer:       fOpts.layer,
		start:       time.Now(),
		segmentName: fOpts.segmentName,
		segment:     segment,
	}
}

type finishOptions struct {
	err    error
	fields []logger.Field
}

type FinishOption func(*finishOptions)

func WithFinishCheckError(err error) FinishOption {
	return func(o *finishOptions) {
		o.err = err
	}
}

func WithFinishFields(fields ...logger.Field) FinishOption {
	return func(o *finishOptions) {
		o.fields = fields
	}
}

// Finish must be deferred through a closure so the named error is read at return time.
func (m *Monitor) Finish(opts ...FinishOption) {
	fOpts := &finishOptions{}
	for _, opt := range opts {
		opt(fOpts)
	}

	fields := append(fOpts.fields,
		logger.String("segment", m.segmentName),
		logger.Duration("processDuration", time.Since(m.start)))

	if fOpts.err != nil {
		fields = append(fields, logger.String("status", "error"), logger.Err(fOpts.err))
		logger.Warn(m.ctx, messagePrefix[m.layer], fields...)
	} else if m.layer == LayerDelivery || m.layer == LayerService {
		// client layer successes are already logged by the request wrapper
		fields = append(fields, logger.String("status", "success"))
		logger.Info(m.ctx, messagePrefix[m.layer], fields...)
	}

	if m.segment != nil {
		m.segment.End()
	}
}

func NewMiddlewareRoundTripper(next http.RoundTripper) http.RoundTripper {
	// nr txn already exists on request.Context(), so no need to pass context
	if next == nil {
		next = http.DefaultTransport
	}

	return newrelic.NewRoundTripper(next)
}

func layerFromFile(file string) string {
	switch {
	case strings.Contains(file, "/"+LayerService+"/"):
		return LayerService
	case strings.Contains(file, "/"+LayerDelivery+"/"):
		return LayerDelivery
	case strings.Contains(file, "/"+LayerClient+"/"):
		return LayerClient
	default:
		return LayerUnknown
	}
}
