package monitoring

import (
	"context"
	"testing"

	"github.com/lafise/go-fp-transfer/internal/common/logger"

	"github.com/stretchr/testify/assert"
)

func Test_getSegmentName(t *testing.T) {
	tests := []struct {
		name         string
		fullFuncName string
		want         string
	}{
		{
			name:         "pointer receiver",
			fullFuncName: "github.com/lafise/go-fp-transfer/internal/services.(*Wizard).Submit",
			want:         "services.Wizard.Submit",
		},
		{
			name:         "value receiver",
			fullFuncName: "github.com/lafise/go-fp-transfer/internal/services.history.Recent",
			want:         "services.history.Recent",
		},
		{
			name:         "function",
			fullFuncName: "github.com/lafise/go-fp-transfer/internal/services.Convert",
			want:         "services.Convert",
		},
		{
			name:         "main.main",
			fullFuncName: "main.main",
			want:         "main.main",
		},
		{
			name:         "stdlib",
			fullFuncName: "net/http.(*Server).Serve",
			want:         "http.Server.Serve",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getSegmentName(tt.fullFuncName))
		})
	}
}

func Test_layerFromFile(t *testing.T) {
	assert.Equal(t, LayerService, layerFromFile("/src/internal/services/wizard.go"))
	assert.Equal(t, LayerDelivery, layerFromFile("/src/internal/deliveries/http/transfer.go"))
	assert.Equal(t, LayerClient, layerFromFile("/src/internal/common/directory/client.go"))
	assert.Equal(t, LayerUnknown, layerFromFile("/src/cmd/api/main.go"))
}

func TestMonitor_FinishWithoutTransaction(t *testing.T) {
	logger.InitForTest()

	m := New(context.Background(), WithLayer(LayerService), WithSegmentName("services.Test"))
	assert.Equal(t, LayerService, m.layer)
	assert.NotPanics(t, func() {
		m.Finish(WithFinishCheckError(assert.AnError))
		m.Finish()
	})
}
