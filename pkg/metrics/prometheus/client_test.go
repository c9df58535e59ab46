package prometheus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightsim-go/simconnect/pkg/metrics"
)

func TestNewClientMetricsNilWhenDisabled(t *testing.T) {
	metrics.Reset()
	assert.Nil(t, NewClientMetrics())
}

func TestNewClientMetricsRecordsWithoutPanicking(t *testing.T) {
	metrics.Reset()
	metrics.InitRegistry()
	defer metrics.Reset()

	m := NewClientMetrics()
	require.NotNil(t, m)

	assert.NotPanics(t, func() {
		m.RecordDispatch(time.Millisecond, true)
		m.RecordMessage("SIMOBJECT_DATA")
		m.RecordRequestStart("simobject")
		m.RecordRequestEnd("simobject", 5*time.Millisecond, "ok")
		m.RecordException(0x38)
		m.SetActiveRequests(3)
		m.SetConnectionState(true)
		m.RecordReconnect("ok")
	})
}

func TestNilClientMetricsIsSafeToCall(t *testing.T) {
	var m *clientMetrics
	assert.NotPanics(t, func() {
		m.RecordDispatch(time.Millisecond, false)
		m.RecordMessage("EVENT")
		m.RecordRequestStart("event")
		m.RecordRequestEnd("event", time.Millisecond, "ok")
		m.RecordException(1)
		m.SetActiveRequests(0)
		m.SetConnectionState(false)
		m.RecordReconnect("error")
	})
}

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "0x38", formatCode(0x38))
	assert.Equal(t, "0x0", formatCode(0))
}
