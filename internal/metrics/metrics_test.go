package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestService_Counters(t *testing.T) {
	t.Parallel()

	m := New()

	m.AlarmArmed()
	m.AlarmArmed()
	m.AlarmTriggered()
	require.InDelta(t, 2, testutil.ToFloat64(m.alarmsArmed), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.alarmsTriggered), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.alarmPlaying), 0)

	m.AlarmStopped("timeout")
	require.InDelta(t, 1, testutil.ToFloat64(m.alarmStops.WithLabelValues("timeout")), 0)
	require.InDelta(t, 0, testutil.ToFloat64(m.alarmStops.WithLabelValues("manual")), 0)
	require.InDelta(t, 0, testutil.ToFloat64(m.alarmPlaying), 0)

	m.CountdownStarted()
	m.CountdownFinished()
	m.StopwatchStarted()
	m.StopwatchLapped()
	m.StopwatchLapped()
	require.InDelta(t, 1, testutil.ToFloat64(m.countdownsStarted), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.countdownsDone), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.stopwatchStarts), 0)
	require.InDelta(t, 2, testutil.ToFloat64(m.stopwatchLaps), 0)

	m.RPCHandled("ArmAlarm", "OK")
	require.InDelta(t, 1, testutil.ToFloat64(m.rpcRequests.WithLabelValues("ArmAlarm", "OK")), 0)
}

func TestService_Handler(t *testing.T) {
	t.Parallel()

	m := New()
	m.AlarmArmed()

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "daylight_alarms_armed_total 1")
	require.Contains(t, string(body), "go_goroutines")
}

func TestService_SeparateRegistries(t *testing.T) {
	t.Parallel()

	// Each service owns its registry, so creating two never panics on duplicate registration.
	first, second := New(), New()
	first.AlarmArmed()

	require.InDelta(t, 1, testutil.ToFloat64(first.alarmsArmed), 0)
	require.InDelta(t, 0, testutil.ToFloat64(second.alarmsArmed), 0)
	require.NotSame(t, first.Registry(), second.Registry())
}
