package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/daylight/internal/clock"
	"github.com/oshokin/daylight/internal/metrics"
	"github.com/oshokin/daylight/internal/service/session"
	"github.com/oshokin/daylight/internal/version"
)

func newTestRouter(t *testing.T) (http.Handler, *session.Session) {
	t.Helper()

	m := metrics.New()
	fake := clock.NewFake(time.Date(2025, time.March, 3, 18, 30, 0, 0, time.Local))
	s := session.New(t.Context(), session.Options{Clock: fake, Metrics: m})

	t.Cleanup(s.Close)

	return newRouter(t.Context(), s, m), s
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))

	return recorder
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	recorder := get(t, router, "/healthz")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	var body struct {
		Status string       `json:"status"`
		Build  version.Info `json:"build"`
	}

	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, "ok", body.Status)
	require.Equal(t, version.Short(), body.Build.Version)
}

func TestRouter_KeepsRequestID(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	request.Header.Set("X-Request-ID", "abc-123")
	router.ServeHTTP(recorder, request)

	require.Equal(t, "abc-123", recorder.Header().Get("X-Request-ID"))
}

func TestRouter_Snapshot(t *testing.T) {
	t.Parallel()

	router, s := newTestRouter(t)

	_, err := s.Alarm().ArmString(t.Context(), "19:00", nil)
	require.NoError(t, err)

	recorder := get(t, router, "/api/v1/snapshot")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Digital string `json:"digital"`
		Theme   string `json:"theme"`
		Alarm   struct {
			Status string `json:"status"`
			Target string `json:"target"`
		} `json:"alarm"`
	}

	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, "18:30:00", body.Digital)
	require.Equal(t, "dark", body.Theme)
	require.Equal(t, "armed", body.Alarm.Status)
	require.Equal(t, "19:00", body.Alarm.Target)
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	router, s := newTestRouter(t)

	_, err := s.Alarm().ArmString(t.Context(), "19:00", nil)
	require.NoError(t, err)

	recorder := get(t, router, "/metrics")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), "daylight_alarms_armed_total 1")
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	require.Equal(t, http.StatusNotFound, get(t, router, "/nope").Code)
}
