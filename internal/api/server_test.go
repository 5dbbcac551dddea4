package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"path-follower/internal/metrics"
	"path-follower/internal/sim"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	metrics.Init()

	eng := sim.New(sim.Config{OriginLat: 32.0853, OriginLon: 34.7818})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		_ = eng.Run(ctx)
	}()

	srv := httptest.NewServer(NewServer(eng, zap.NewNop()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestState(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st sim.VehicleState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	require.InDelta(t, 32.0853, st.Lat, 1e-6)
}

func TestGoToCommand(t *testing.T) {
	srv := newTestServer(t)

	body := `{"lat": 32.1, "lon": 34.8, "alt": 900, "speed": 40}`
	resp, err := http.Post(srv.URL+"/command/goto", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ack map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	require.Equal(t, "accepted", ack["status"])
	require.Equal(t, "goto", ack["type"])
}

func TestGoToRejectsInvalidJSON(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/command/goto", "application/json", strings.NewReader("{nope"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrbitRequiresRadius(t *testing.T) {
	srv := newTestServer(t)

	body := `{"lat": 32.1, "lon": 34.8, "alt": 900}`
	resp, err := http.Post(srv.URL+"/command/orbit", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouteRequiresWaypoints(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/command/route", "application/json", strings.NewReader(`{"waypoints": []}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSegmentCommandAcceptsAnyMode(t *testing.T) {
	srv := newTestServer(t)

	// a known mode name is accepted
	body := `{"segment": {"start": {"X":0,"Y":0,"Z":0}, "end": {"X":100,"Y":0,"Z":-50}, "mode": "FLY_VECTOR"}, "speed": 20}`
	resp, err := http.Post(srv.URL+"/command/segment", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// an unknown mode name is rejected at the schema boundary; the
	// guidance failsafe only covers numeric modes that slip past it
	body = `{"segment": {"mode": "WARP_DRIVE"}}`
	resp2, err := http.Post(srv.URL+"/command/segment", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestHoldAndStop(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/command/hold", "/command/stop"} {
		resp, err := http.Post(srv.URL+path, "application/json", nil)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
