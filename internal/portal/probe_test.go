package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gradefetch-backend/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func TestProbe(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		reachable bool
	}{
		{name: "ok", status: http.StatusOK, reachable: true},
		{name: "not found", status: http.StatusNotFound, reachable: true},
		{name: "server error", status: http.StatusServiceUnavailable, reachable: false},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/Login.aspx", r.URL.Path)
				w.WriteHeader(test.status)
			}))
			defer server.Close()

			tel := &telemetry.RecordingAPI{}
			prober := NewProber(Config{LoginURL: server.URL + "/Login.aspx"}, tel)

			result := prober.Probe(context.Background())
			require.Equal(t, test.reachable, result.Reachable)
			require.Equal(t, test.status, result.StatusCode)
			require.NotEmpty(t, result.Latency)
			require.NotEmpty(t, tel.Reports("debug"))
		})
	}
}

func TestProbeUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	tel := &telemetry.RecordingAPI{}
	result := NewProber(Config{LoginURL: url}, tel).Probe(context.Background())

	require.False(t, result.Reachable)
	require.Zero(t, result.StatusCode)
	require.Len(t, tel.Reports("broken"), 1)
}
