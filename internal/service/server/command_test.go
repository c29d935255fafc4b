package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	control "github.com/oshokin/daylight/internal/api/grpc/control"
	"github.com/oshokin/daylight/internal/config"
	"github.com/oshokin/daylight/internal/service/common"
)

// freeAddress reserves a loopback port and releases it for the server under test.
func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

func TestResolveListenAddress(t *testing.T) {
	t.Parallel()

	addr, err := resolveListenAddress("127.0.0.1:50061", "")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:50061", addr)

	addr, err = resolveListenAddress("127.0.0.1:50061", ":9090")
	require.NoError(t, err)
	require.Equal(t, ":9090", addr)

	_, err = resolveListenAddress("", "")
	require.ErrorIs(t, err, ErrNoServerAddress)

	_, err = resolveListenAddress("nowhere", "")
	require.Error(t, err)
}

// TestRun_ServesControlAndStatus starts the real server and exercises gRPC and HTTP.
func TestRun_ServesControlAndStatus(t *testing.T) {
	t.Parallel()

	grpcAddress := freeAddress(t)
	httpAddress := freeAddress(t)

	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")

	settings := config.Default()
	settings.ServerAddress = grpcAddress
	settings.HTTPAddress = httpAddress
	require.NoError(t, config.Save(cfgPath, settings))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result := make(chan error, 1)

	go func() {
		result <- Run(ctx, &Options{ConfigPath: cfgPath})
	}()

	c, err := common.Dial(ctx, grpcAddress, common.WithCallTimeout(3*time.Second))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	// Wait until the server accepts calls.
	require.Eventually(t, func() bool {
		_, err := c.Snapshot(ctx)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	message, err := c.ConfigureCountdown(ctx, 0, 0, 42)
	require.NoError(t, err)

	view, err := control.Decode(message)
	require.NoError(t, err)
	require.Equal(t, 42, view.Countdown.RemainingSeconds)

	response, err := http.Get(fmt.Sprintf("http://%s/healthz", httpAddress)) //nolint:noctx // Test request.
	require.NoError(t, err)
	require.NoError(t, response.Body.Close())
	require.Equal(t, http.StatusOK, response.StatusCode)

	cancel()

	select {
	case err = <-result:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_InvalidSettings(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("server_addr: \"\"\n"), 0o600))

	require.Error(t, Run(t.Context(), &Options{ConfigPath: cfgPath}))
}

// TestRun_HTTPListenFailureReleasesGRPC checks that a busy HTTP address fails Run and frees the gRPC port.
func TestRun_HTTPListenFailureReleasesGRPC(t *testing.T) {
	t.Parallel()

	grpcAddress := freeAddress(t)

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() {
		_ = busy.Close()
	}()

	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")

	settings := config.Default()
	settings.ServerAddress = grpcAddress
	settings.HTTPAddress = busy.Addr().String()
	require.NoError(t, config.Save(cfgPath, settings))

	require.Error(t, Run(t.Context(), &Options{ConfigPath: cfgPath}))

	l, err := net.Listen("tcp", grpcAddress)
	require.NoError(t, err)
	require.NoError(t, l.Close())
}
