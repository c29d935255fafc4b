package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	control "github.com/oshokin/daylight/internal/api/grpc/control"
	"github.com/oshokin/daylight/internal/config"
	"github.com/oshokin/daylight/internal/service/client"
	"github.com/oshokin/daylight/internal/service/common"
	"github.com/oshokin/daylight/internal/service/server"
	"github.com/oshokin/daylight/internal/service/watch"
)

// lockedBuffer collects output written from another goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// reserveAddress returns a free loopback address.
func reserveAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

// startServer runs daylight-server with a temporary config and waits until it answers.
// Returns the config path.
func startServer(t *testing.T, grpcAddress, httpAddress string) string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")

	settings := config.Default()
	settings.ServerAddress = grpcAddress
	settings.HTTPAddress = httpAddress
	settings.Timeout = 3 * time.Second
	require.NoError(t, config.Save(cfgPath, settings))

	done := make(chan struct{})

	go func() {
		defer close(done)

		_ = server.Run(ctx, &server.Options{ConfigPath: cfgPath}) //nolint:errcheck // Failures surface as dial errors below.
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	c, err := common.Dial(ctx, grpcAddress, common.WithCallTimeout(time.Second))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	require.Eventually(t, func() bool {
		_, err := c.Snapshot(ctx)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	return cfgPath
}

// TestControlFlow drives a real server the way daylight-ctl does and follows it with watch.
func TestControlFlow(t *testing.T) {
	t.Parallel()

	grpcAddress := reserveAddress(t)
	httpAddress := reserveAddress(t)
	cfgPath := startServer(t, grpcAddress, httpAddress)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var watched lockedBuffer

	watchDone := make(chan error, 1)

	go func() {
		watchDone <- watch.Run(ctx, &watch.Options{ConfigPath: cfgPath, Output: &watched})
	}()

	run := func(action client.Action) string {
		var out bytes.Buffer

		require.NoError(t, client.Run(ctx, &client.Options{ConfigPath: cfgPath, Output: &out}, action))

		return out.String()
	}

	out := run(func(ctx context.Context, c *common.Client) (*structpb.Struct, error) {
		return c.ConfigureCountdown(ctx, 0, 2, 5)
	})
	require.Contains(t, out, "Timer      00:02:05 of 00:02:05, stopped")

	out = run(func(ctx context.Context, c *common.Client) (*structpb.Struct, error) {
		return c.StartStopwatch(ctx)
	})
	require.Contains(t, out, "Stopwatch  ")
	require.Contains(t, out, "running")

	require.Eventually(t, func() bool {
		return strings.Contains(watched.String(), "timer=00:02:05/false")
	}, 5*time.Second, 20*time.Millisecond)

	// The HTTP snapshot reflects the same session.
	response, err := http.Get(fmt.Sprintf("http://%s/api/v1/snapshot", httpAddress)) //nolint:noctx // Test request.
	require.NoError(t, err)

	var body struct {
		Countdown struct {
			ConfiguredSeconds int `json:"configured_seconds"`
		} `json:"countdown"`
	}

	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))
	require.NoError(t, response.Body.Close())
	require.Equal(t, 125, body.Countdown.ConfiguredSeconds)

	cancel()
	require.NoError(t, <-watchDone)
}

// TestControlErrors checks the status codes a client sees for rejected commands.
func TestControlErrors(t *testing.T) {
	t.Parallel()

	grpcAddress := reserveAddress(t)
	startServer(t, grpcAddress, "")

	ctx := context.Background()

	c, err := common.Dial(ctx, grpcAddress, common.WithCallTimeout(3*time.Second))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	_, err = c.ArmAlarm(ctx, "not a time")
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.ConfigureCountdown(ctx, 0, 0, 30)
	require.NoError(t, err)

	_, err = c.StartCountdown(ctx)
	require.NoError(t, err)

	_, err = c.ConfigureCountdown(ctx, 0, 0, 10)
	require.Equal(t, codes.FailedPrecondition, status.Code(err))

	message, err := c.StopCountdown(ctx)
	require.NoError(t, err)

	view, err := control.Decode(message)
	require.NoError(t, err)
	require.False(t, view.Countdown.Running)
}
