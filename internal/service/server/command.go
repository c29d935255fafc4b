package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"google.golang.org/grpc"

	control "github.com/oshokin/daylight/internal/api/grpc/control"
	"github.com/oshokin/daylight/internal/config"
	"github.com/oshokin/daylight/internal/logger"
	"github.com/oshokin/daylight/internal/metrics"
	"github.com/oshokin/daylight/internal/service/instance"
	"github.com/oshokin/daylight/internal/service/session"
	"github.com/oshokin/daylight/internal/version"
)

// shutdownTimeout bounds the HTTP server shutdown.
const shutdownTimeout = 5 * time.Second

// Options controls the daylight-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// HTTPAddress overrides the status/metrics address; "-" disables HTTP.
	HTTPAddress string
	// Replace terminates a running instance instead of refusing to start.
	Replace bool
}

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run starts the session, the gRPC control API and the HTTP status endpoint,
// and blocks until the context is canceled or a server fails.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "daylight-server")

	// Load configuration first to get server settings.
	settings, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	closeLog, err := setupLogging(settings)
	if err != nil {
		return err
	}

	defer func() {
		_ = closeLog.Close()
	}()

	if err = guardInstance(ctx, opts.Replace); err != nil {
		return err
	}

	// Determine listen address: CLI argument overrides config port extraction.
	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	httpAddress := settings.HTTPAddress
	if opts.HTTPAddress != "" {
		httpAddress = opts.HTTPAddress
	}

	if httpAddress == "-" {
		httpAddress = ""
	}

	m := metrics.New()

	sess, err := session.FromConfig(ctx, settings, session.Environment{
		Bell:    os.Stdout,
		Metrics: m,
	})
	if err != nil {
		return fmt.Errorf("initialise session: %w", err)
	}

	defer sess.Close()

	sess.Start()

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	// Create and configure gRPC server with the clock service.
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(control.UnaryInterceptor(ctx, m)))
	control.RegisterClockServiceServer(grpcServer, control.NewServer(sess))

	var httpServer *http.Server

	if httpAddress != "" {
		httpServer, err = startHTTP(ctx, httpAddress, sess, m)
		if err != nil {
			grpcServer.Stop()
			_ = lis.Close()

			return err
		}
	}

	logger.InfoKV(ctx, "Daylight server listening",
		"listen_address", listenAddress,
		"http_address", httpAddress,
		"version", version.Short(),
	)

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	// serveCtx also ends when Serve fails, so the shutdown goroutine never outlives Run.
	serveCtx, stopServing := context.WithCancel(ctx)
	defer stopServing()

	done := make(chan struct{})

	go func() {
		<-serveCtx.Done()
		logger.Info(ctx, "Shutting down servers")

		if httpServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Errorf(ctx, "HTTP shutdown: %v", err)
			}

			cancel()
		}

		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		stopServing()
		<-done

		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// setupLogging applies the configured level and, when set, redirects logs to a rotated file.
func setupLogging(settings *config.Config) (io.Closer, error) {
	level, _ := logger.ParseLogLevel(settings.LogLevel)
	logger.SetLevel(level)

	if settings.LogFile == "" {
		return io.NopCloser(nil), nil
	}

	l, closer, err := logger.NewWithFile(settings.LogFile, logger.AtomicLevel())
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger.SetLogger(l)

	return closer, nil
}

// guardInstance refuses to start next to another server, or replaces it when asked.
func guardInstance(ctx context.Context, replace bool) error {
	name, err := instance.ExecutableName()
	if err != nil {
		return err
	}

	guard := instance.New(name)

	if replace {
		return guard.Terminate(ctx)
	}

	return guard.Check()
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise uses the configured address as is,
// so the default loopback binding is kept.
func resolveListenAddress(configAddr, override string) (string, error) {
	// Use override address if provided (e.g., ":9090", "0.0.0.0:8080").
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	// Validate the configured host:port pair.
	if _, _, err := net.SplitHostPort(configAddr); err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	return configAddr, nil
}
