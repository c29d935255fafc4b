package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	control "github.com/oshokin/daylight/internal/api/grpc/control"
	"github.com/oshokin/daylight/internal/logger"
	"github.com/oshokin/daylight/internal/metrics"
	"github.com/oshokin/daylight/internal/service/session"
	"github.com/oshokin/daylight/internal/version"
)

const readHeaderTimeout = 5 * time.Second

// snapshotSource is the part of the session the HTTP endpoints read.
type snapshotSource interface {
	Snapshot() session.Snapshot
}

// newRouter builds the status router: health, metrics and the JSON snapshot.
func newRouter(ctx context.Context, source snapshotSource, m *metrics.Service) *gin.Engine {
	// Release mode suppresses gin's debug route dump.
	gin.SetMode(gin.ReleaseMode)

	ctx = logger.WithName(ctx, "http")
	started := time.Now()

	r := gin.New()

	// Request ID middleware for correlation.
	r.Use(func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}

		c.Set("request_id", reqID)
		c.Header("X-Request-ID", reqID)
		c.Next()
	})

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorKV(ctx, "Panic recovered",
			"request_id", c.GetString("request_id"),
			"path", c.Request.URL.Path,
			"error", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":      "Internal server error",
			"request_id": c.GetString("request_id"),
		})
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"build":  version.Current(),
			"uptime": time.Since(started).Round(time.Second).String(),
		})
	})

	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api/v1")
	api.GET("/snapshot", func(c *gin.Context) {
		c.JSON(http.StatusOK, control.SnapshotFields(source.Snapshot()))
	})

	return r
}

// startHTTP binds the status endpoint and serves it in the background.
func startHTTP(ctx context.Context, address string, source snapshotSource, m *metrics.Service) (*http.Server, error) {
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", address, err)
	}

	server := &http.Server{
		Handler:           newRouter(ctx, source, m),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		if err := server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "HTTP server stopped: %v", err)
		}
	}()

	return server, nil
}
