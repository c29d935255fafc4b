// Package server runs daylight-server: a headless session exposed through the
// gRPC ClockService and a gin status endpoint with Prometheus metrics.
package server
