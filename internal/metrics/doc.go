// Package metrics holds the Prometheus metrics of the daylight server.
package metrics
