// Package client runs one daylight-ctl command against the server.
//
// It connects with the caller identity attached, performs a single ClockService
// call, optionally waiting for the server to come up, and prints the resulting
// snapshot as a summary or as JSON.
package client
