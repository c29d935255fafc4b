// Package session owns one alarm, one countdown and one stopwatch engine plus
// the theme inputs, and publishes snapshots of all of them to subscribers.
//
// The terminal UI and the gRPC server are both built on a Session.
package session
