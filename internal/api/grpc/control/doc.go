// Package control implements the gRPC transport of the daylight session.
//
// The daylight.v1.ClockService uses protobuf well-known types as messages:
// commands take Empty, StringValue, BoolValue or Struct, and every call answers
// with the session snapshot encoded as a Struct. The caller identity travels in
// request metadata.
package control
