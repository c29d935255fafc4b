// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder,
//   - an optional rotating log file (lumberjack) for processes whose stdout is a screen,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and convenience functions (Infof, ErrorKV, etc.).
//
// Services accept a context and extract the logger from it, so every tick,
// transport call and CLI command logs with its component name attached.
package logger
