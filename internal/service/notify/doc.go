// Package notify delivers alarm and timer notifications through shoutrrr services
// (ntfy, gotify, telegram, generic webhooks and others).
package notify
