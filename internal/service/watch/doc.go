// Package watch follows the server's snapshot stream for daylight-ctl.
//
// Each distinct snapshot becomes one line on the output. Broken streams are
// re-opened after a fixed interval until the context is canceled.
package watch
