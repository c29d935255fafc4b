// Package countdown implements the countdown timer engine.
package countdown
