// Package alarm contains core domain types for the alarm business logic.
//
// It defines TimeOfDay and its parser for user-entered alarm times, Actor (who
// armed the alarm) and State (the alarm at a point in time) with Clone helpers
// to avoid leaking internal references.
package alarm
