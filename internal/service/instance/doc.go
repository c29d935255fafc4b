// Package instance keeps a single daylight server per machine by scanning the process table.
package instance
