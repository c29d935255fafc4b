// Package sound provides alarm playback as a scoped resource.
//
// A Player starts a looping Playback; stopping it always releases the
// underlying process or writer before Stop returns, whichever path ends it.
package sound
