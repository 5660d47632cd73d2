// Package compiler runs the build lifecycle the handlers emit into.
//
// A build has two phases. During emission every queued artifact is written
// in the order it was emitted, so a later artifact with the same destination
// replaces an earlier one. After emission the registered hooks run as
// awaited tasks; the build finishes only when all of them have returned and
// fails with the first hook error.
package compiler
