// Package terminal holds the thin console glue around the timer: flushing
// output, waiting for a key press, prompting for a duration and restoring the
// terminal after a crash.
//
// Output goes through plain ANSI sequences; raw mode comes from
// golang.org/x/term and is always restored before returning.
package terminal
