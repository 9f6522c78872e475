package main

import (
	"github.com/carlmjohnson/exitcode"
)

// Exit codes for the md2pdf CLI: 0 on success, 1 on any fatal
// configuration, resolution, or usage error. A failed pandoc run
// propagates the child's own exit status instead.
const (
	ExitSuccess = 0
	ExitError   = 1
)

// exitCodeFor returns the process exit status for an error. Errors
// carrying a child exit code (set in the pandoc runner) surface that
// code; everything else maps to ExitError.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return exitcode.Get(err)
}
