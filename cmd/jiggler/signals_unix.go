//go:build !windows

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

func shutdownSignals() []os.Signal {
	return []os.Signal{
		unix.SIGINT,
		unix.SIGTERM,
		unix.SIGQUIT,
		unix.SIGHUP,
		unix.SIGTSTP,
	}
}

// isSuspend reports whether sig should pause jiggling instead of exiting.
func isSuspend(sig os.Signal) bool {
	return sig == unix.SIGTSTP
}
