//go:build !windows

package integration

import (
	"os"

	"golang.org/x/sys/unix"
)

func shutdownSignals() []os.Signal {
	return []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGQUIT}
}

func sendSIGTERM(p *os.Process) error { return p.Signal(unix.SIGTERM) }
func sendSIGQUIT(p *os.Process) error { return p.Signal(unix.SIGQUIT) }
