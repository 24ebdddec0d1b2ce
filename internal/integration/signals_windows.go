//go:build windows

package integration

import (
	"os"
	"syscall"
)

func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM}
}

func sendSIGTERM(p *os.Process) error { return p.Signal(syscall.SIGTERM) }
func sendSIGQUIT(p *os.Process) error { return p.Signal(syscall.SIGTERM) }
