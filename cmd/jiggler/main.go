package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/jiggler/internal/cleanup"
	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/cursor"
	"github.com/stigoleg/jiggler/internal/jiggle"
	"github.com/stigoleg/jiggler/internal/ui"
)

const appVersion = "1.0.0"

// Virtual screen used by --dry-run.
const (
	dryRunWidth  = 1920
	dryRunHeight = 1080
)

func main() {
	cfg := config.ParseFlags(appVersion)
	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	shutdown := cleanup.NewManager(cleanup.DefaultTimeout)
	defer shutdown.Execute()

	var logFile io.Closer
	if cfg.Headless {
		log.SetOutput(os.Stderr)
	} else {
		f, err := tea.LogToFile(cfg.LogFile, "debug")
		if err != nil {
			log.Printf("main: open log file: %v", err)
			return 1
		}
		logFile = f
	}

	store := config.NewStore(cfg.Jiggle)
	if cfg.ConfigFile != "" {
		file, err := config.OpenFile(cfg.ConfigFile, cfg.Pinned()...)
		if err != nil {
			log.Printf("main: %v", err)
			return 1
		}
		if err := file.Reload(store); err != nil {
			log.Printf("main: %v", err)
			return 1
		}
		file.Watch(store)
	}

	var drv cursor.Driver
	if cfg.DryRun {
		drv = cursor.NewVirtual(dryRunWidth, dryRunHeight, cfg.CornerSize)
	} else {
		drv = cursor.NewRobot(cfg.CornerSize)
	}

	ctrl := jiggle.NewController(store, drv)
	shutdown.RegisterFunc("controller", func() error {
		return ctrl.StopWithTimeout(jiggle.DefaultStopTimeout)
	})
	if logFile != nil {
		shutdown.RegisterFunc("log file", logFile.Close)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := ctrl.Run(ctx); err != nil {
			log.Printf("main: controller: %v", err)
		}
	}()
	if cfg.Start {
		ctrl.Start()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals()...)
	defer signal.Stop(sigCh)

	if cfg.Headless {
		return runHeadless(ctrl, cfg.Deadline, sigCh)
	}

	model := ui.NewModel(ctrl, store, cfg.Deadline)
	model.SetVersion(appVersion)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithoutSignalHandler())

	go func() {
		for sig := range sigCh {
			if isSuspend(sig) {
				ctrl.Pause()
				continue
			}
			log.Printf("main: received %v", sig)
			ctrl.Stop()
			p.Quit()
			return
		}
	}()

	if _, err := p.Run(); err != nil {
		log.Printf("main: running program: %v", err)
		return 1
	}
	return 0
}

// runHeadless blocks until a shutdown signal, the deadline or the
// controller stopping on its own.
func runHeadless(ctrl *jiggle.Controller, deadline time.Time, sigCh <-chan os.Signal) int {
	var timeout <-chan time.Time
	if !deadline.IsZero() {
		t := time.NewTimer(time.Until(deadline))
		defer t.Stop()
		timeout = t.C
		log.Printf("main: running until %s", deadline.Format("15:04:05"))
	}

	for {
		select {
		case sig := <-sigCh:
			if isSuspend(sig) {
				ctrl.Pause()
				continue
			}
			log.Printf("main: received %v", sig)
			ctrl.Stop()
			return 0
		case <-timeout:
			log.Printf("main: deadline reached")
			ctrl.Stop()
			return 0
		case <-ctrl.Done():
			return 0
		}
	}
}
