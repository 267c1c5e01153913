// cmd/toyotomi-bridge/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/tamzrod/toyotomi-remote/internal/bridge"
	"github.com/tamzrod/toyotomi-remote/internal/config"
	"github.com/tamzrod/toyotomi-remote/internal/httpapi"
	"github.com/tamzrod/toyotomi-remote/internal/lircdev"
	"github.com/tamzrod/toyotomi-remote/internal/poller"
	"github.com/tamzrod/toyotomi-remote/internal/pulse"
	"github.com/tamzrod/toyotomi-remote/internal/remote"
	"github.com/tamzrod/toyotomi-remote/internal/sysfsgpio"
	"github.com/tamzrod/toyotomi-remote/internal/writer"
	wmodbus "github.com/tamzrod/toyotomi-remote/internal/writer/modbus"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: toyotomi-bridge <config.yaml>")
		os.Exit(2)
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config validation failed: %v\n", err)
		os.Exit(1)
	}
	config.Normalize(cfg)

	logger := newLogger(cfg.Bridge.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("bridge stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("bridge stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	// already validated
	_ = lvl.UnmarshalText([]byte(level))

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}()

	// --------------------
	// Status memory (shared, optional)
	// --------------------

	var statusClient *wmodbus.EndpointClient
	for _, u := range cfg.Bridge.Units {
		if u.Status == nil {
			continue
		}
		c, err := writer.BuildEndpointClient(cfg.Bridge.StatusMemory)
		if err != nil {
			return fmt.Errorf("status memory: %w", err)
		}
		statusClient = c
		closers = append(closers, c.Close)
		logger.Info("status memory connected", "endpoint", c.Endpoint().String())
		break
	}

	// --------------------
	// Build per-unit pipelines
	// --------------------

	var (
		runners  []*bridge.Runner
		apiUnits []httpapi.Unit
	)

	for _, unit := range cfg.Bridge.Units {
		ulog := logger.With("unit", unit.ID)

		// ---- transmitter ----
		driver, closeDriver, err := buildDriver(unit.Transmitter)
		if err != nil {
			return fmt.Errorf("unit %s: %w", unit.ID, err)
		}
		closers = append(closers, closeDriver)

		// ---- controller ----
		rc, err := unit.Remote.Build()
		if err != nil {
			return fmt.Errorf("unit %s: %w", unit.ID, err)
		}
		ctrl := remote.New(rc, pulse.NewTransmitter(driver, ulog), ulog)

		// ---- desired-state poller (optional) ----
		var p *poller.Poller
		if unit.Source != nil {
			built, closePoller, err := poller.Build(unit, bridge.DesiredRegisters, ulog)
			if err != nil {
				return fmt.Errorf("unit %s: poller: %w", unit.ID, err)
			}
			p = built
			closers = append(closers, closePoller)
		}

		// ---- status writer (optional) ----
		var sw writer.StatusWriter
		if plan := writer.BuildStatusPlan(unit, cfg.Bridge.StatusMemory); plan != nil && statusClient != nil {
			sw, _ = writer.NewDeviceStatusWriter(plan, statusClient)
		}

		runners = append(runners, bridge.NewRunner(unit.ID, ctrl, p, sw, ulog))
		apiUnits = append(apiUnits, httpapi.Unit{ID: unit.ID, Controller: ctrl})

		ulog.Info("unit ready",
			"driver", unit.Transmitter.Driver,
			"source", unit.Source != nil,
			"status", sw != nil)
	}

	var wg sync.WaitGroup
	for _, r := range runners {
		wg.Add(1)
		go func(r *bridge.Runner) {
			defer wg.Done()
			r.Run(ctx)
		}(r)
	}

	// --------------------
	// HTTP surface (optional)
	// --------------------

	errc := make(chan error, 1)
	if listen := cfg.Bridge.HTTP.Listen; listen != "" {
		srv := &http.Server{
			Addr:              listen,
			Handler:           httpapi.New(apiUnits, logger.With("component", "http")).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			logger.Info("http listening", "addr", listen)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("http: %w", err)
			}
		}()

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// --------------------
	// Block until signalled
	// --------------------

	var err error
	select {
	case <-ctx.Done():
	case err = <-errc:
	}

	// runners return only once their pollers are idle; closers run after
	cancel()
	wg.Wait()
	return err
}

func buildDriver(t config.TransmitterConfig) (pulse.Driver, func() error, error) {
	switch t.Driver {
	case config.DriverDump:
		return pulse.NewDumpDriver(os.Stdout), func() error { return nil }, nil
	case config.DriverGPIO:
		pin, err := sysfsgpio.Open(*t.GPIOLine)
		if err != nil {
			return nil, nil, err
		}
		drv := pulse.NewGPIODriver(pulse.GPIOConfig{
			Pin:      pin,
			Critical: sysfsgpio.Critical,
		})
		return drv, pin.Close, nil
	default:
		dev, err := lircdev.Open(lircdev.Config{Path: t.Device, DutyCycle: t.DutyCycle})
		if err != nil {
			return nil, nil, err
		}
		return dev, dev.Close, nil
	}
}
