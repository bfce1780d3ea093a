// vumeterd samples CPU, disk and network counters and drives an analog
// VU meter display over a serial link.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/gommon/log"

	"github.com/akorpi/perf-vumeter/internal/config"
	"github.com/akorpi/perf-vumeter/internal/gauge"
	"github.com/akorpi/perf-vumeter/internal/meter"
	"github.com/akorpi/perf-vumeter/internal/sampler"
	"github.com/akorpi/perf-vumeter/internal/stats"
	"github.com/akorpi/perf-vumeter/internal/sysinfo"
)

const version = "1.2.0"

func main() {
	cfg, err := config.FromFlags("vumeterd", os.Args[1:])
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	logger := log.New("vumeterd")
	logger.SetHeader("${time_rfc3339} ${level}")
	logger.SetLevel(cfg.LogLevel())

	if cfg.List {
		if err := printInventory(os.Stdout); err != nil {
			logger.Fatal(err)
		}
		return
	}

	if err := config.Validate(cfg); err != nil {
		logger.Fatal(err)
	}

	if err := run(cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal(err)
	}
}

func run(cfg config.Config, logger *log.Logger) error {
	logger.Infof("starting up vumeterd v%s...", version)
	if banner, err := sysinfo.Banner(); err == nil {
		logger.Debugf("host: %s", banner)
	}

	if ok, err := sysinfo.HasInterface(cfg.Interface); err == nil && !ok {
		names, _ := sysinfo.Interfaces()
		return fmt.Errorf("interface %q not found, have: %v", cfg.Interface, names)
	}

	logger.Infof("opening serial port %s", cfg.Port)
	m, err := meter.Open(cfg.Port)
	if err != nil {
		return err
	}
	defer m.Close()

	logger.Info("vu sez hi (:")
	if err := m.Hello(gauge.NumChannels); err != nil {
		return err
	}

	// constructors seed each source's rate state with a throwaway read
	cpu, err := stats.NewCPUStats()
	if err != nil {
		return err
	}
	dsk, err := stats.NewDiskStats()
	if err != nil {
		return err
	}
	rx, err := stats.NewIfStats(cfg.Interface, stats.Rx)
	if err != nil {
		return err
	}
	tx, err := stats.NewIfStats(cfg.Interface, stats.Tx)
	if err != nil {
		return err
	}

	s, err := sampler.New(sampler.Config{
		Interval: cfg.Interval(),
		MaxMbps:  cfg.MaxMbps,
	}, cpu, dsk, rx, tx, m, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("starting measure loop: %d cpus, %d Hz, interface %s",
		cpu.NumCPU(), cfg.SampleRate, cfg.Interface)
	return s.Run(ctx)
}

func printInventory(w io.Writer) error {
	ifaces, err := sysinfo.Interfaces()
	if err != nil {
		return err
	}
	devs, err := sysinfo.BlockDevices()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "interfaces:")
	for _, n := range ifaces {
		fmt.Fprintf(w, "  %s\n", n)
	}
	fmt.Fprintln(w, "block devices:")
	for _, n := range devs {
		fmt.Fprintf(w, "  %s\n", n)
	}
	return nil
}
