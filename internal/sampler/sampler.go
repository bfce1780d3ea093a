// Package sampler runs the fixed-rate sample -> rate -> gauge ->
// display pipeline.
package sampler

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/akorpi/perf-vumeter/internal/gauge"
)

// CPUSource yields per-core busy percentages, aggregate first, cores
// sorted busiest first.
type CPUSource interface {
	Rates() ([]float64, error)
}

// DiskSource yields per-device sector rates, largest first.
type DiskSource interface {
	Rates() ([]float64, error)
}

// NetSource yields the bit rate of one interface direction.
type NetSource interface {
	BitRate() (int64, error)
}

// Display is the channel sink smoothed gauges are written to.
type Display interface {
	Set(channel uint8, value uint8) error
}

// Config is the immutable runtime config of the loop.
type Config struct {
	Interval time.Duration
	MaxMbps  int
}

// Sampler drives one display from its counter sources. There is a
// single thread of control: every source and the smoothing state is
// owned here and never shared.
type Sampler struct {
	cfg      Config
	cpu      CPUSource
	disk     DiskSource
	rx, tx   NetSource
	display  Display
	smoother *gauge.Smoother
	logger   *log.Logger

	// processing time of the previous tick, subtracted from the next
	// sleep so the sample rate does not drift
	elapsed time.Duration
}

// New validates and assembles a Sampler.
func New(cfg Config, cpu CPUSource, disk DiskSource, rx, tx NetSource,
	display Display, logger *log.Logger) (*Sampler, error) {

	if cfg.Interval <= 0 {
		return nil, errors.New("sampler: interval must be > 0")
	}
	if cfg.MaxMbps <= 0 {
		return nil, errors.New("sampler: max mbps must be > 0")
	}
	if cpu == nil || disk == nil || rx == nil || tx == nil || display == nil {
		return nil, errors.New("sampler: all sources and the display are required")
	}

	sm, err := gauge.NewSmoother(gauge.NumChannels, gauge.FullRange)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New("sampler")
		logger.SetLevel(log.OFF)
	}

	return &Sampler{
		cfg:      cfg,
		cpu:      cpu,
		disk:     disk,
		rx:       rx,
		tx:       tx,
		display:  display,
		smoother: sm,
		logger:   logger,
	}, nil
}

// TickOnce runs exactly one sample cycle. Channels are always written
// in CPU, disk, network order; any failure aborts the cycle.
func (s *Sampler) TickOnce() error {
	cpuRates, err := s.cpu.Rates()
	if err != nil {
		return err
	}
	cpuGauge := gauge.CPU(cpuRates)
	s.logger.Debugf("cpu gauge=%.1f rates=%.1f", cpuGauge, cpuRates)
	if err := s.write(gauge.ChannelCPU, cpuGauge); err != nil {
		return err
	}

	diskRates, err := s.disk.Rates()
	if err != nil {
		return err
	}
	diskGauge := gauge.Disk(diskRates)
	s.logger.Debugf("disk gauge=%.1f rates=%.0f", diskGauge, diskRates)
	if err := s.write(gauge.ChannelDisk, diskGauge); err != nil {
		return err
	}

	rxRate, err := s.rx.BitRate()
	if err != nil {
		return err
	}
	txRate, err := s.tx.BitRate()
	if err != nil {
		return err
	}
	netGauge := gauge.Net(rxRate, txRate, s.cfg.MaxMbps)
	s.logger.Debugf("net gauge=%.1f rx=%d kbps tx=%d kbps",
		netGauge, rxRate/1000, txRate/1000)
	return s.write(gauge.ChannelNet, netGauge)
}

func (s *Sampler) write(channel uint8, target float64) error {
	v, err := s.smoother.Next(channel, target)
	if err != nil {
		return err
	}
	return s.display.Set(channel, v)
}

// Run ticks until ctx is cancelled or a tick fails. Each sleep is
// shortened by the previous tick's processing time.
func (s *Sampler) Run(ctx context.Context) error {
	for {
		sleep := s.cfg.Interval - s.elapsed
		if sleep < 0 {
			sleep = 0
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		start := time.Now()
		if err := s.TickOnce(); err != nil {
			return err
		}
		s.elapsed = time.Since(start)
	}
}
