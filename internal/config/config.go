// Package config assembles the immutable runtime record consumed by
// the rest of the program.
package config

import (
	"time"

	"github.com/labstack/gommon/log"
)

// Config is built once at startup from defaults, an optional YAML file
// and command line flags, in that order. It is never mutated afterwards.
type Config struct {
	// Port is the serial device the meter display is attached to.
	Port string `yaml:"port"`

	// Interface is the network interface whose byte counters are metered.
	Interface string `yaml:"interface"`

	// SampleRate is the steady-state sampling frequency in Hz.
	SampleRate int `yaml:"sample_rate"`

	// MaxMbps is the network throughput that reaches full deflection.
	MaxMbps int `yaml:"max_mbps"`

	Verbose bool `yaml:"verbose"`
	Debug   bool `yaml:"debug"`

	// List makes the program print discoverable interfaces and block
	// devices instead of starting the loop. Flag-only.
	List bool `yaml:"-"`
}

func Default() Config {
	return Config{
		Port:       "/dev/VUmeter",
		Interface:  "br0",
		SampleRate: 5,
		MaxMbps:    100,
	}
}

// Interval is the sampling period derived from SampleRate.
func (c Config) Interval() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.SampleRate)
}

// LogLevel maps the verbosity switches to a log level.
func (c Config) LogLevel() log.Lvl {
	switch {
	case c.Debug:
		return log.DEBUG
	case c.Verbose:
		return log.INFO
	default:
		return log.ERROR
	}
}
