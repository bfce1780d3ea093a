package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("config: port required")
	}
	if cfg.Interface == "" {
		return fmt.Errorf("config: interface required")
	}
	if cfg.SampleRate < 1 || cfg.SampleRate > 100 {
		return fmt.Errorf("config: sample rate %d out of range 1..100", cfg.SampleRate)
	}
	if cfg.MaxMbps < 1 {
		return fmt.Errorf("config: max mbps must be >= 1, got %d", cfg.MaxMbps)
	}
	return nil
}
