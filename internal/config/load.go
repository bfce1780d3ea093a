package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file on top of the given base config.
func Load(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// FromFlags builds the runtime config from defaults, the optional
// -config file and flag overrides. Explicit flags win over the file.
func FromFlags(name string, args []string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfgPath := fs.String("config", "", "YAML config file")
	port := fs.String("port", cfg.Port, "serial device of the meter display")
	iface := fs.String("interface", cfg.Interface, "network interface to meter")
	rate := fs.Int("rate", cfg.SampleRate, "sample rate in Hz")
	maxMbps := fs.Int("max-mbps", cfg.MaxMbps, "network rate reaching full deflection, Mbps")
	verbose := fs.Bool("v", false, "info logging")
	debug := fs.Bool("d", false, "debug logging")
	list := fs.Bool("list", false, "list interfaces and block devices, then exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *cfgPath != "" {
		loaded, err := Load(*cfgPath, cfg)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = *port
		case "interface":
			cfg.Interface = *iface
		case "rate":
			cfg.SampleRate = *rate
		case "max-mbps":
			cfg.MaxMbps = *maxMbps
		case "v":
			cfg.Verbose = *verbose
		case "d":
			cfg.Debug = *debug
		}
	})
	cfg.List = *list

	return cfg, nil
}
