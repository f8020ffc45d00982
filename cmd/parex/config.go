package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/utkarsh5026/parex/policy"
)

// Config is the driver configuration. It is read from a YAML file and
// then overridden by any flag given on the command line.
type Config struct {
	Policies    []policy.Policy `yaml:"policies"`
	Size        int             `yaml:"size"`
	Workers     int             `yaml:"workers"`
	LogLevel    string          `yaml:"log_level"`
	MetricsAddr string          `yaml:"metrics_addr"`

	Fib        []uint  `yaml:"fib"`
	RateLimit  float64 `yaml:"rate_limit"`
	Burst      int     `yaml:"burst"`
	Affinity   bool    `yaml:"affinity"`
	NoProgress bool    `yaml:"no_progress"`
}

var defaultFib = []uint{20, 25, 41, 30, 41, 38, 32, 39, 40}

func defaultConfig() Config {
	return Config{
		Policies: policy.All(),
		Size:     100_000,
		LogLevel: "info",
		Fib:      append([]uint(nil), defaultFib...),
		Burst:    1,
	}
}

// loadConfig decodes the YAML file at path over cfg. Keys missing from the
// file keep their current values.
func loadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

var errInvalidConfig = errors.New("invalid config")

func (c Config) validate() error {
	switch {
	case len(c.Policies) == 0:
		return fmt.Errorf("%w: no policies selected", errInvalidConfig)
	case c.Size < 0:
		return fmt.Errorf("%w: size must not be negative, got %d", errInvalidConfig, c.Size)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", errInvalidConfig, c.Workers)
	case c.RateLimit < 0:
		return fmt.Errorf("%w: rate_limit must not be negative", errInvalidConfig)
	}
	return nil
}

// policyList is a repeatable --policy flag. The first Set replaces the
// defaults; later ones append.
type policyList struct {
	values []policy.Policy
	set    bool
}

func (l *policyList) Set(s string) error {
	var added []policy.Policy
	for _, name := range strings.Split(s, ",") {
		p, err := policy.Parse(name)
		if err != nil {
			return err
		}
		added = append(added, p)
	}
	if !l.set {
		l.values = nil
		l.set = true
	}
	l.values = append(l.values, added...)
	return nil
}

func (l *policyList) String() string {
	names := make([]string, len(l.values))
	for i, p := range l.values {
		names[i] = p.String()
	}
	return strings.Join(names, ",")
}

func (l *policyList) Type() string { return "policy" }
