package main

import (
	"fmt"

	"github.com/spf13/viper"

	"telesweep/teleporter"
)

// Config is the orchestration surface: everything the core treats as a
// fixed input. Values come from defaults, then an optional yaml file,
// then flags.
type Config struct {
	DomainMax int    `mapstructure:"domain_max" yaml:"domain_max"`
	Start0    int    `mapstructure:"start0" yaml:"start0"`
	Start1    int    `mapstructure:"start1" yaml:"start1"`
	Target    int    `mapstructure:"target" yaml:"target"`
	Workers   int    `mapstructure:"workers" yaml:"workers"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("domain_max", int(teleporter.MaxWord))
	v.SetDefault("start0", 4)
	v.SetDefault("start1", 1)
	v.SetDefault("target", 6)
	v.SetDefault("workers", 1)
	v.SetDefault("log_level", "info")
}

func loadConfig(v *viper.Viper, path string) (Config, error) {
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (self Config) validate() error {
	if self.DomainMax < 1 || self.DomainMax > int(teleporter.MaxWord) {
		return fmt.Errorf("domain_max must be in [1, %d], got %d", teleporter.MaxWord, self.DomainMax)
	}
	for name, val := range map[string]int{
		"start0": self.Start0,
		"start1": self.Start1,
		"target": self.Target,
	} {
		if val < 0 || val > int(teleporter.MaxWord) {
			return fmt.Errorf("%s must be in [0, %d], got %d", name, teleporter.MaxWord, val)
		}
	}
	if self.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", self.Workers)
	}
	return nil
}

func (self Config) sweepConfig() teleporter.SweepConfig {
	return teleporter.SweepConfig{
		DomainMax: teleporter.Word(self.DomainMax),
		Start0:    teleporter.Word(self.Start0),
		Start1:    teleporter.Word(self.Start1),
		Target:    teleporter.Word(self.Target),
		Workers:   self.Workers,
	}
}
