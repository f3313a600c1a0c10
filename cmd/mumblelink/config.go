package main

import (
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	envPrefix = "MUMBLELINK"

	keyNames    = "names"
	keyInterval = "interval"
	keyHistory  = "history"
	keyListen   = "listen"
	keyFormat   = "format"
	keyContext  = "context"
	keyUnits    = "units"
	keyWait     = "wait"
	keyWorkers  = "workers"
)

var (
	formats  = []string{"text", "json", "debug"}
	contexts = []string{"none", "gw2", "hex"}
	units    = []string{"metric", "imperial"}
)

// Config is the merged result of the config file, MUMBLELINK_* variables
// and command line flags, in increasing order of precedence.
type Config struct {
	Names    []string
	Interval time.Duration
	History  uint64
	Listen   string
	Format   string
	Context  string
	Units    string
	Wait     time.Duration
	Workers  int
}

// defaultConfigDir returns $HOME/.mumblelink.
func defaultConfigDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return ".mumblelink"
	}
	return filepath.Join(home, ".mumblelink")
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetDefault(keyNames, []string{})
	v.SetDefault(keyInterval, time.Second)
	v.SetDefault(keyHistory, 64)
	v.SetDefault(keyListen, "127.0.0.1:9464")
	v.SetDefault(keyFormat, "text")
	v.SetDefault(keyContext, "none")
	v.SetDefault(keyUnits, "metric")
	v.SetDefault(keyWait, time.Duration(0))
	v.SetDefault(keyWorkers, 4)

	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// loadConfig reads config.yaml from dir when present and applies overrides
// on top.
func loadConfig(dir string, overrides map[string]any) (*Config, error) {
	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrapf(err, "read config in %s", dir)
		}
	}
	for k, val := range overrides {
		v.Set(k, val)
	}

	cfg := &Config{
		Names:    v.GetStringSlice(keyNames),
		Interval: v.GetDuration(keyInterval),
		History:  v.GetUint64(keyHistory),
		Listen:   v.GetString(keyListen),
		Format:   v.GetString(keyFormat),
		Context:  v.GetString(keyContext),
		Units:    v.GetString(keyUnits),
		Wait:     v.GetDuration(keyWait),
		Workers:  v.GetInt(keyWorkers),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := oneOf(keyFormat, c.Format, formats); err != nil {
		return err
	}
	if err := oneOf(keyContext, c.Context, contexts); err != nil {
		return err
	}
	if err := oneOf(keyUnits, c.Units, units); err != nil {
		return err
	}
	if c.Interval <= 0 {
		return errors.Errorf("invalid %s %s: must be positive", keyInterval, c.Interval)
	}
	if c.Wait < 0 {
		return errors.Errorf("invalid %s %s: must not be negative", keyWait, c.Wait)
	}
	return nil
}

func oneOf(key, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return errors.Errorf("invalid %s %q, want one of %v", key, value, allowed)
}
