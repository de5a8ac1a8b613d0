package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/netclock/netclock-go/pkg/clock"
	"github.com/netclock/netclock-go/pkg/ota"
)

// Options are the runtime options of the binary. Device settings such as
// credentials and the time zone live in the settings store instead.
type Options struct {
	DataDir  string `yaml:"data_dir"`
	LogLevel string `yaml:"log_level"`
	Journal  string `yaml:"journal"`

	// Radio is "sim" or "nmcli".
	Radio     string `yaml:"radio"`
	Interface string `yaml:"interface"`

	// SimNetworks are the networks the simulated radio can see.
	SimNetworks []SimNetwork `yaml:"sim_networks"`

	// Display is "term" or "tm1640".
	Display  string `yaml:"display"`
	ClockPin string `yaml:"clock_pin"`
	DataPin  string `yaml:"data_pin"`
	PowerPin string `yaml:"power_pin"`

	HTTPPort    int    `yaml:"http_port"`
	CaptiveAddr string `yaml:"captive_addr"`
	UpdateAddr  string `yaml:"update_addr"`

	// UpdatePasswordHash is a bcrypt hash; UpdatePassword is used when it
	// is empty.
	UpdatePasswordHash string `yaml:"update_password_hash"`
	UpdatePassword     string `yaml:"update_password"`

	APPassphrase    string        `yaml:"ap_passphrase"`
	PrimaryInterval time.Duration `yaml:"primary_interval"`
	RestartDelay    time.Duration `yaml:"restart_delay"`
	NoMDNS          bool          `yaml:"no_mdns"`
	Interactive     bool          `yaml:"interactive"`
}

// SimNetwork is one network of the simulated radio.
type SimNetwork struct {
	SSID       string `yaml:"ssid"`
	Passphrase string `yaml:"passphrase"`
	Signal     int    `yaml:"signal"`
}

// DefaultOptions returns the options used without a file or flags.
func DefaultOptions() Options {
	return Options{
		DataDir:         "/var/lib/netclock",
		LogLevel:        "info",
		Radio:           "sim",
		Interface:       "wlan0",
		Display:         "term",
		ClockPin:        "GPIO17",
		DataPin:         "GPIO27",
		HTTPPort:        clock.DefaultHTTPPort,
		CaptiveAddr:     ":53",
		UpdateAddr:      ota.DefaultAddr,
		UpdatePassword:  ota.DefaultPassword,
		PrimaryInterval: clock.DefaultConfig().PrimaryInterval,
		RestartDelay:    clock.DefaultRestartDelay,
	}
}

// LoadOptions reads path over the defaults. A missing file is not an error.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("read options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse options %s: %w", path, err)
	}
	return opts, nil
}

// Validate checks the options that are not checked by the packages they
// configure.
func (o Options) Validate() error {
	switch o.Radio {
	case "sim", "nmcli":
	default:
		return fmt.Errorf("unknown radio %q (sim, nmcli)", o.Radio)
	}
	switch o.Display {
	case "term", "tm1640":
	default:
		return fmt.Errorf("unknown display %q (term, tm1640)", o.Display)
	}
	if o.DataDir == "" {
		return errors.New("data directory required")
	}
	return nil
}

// ControllerConfig maps the options onto a controller configuration.
func (o Options) ControllerConfig() clock.Config {
	cfg := clock.DefaultConfig()
	cfg.HTTPPort = o.HTTPPort
	cfg.APPassphrase = o.APPassphrase
	cfg.Version = version
	if o.PrimaryInterval > 0 {
		cfg.PrimaryInterval = o.PrimaryInterval
	}
	if o.RestartDelay >= 0 {
		cfg.RestartDelay = o.RestartDelay
	}
	return cfg
}
