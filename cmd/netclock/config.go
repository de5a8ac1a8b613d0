package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/netclock/netclock-go/pkg/persistence"
	"github.com/netclock/netclock-go/pkg/settings"
	"github.com/netclock/netclock-go/pkg/timezone"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, change or reset the stored device settings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the stored settings as YAML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := openStore()
				if err != nil {
					return err
				}
				return showConfig(store, cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "set key=value...",
			Short: "Change stored settings (ssid, passphrase, tz, server, brightness)",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := openStore()
				if err != nil {
					return err
				}
				if err := setConfig(store, args); err != nil {
					return err
				}
				return showConfig(store, cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Clear the stored settings, keeping the device ID",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := openStore()
				if err != nil {
					return err
				}
				if err := settings.Reset(store); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Settings cleared")
				return nil
			},
		},
	)
	return cmd
}

func openStore() (*persistence.FileStore, error) {
	opts, err := loadOptions()
	if err != nil {
		return nil, err
	}
	store, err := persistence.OpenFileStore(opts.DataDir, settings.Namespace)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	return store, nil
}

// storedConfig is the YAML view of the settings. The passphrase is masked.
type storedConfig struct {
	DeviceID string `yaml:"device_id,omitempty"`
	Zone     string `yaml:"zone"`

	settings.DeviceConfig `yaml:",inline"`
}

func showConfig(ns persistence.Namespace, w io.Writer) error {
	cfg := settings.Load(ns, timezone.Len())
	if cfg.Passphrase != "" {
		cfg.Passphrase = "********"
	}
	out, err := yaml.Marshal(storedConfig{
		DeviceID:     ns.GetString(settings.KeyDeviceID, ""),
		Zone:         timezone.Lookup(cfg.TimezoneIndex).Name,
		DeviceConfig: cfg,
	})
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// setConfig applies key=value assignments and saves the clamped result.
func setConfig(ns persistence.Namespace, args []string) error {
	cfg := settings.Load(ns, timezone.Len())
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid assignment %q (want key=value)", arg)
		}
		switch strings.ToLower(key) {
		case "ssid":
			cfg.SSID = value
		case "passphrase", "pass":
			cfg.Passphrase = value
		case "tz", "timezone":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid time zone %q", value)
			}
			cfg.TimezoneIndex = n
		case "server", "ntp":
			cfg.SyncServer = value
		case "brightness", "bright":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid brightness %q", value)
			}
			cfg.Brightness = n
		default:
			return fmt.Errorf("unknown setting %q", key)
		}
	}
	return settings.Save(ns, settings.Normalize(cfg, timezone.Len()))
}
