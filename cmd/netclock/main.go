// Command netclock runs the network clock and manages its stored state.
//
// Usage:
//
//	netclock [command] [flags]
//
// Commands:
//
//	run        Run the clock (default)
//	config     Show, change or reset the stored device settings
//	zones      List the time zones
//	journal    View, export and summarize the event journal
//	discover   Find clocks on the local network
//
// Examples:
//
//	# Run with the simulated radio and a terminal display
//	netclock run --radio sim --sim-network Home:secret
//
//	# Run on a Raspberry Pi with a TM1640 display
//	netclock run --radio nmcli --display tm1640 --clock-pin GPIO17 --data-pin GPIO27
//
//	# Show only sync attempts of the journal
//	netclock journal view --category sync
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time.
var version = "dev"

var (
	flagOptions string
	flagDataDir string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "netclock",
		Short: "Network time clock with a captive setup portal",
		Long: `netclock keeps a four-digit display in sync with an NTP server.

Without stored WiFi credentials it opens an access point with a captive
setup portal; once configured it joins the network, synchronizes the time
and serves a status and settings page.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flagOptions, "options", "/etc/netclock.yaml", "Options file")
	root.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory (overrides the options file)")

	run := newRunCommand()
	root.AddCommand(run, newConfigCommand(), newZonesCommand(), newJournalCommand(), newDiscoverCommand())
	root.RunE = run.RunE
	root.Flags().AddFlagSet(run.Flags())
	return root
}

// loadOptions reads the options file and applies the persistent flags.
func loadOptions() (Options, error) {
	opts, err := LoadOptions(flagOptions)
	if err != nil {
		return opts, err
	}
	if flagDataDir != "" {
		opts.DataDir = flagDataDir
	}
	return opts, nil
}
