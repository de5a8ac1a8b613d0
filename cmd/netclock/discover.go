package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/netclock/netclock-go/pkg/discovery"
	"github.com/netclock/netclock-go/pkg/timezone"
)

var (
	discoverTimeout time.Duration
	discoverIface   string
)

func newDiscoverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Find clocks on the local network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, discoverTimeout)
			defer cancel()

			browser := &discovery.MDNSBrowser{Interface: discoverIface}
			found, err := browser.Browse(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			n := 0
			for svc := range found {
				n++
				fmt.Fprintf(out, "%-20s %-24s %-10s %s\n",
					svc.Instance, svc.URL(), svc.Version, timezone.Lookup(svc.TimezoneIndex).Name)
			}
			if n == 0 {
				fmt.Fprintln(out, "No clocks found")
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&discoverTimeout, "timeout", 5*time.Second, "How long to browse")
	cmd.Flags().StringVar(&discoverIface, "interface", "", "Network interface to browse on")
	return cmd
}
