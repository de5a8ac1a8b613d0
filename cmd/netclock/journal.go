package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/netclock/netclock-go/cmd/netclock/journal"
)

var (
	journalOpts  journal.Options
	journalFile  string
	exportFormat string
	exportOutput string
)

func newJournalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "View, export and summarize the event journal",
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&journalFile, "file", "", "Journal path (default <data-dir>/journal.cbor)")
	pf.StringVar(&journalOpts.Category, "category", "", "Filter by category (state, sync, config, update, error)")
	pf.StringVar(&journalOpts.BootID, "boot", "", "Filter by boot ID")
	pf.StringVar(&journalOpts.TimeStart, "since", "", "Filter by start time (RFC3339)")
	pf.StringVar(&journalOpts.TimeEnd, "until", "", "Filter by end time (RFC3339)")

	view := &cobra.Command{
		Use:   "view",
		Short: "Print the journal in human-readable form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := journalPath()
			if err != nil {
				return err
			}
			return journal.RunView(path, journalOpts, cmd.OutOrStdout())
		},
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Export the journal as JSON lines or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := journalPath()
			if err != nil {
				return err
			}
			return journal.RunExport(path, journalOpts, exportFormat, exportOutput)
		},
	}
	export.Flags().StringVar(&exportFormat, "format", "jsonl", "Output format (jsonl, csv)")
	export.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := journalPath()
			if err != nil {
				return err
			}
			return journal.RunStats(path, journalOpts, cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(view, export, stats)
	return cmd
}

func journalPath() (string, error) {
	if journalFile != "" {
		return journalFile, nil
	}
	opts, err := loadOptions()
	if err != nil {
		return "", err
	}
	if opts.Journal != "" {
		return opts.Journal, nil
	}
	return filepath.Join(opts.DataDir, "journal.cbor"), nil
}
