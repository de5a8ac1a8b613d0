package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/netclock/netclock-go/pkg/timezone"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newZonesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List the time zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeZones(cmd.OutOrStdout())
		},
	}
}

// zonesTable renders the zone table: index, name, abbreviations, offsets
// and the DST transition rules.
func zonesTable() *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("#", "ZONE", "STD", "DST", "DST START", "DST END")

	for i, r := range timezone.All() {
		std := fmt.Sprintf("%s %s", r.STD.Abbrev, formatOffset(r.STD.OffsetMinutes))
		dst, start, end := "-", "-", "-"
		if r.HasDST() {
			dst = fmt.Sprintf("%s %s", r.DST.Abbrev, formatOffset(r.DST.OffsetMinutes))
			start = formatTransition(r.DST)
			end = formatTransition(r.STD)
		}
		t.Row(strconv.Itoa(i), r.Name, std, dst, start, end)
	}
	return t
}

func formatOffset(minutes int) string {
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, minutes/60, minutes%60)
}

// formatTransition renders a transition as e.g. "Second Sun Mar 02:00".
func formatTransition(t timezone.Transition) string {
	return fmt.Sprintf("%s %.3s %.3s %02d:00", t.Week, t.Weekday, t.Month, t.Hour)
}

func writeZones(w io.Writer) error {
	_, err := fmt.Fprintln(w, zonesTable())
	return err
}
