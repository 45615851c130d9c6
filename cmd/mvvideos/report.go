package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"mvvideos/internal/mover"
)

// renderReport prints the per-entry table and a one-line summary.
func renderReport(w io.Writer, report *mover.Report, destination string) {
	if len(report.Results) == 0 {
		fmt.Fprintln(w, "No matching files found.")
		return
	}

	rows := make([][]string, 0, len(report.Results))
	for _, result := range report.Results {
		detail := ""
		if result.Err != nil {
			detail = result.Err.Error()
		}
		rows = append(rows, []string{string(result.Status), result.Source, result.Destination, detail})
	}
	fmt.Fprintln(w, renderTable([]string{"Result", "Source", "Destination", "Detail"}, rows))

	switch {
	case report.DryRun:
		fmt.Fprintf(w, "Dry run: would move %d file(s) into %s\n", report.WouldMove(), destination)
	case report.Failed() > 0:
		fmt.Fprintf(w, "Moved %d file(s) (%s) into %s; %d move(s) failed\n",
			report.Moved(), humanize.Bytes(uint64(report.BytesMoved())), destination, report.Failed())
	default:
		fmt.Fprintf(w, "Moved %d file(s) (%s) into %s\n",
			report.Moved(), humanize.Bytes(uint64(report.BytesMoved())), destination)
	}
}
