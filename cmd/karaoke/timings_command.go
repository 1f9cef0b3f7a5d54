package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"karaoke/internal/alignment"
	"karaoke/internal/export"
)

func newTimingsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:         "timings <file>",
		Short:       "Print a timing file as a table, SRT, LRC, or JSON",
		Long:        "Reads a timing JSON written by `karaoke align` (or an SRT file) and prints it in the requested format.",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readTimings(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch strings.ToLower(strings.TrimSpace(format)) {
			case "", "table":
				if len(lines) == 0 {
					fmt.Fprintln(out, "No timed lines")
					return nil
				}
				fmt.Fprintln(out, timingsTable(lines))
			case "srt":
				fmt.Fprint(out, export.FormatSRT(lines))
			case "lrc":
				fmt.Fprint(out, export.FormatLRC(lines))
			case "json":
				data, err := export.FormatJSON(lines)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			default:
				return fmt.Errorf("unknown format %q (want table, srt, lrc, or json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, srt, lrc, or json")
	return cmd
}

func readTimings(path string) ([]alignment.LineTiming, error) {
	if strings.EqualFold(filepath.Ext(path), ".srt") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return export.ParseSRT(string(data))
	}
	return export.ReadJSON(path)
}

func timingsTable(lines []alignment.LineTiming) string {
	rows := make([][]string, 0, len(lines))
	for i, line := range lines {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(line.Start, 'f', 3, 64),
			strconv.FormatFloat(line.End, 'f', 3, 64),
			strconv.FormatFloat(line.Duration(), 'f', 2, 64),
			line.Text,
		})
	}
	return renderTable(
		[]string{"#", "Start", "End", "Duration", "Text"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft},
	)
}
