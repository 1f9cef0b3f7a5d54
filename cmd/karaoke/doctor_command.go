package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"karaoke/internal/preflight"
	"karaoke/internal/storage"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check storage directories and external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Config file", statusInfo, fmt.Sprintf("%s (exists: %s)", ctx.configPath, yesNo(ctx.configExists)), colorize))
			fmt.Fprintln(out, renderStatusLine("Default engine", statusInfo, cfg.Alignment.Engine, colorize))
			fmt.Fprintln(out, renderStatusLine("API bind", statusInfo, cfg.Paths.APIBind, colorize))
			fmt.Fprintln(out)

			_, storageErr := storage.Open(cfg)
			results := preflight.RunAll(cfg)
			for _, line := range renderSectionHeader("Directories", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range preflightLines(results, colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out)

			statuses := preflight.CheckSystemDeps(cmd.Context(), cfg)
			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range dependencyLines(statuses, colorize) {
				fmt.Fprintln(out, line)
			}

			if storageErr != nil {
				return fmt.Errorf("open storage: %w", storageErr)
			}
			failed := 0
			for _, result := range results {
				if !result.Passed {
					failed++
				}
			}
			for _, status := range statuses {
				if !status.Available && !status.Optional {
					failed++
				}
			}
			if failed > 0 {
				return errors.New("doctor found problems; see the report above")
			}
			return nil
		},
	}
}
