package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"karaoke/internal/alignment"
	"karaoke/internal/daemonrun"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var req alignment.Request
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "align",
		Short: "Align lyric lines to an audio file and write JSON, SRT, and LRC timings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.cliLogger(cmd)
			if err != nil {
				return err
			}
			pipeline, err := daemonrun.NewPipeline(cfg, logger)
			if err != nil {
				return err
			}

			if strings.TrimSpace(req.OutputDir) == "" {
				req.OutputDir = "."
			}
			if req.OutputDir, err = filepath.Abs(req.OutputDir); err != nil {
				return fmt.Errorf("resolve output directory: %w", err)
			}

			result, err := pipeline.Aligner.Align(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, timingsTable(result.Lines))
			fmt.Fprintf(out, "Engine: %s\n", result.Engine)
			fmt.Fprintf(out, "JSON:   %s\n", result.JSONPath)
			fmt.Fprintf(out, "SRT:    %s\n", result.SRTPath)
			fmt.Fprintf(out, "LRC:    %s\n", result.LRCPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.AudioPath, "audio", "a", "", "Audio file to align against")
	cmd.Flags().StringVar(&req.Lyrics, "lyrics", "", "Lyric text, one line per sung line")
	cmd.Flags().StringVarP(&req.LyricsPath, "lyrics-file", "l", "", "Lyric text file (ignored when --lyrics is set)")
	cmd.Flags().StringVarP(&req.Engine, "engine", "e", "", "Alignment engine: aeneas or whisper (default from config)")
	cmd.Flags().StringVarP(&req.OutputDir, "out", "o", "", "Directory for the timing files (default: current directory)")
	cmd.Flags().StringVar(&req.BaseName, "base", alignment.DefaultBaseName, "Base file name for the timing files")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the alignment result as JSON")
	_ = cmd.MarkFlagRequired("audio")
	return cmd
}
