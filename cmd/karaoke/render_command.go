package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"karaoke/internal/daemonrun"
	"karaoke/internal/workflow"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var req workflow.RenderRequest

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a karaoke video from a timing file",
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

			spec, err := workflow.PrepareRender(req)
			if err != nil {
				return err
			}
			if strings.TrimSpace(spec.OutputPath) == "" {
				spec.OutputPath = workflow.DefaultVideoName
			}
			if spec.OutputPath, err = filepath.Abs(spec.OutputPath); err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}

			output, err := pipeline.Compositor.Render(cmd.Context(), spec)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d lines to %s\n", len(spec.Lines), output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.AlignmentPath, "alignment", "", "Timing JSON written by `karaoke align`")
	flags.StringVarP(&req.AudioPath, "audio", "a", "", "Audio track to mux into the video")
	flags.StringVarP(&req.OutputPath, "out", "o", "", "Output video path (default: "+workflow.DefaultVideoName+")")
	flags.IntVar(&req.Width, "width", 0, "Canvas width in pixels (default from config)")
	flags.IntVar(&req.Height, "height", 0, "Canvas height in pixels (default from config)")
	flags.IntVar(&req.FPS, "fps", 0, "Frames per second (default from config)")
	flags.StringVar(&req.BackgroundColor, "background-color", "", "Background color as #RRGGBB")
	flags.StringVar(&req.BackgroundImage, "background-image", "", "Background image scaled to the canvas")
	flags.StringVar(&req.TextColor, "text-color", "", "Base lyric color as #RRGGBB")
	flags.StringVar(&req.HighlightColor, "highlight-color", "", "Sung lyric color as #RRGGBB")
	flags.StringVar(&req.Style.FontPath, "font", "", "TrueType font file")
	flags.IntVar(&req.Style.FontSize, "font-size", 0, "Font size in points")
	_ = cmd.MarkFlagRequired("alignment")
	return cmd
}
