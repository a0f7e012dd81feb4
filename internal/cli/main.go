package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "podcastpixels <audio-file>",
		Short:        "Convert an audio file into a static-background video",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().String("output", "", "Output video path (default: next to the source)")
	root.Flags().String("format", "mp4", "Output container format (see 'podcastpixels formats')")
	root.Flags().Int("fps", 24, "Frames per second")
	root.Flags().String("preset", "faster", "x264 preset for the speed/quality tradeoff")
	root.Flags().Int("crf", 23, "Constant rate factor 0-51, lower is better quality")
	root.Flags().Int("threads", 0, "FFmpeg threads (0 = auto)")
	root.Flags().String("audio-bitrate", "128k", "AAC audio bitrate")
	root.Flags().String("pixel-format", "yuv420p", "Pixel format (yuv420p, yuv444p, yuv420p10le)")
	root.Flags().Bool("faststart", true, "Place the moov atom at the start of MP4/MOV output")
	root.Flags().String("config", "", "Path to a TOML config file with encode defaults")
	root.Flags().Bool("quiet", false, "Suppress progress output")

	// Accepted but rendered as a plain conversion: visualization output is
	// not implemented yet.
	root.Flags().String("vis-type", "", "Visualization type (waveform, spectrogram, circular, bar_graph)")

	root.AddCommand(newFormatsCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
