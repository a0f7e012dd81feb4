package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/podcastpixels/podcastpixels/internal/config"
	"github.com/podcastpixels/podcastpixels/internal/pipeline"
	"github.com/podcastpixels/podcastpixels/internal/ports"
	"github.com/podcastpixels/podcastpixels/internal/progress"
	"github.com/podcastpixels/podcastpixels/internal/types"
)

func run(cmd *cobra.Command, audioPath string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = os.Getenv("PODCASTPIXELS_CONFIG")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	formatName, _ := cmd.Flags().GetString("format")
	format, err := types.ParseFormat(formatName)
	if err != nil {
		return err
	}

	absIn, err := filepath.Abs(audioPath)
	if err != nil {
		return err
	}

	quality := types.QualityParams{
		Preset:       cfg.Encode.Preset,
		CRF:          cfg.Encode.CRF,
		PixelFormat:  cfg.Encode.PixelFormat,
		AudioBitrate: cfg.Encode.AudioBitrate,
		Threads:      cfg.Encode.Threads,
		FastStart:    cfg.Encode.FastStart,
	}
	fps := cfg.Encode.FPS

	// Flags the user actually set win over config-file defaults.
	flags := cmd.Flags()
	if flags.Changed("fps") {
		fps, _ = flags.GetInt("fps")
	}
	if flags.Changed("preset") {
		quality.Preset, _ = flags.GetString("preset")
	}
	if flags.Changed("crf") {
		quality.CRF, _ = flags.GetInt("crf")
	}
	if flags.Changed("threads") {
		quality.Threads, _ = flags.GetInt("threads")
	}
	if flags.Changed("audio-bitrate") {
		quality.AudioBitrate, _ = flags.GetString("audio-bitrate")
	}
	if flags.Changed("pixel-format") {
		quality.PixelFormat, _ = flags.GetString("pixel-format")
	}
	if flags.Changed("faststart") {
		quality.FastStart, _ = flags.GetBool("faststart")
	}

	output, _ := flags.GetString("output")
	visType, _ := flags.GetString("vis-type")
	quiet, _ := flags.GetBool("quiet")

	var reporter ports.Reporter = progress.Nop{}
	logf := func(string, ...any) {}
	if !quiet {
		reporter = progress.New(os.Stdout)
		logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stdout, format+"\n", args...)
		}
	}
	debugf := func(string, ...any) {}
	if os.Getenv("PODCASTPIXELS_DEBUG") != "" {
		debugf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "debug: "+format+"\n", args...)
		}
	}

	pcfg := pipeline.Config{
		SourcePath:  absIn,
		OutputPath:  output,
		Format:      format,
		FPS:         fps,
		Quality:     quality,
		VisType:     visType,
		FFmpegPath:  envDefault("PODCASTPIXELS_FFMPEG", cfg.Tools.FFmpeg),
		FFprobePath: envDefault("PODCASTPIXELS_FFPROBE", cfg.Tools.FFprobe),
		Logf:        logf,
		Debugf:      debugf,
		Reporter:    reporter,
	}
	if err := pcfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	out, err := pipeline.Run(context.Background(), pcfg)
	if err != nil {
		return err
	}
	logf("done: %s", out.FinalPath)
	return nil
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
