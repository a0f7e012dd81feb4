package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/podcastpixels/podcastpixels/internal/finalize"
	"github.com/podcastpixels/podcastpixels/internal/ports"
	"github.com/podcastpixels/podcastpixels/internal/ports/adapters/ffmpeg"
	"github.com/podcastpixels/podcastpixels/internal/render"
	"github.com/podcastpixels/podcastpixels/internal/types"
)

var presets = map[string]bool{
	"ultrafast": true, "superfast": true, "veryfast": true, "faster": true,
	"fast": true, "medium": true, "slow": true, "slower": true, "veryslow": true,
}

var pixelFormats = map[string]bool{
	"yuv420p": true, "yuv444p": true, "yuv420p10le": true,
}

var visTypes = map[string]bool{
	"waveform": true, "spectrogram": true, "circular": true, "bar_graph": true,
}

type Config struct {
	SourcePath string
	OutputPath string // empty = next to the source
	Format     types.Format
	FPS        int
	Quality    types.QualityParams

	// VisType is accepted for compatibility; visualization rendering is
	// not implemented and falls back to the plain conversion.
	VisType string

	FFmpegPath  string
	FFprobePath string

	Logf     func(format string, args ...any)
	Debugf   func(format string, args ...any)
	Reporter ports.Reporter
}

func (c Config) Validate() error {
	if c.SourcePath == "" {
		return errors.New("audio path is empty")
	}
	if c.Format == "" {
		return errors.New("format is empty")
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be > 0")
	}
	if !presets[c.Quality.Preset] {
		return fmt.Errorf("unknown preset %q", c.Quality.Preset)
	}
	if c.Quality.CRF < 0 || c.Quality.CRF > 51 {
		return fmt.Errorf("crf must be within 0-51, got %d", c.Quality.CRF)
	}
	if !pixelFormats[c.Quality.PixelFormat] {
		return fmt.Errorf("unknown pixel format %q", c.Quality.PixelFormat)
	}
	if c.Quality.Threads < 0 {
		return fmt.Errorf("threads must be >= 0")
	}
	if c.Quality.AudioBitrate == "" {
		return errors.New("audio bitrate is empty")
	}
	if c.VisType != "" && !visTypes[c.VisType] {
		return fmt.Errorf("unknown visualization type %q", c.VisType)
	}
	return nil
}

// Run renders the audio into a scratch-dir video and finalizes it to the
// destination, reporting where the file ended up.
func Run(ctx context.Context, cfg Config) (types.Outcome, error) {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	rep := cfg.Reporter
	if rep == nil {
		rep = nopReporter{}
	}

	if cfg.VisType != "" {
		logf("visualization type %q not implemented yet, creating a plain video", cfg.VisType)
	}

	dest := cfg.OutputPath
	if dest == "" {
		dest = types.DefaultDestination(cfg.SourcePath, cfg.Format)
		logf("output will be saved to: %s", dest)
	}

	req := types.RenderRequest{
		SourcePath:      cfg.SourcePath,
		DestinationPath: dest,
		Format:          cfg.Format,
		FPS:             cfg.FPS,
		Quality:         cfg.Quality,
	}

	enc := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)

	rep.StartStage("encoding")
	res, err := render.New(enc, logf).Run(ctx, req)
	rep.FinishStage("encoding")
	if err != nil {
		return types.Outcome{}, err
	}

	rep.StartStage("finalizing")
	out, err := finalize.New(nil, logf, cfg.Debugf).Run(res, dest, finalize.DefaultFallbackDirs())
	rep.FinishStage("finalizing")
	if err != nil {
		return types.Outcome{}, err
	}

	if out.UsedFallback {
		logf("requested destination was not writable, video is at: %s", out.FinalPath)
	}
	return out, nil
}

type nopReporter struct{}

func (nopReporter) StartStage(string)  {}
func (nopReporter) FinishStage(string) {}

var _ ports.Encoder = (*ffmpeg.Adapter)(nil)
