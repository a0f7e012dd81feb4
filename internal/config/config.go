package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Encode holds the default encoder knobs, overridable per run by CLI flags.
type Encode struct {
	FPS          int    `toml:"fps"`
	Preset       string `toml:"preset"`
	CRF          int    `toml:"crf"`
	Threads      int    `toml:"threads"`
	AudioBitrate string `toml:"audio_bitrate"`
	PixelFormat  string `toml:"pixel_format"`
	FastStart    bool   `toml:"faststart"`
}

// Tools holds paths to the external binaries.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

type Config struct {
	Encode Encode `toml:"encode"`
	Tools  Tools  `toml:"tools"`
}

func Default() Config {
	return Config{
		Encode: Encode{
			FPS:          24,
			Preset:       "faster",
			CRF:          23,
			Threads:      0,
			AudioBitrate: "128k",
			PixelFormat:  "yuv420p",
			FastStart:    true,
		},
		Tools: Tools{FFmpeg: "ffmpeg", FFprobe: "ffprobe"},
	}
}

// Load reads the TOML config at path on top of the built-in defaults. An
// empty path falls back to DefaultPath; a missing file at either location is
// not an error, it just means defaults.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath is ~/.config/podcastpixels/config.toml (or the XDG equivalent).
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "podcastpixels", "config.toml")
}
