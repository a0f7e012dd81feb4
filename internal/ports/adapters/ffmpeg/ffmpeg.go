package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/podcastpixels/podcastpixels/internal/ports"
)

// Background canvas for the generated video track.
const (
	canvasSize  = "1280x720"
	canvasColor = "black"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

// Encode renders a static-background video carrying the source audio. The
// lavfi color source is unbounded, so -shortest pins the video duration to
// the audio's.
func (a *Adapter) Encode(ctx context.Context, job ports.EncodeJob) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, buildEncodeArgs(job)...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg encode: %w\n%s", err, string(b))
	}
	return nil
}

func buildEncodeArgs(job ports.EncodeJob) []string {
	args := []string{
		"-y", "-hide_banner", "-nostdin",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=%s:s=%s:r=%d", canvasColor, canvasSize, job.FPS),
		"-i", job.Source,
		"-shortest",
		"-c:v", "libx264",
		"-preset", job.Quality.Preset,
		"-crf", strconv.Itoa(job.Quality.CRF),
		"-pix_fmt", job.Quality.PixelFormat,
		"-c:a", "aac",
		"-b:a", job.Quality.AudioBitrate,
	}
	if job.Quality.Threads > 0 {
		args = append(args, "-threads", strconv.Itoa(job.Quality.Threads))
	}
	if job.Quality.FastStart && job.Format.SupportsFastStart() {
		args = append(args, "-movflags", "+faststart")
	}
	return append(args, job.Output)
}

func (a *Adapter) ProbeDuration(ctx context.Context, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return time.Duration(sec * float64(time.Second)), nil
}
