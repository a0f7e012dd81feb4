package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/podcastpixels/podcastpixels/internal/ports"
	"github.com/podcastpixels/podcastpixels/internal/types"
)

type fakeEncoder struct {
	err  error
	jobs []ports.EncodeJob
}

func (f *fakeEncoder) Encode(_ context.Context, job ports.EncodeJob) error {
	f.jobs = append(f.jobs, job)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(job.Output, []byte("encoded"), 0o644)
}

func (f *fakeEncoder) ProbeDuration(context.Context, string) (time.Duration, error) {
	return 0, nil
}

func request(t *testing.T) types.RenderRequest {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "podcast.wav")
	if err := os.WriteFile(src, []byte("riff"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return types.RenderRequest{
		SourcePath:      src,
		DestinationPath: filepath.Join(dir, "podcast.mp4"),
		Format:          types.FormatMP4,
		FPS:             24,
		Quality:         types.QualityParams{Preset: "faster", CRF: 23, PixelFormat: "yuv420p", AudioBitrate: "128k"},
	}
}

func TestRunProducesScratchFile(t *testing.T) {
	req := request(t)
	enc := &fakeEncoder{}
	res, err := New(enc, nil).Run(context.Background(), req)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(res.ScratchDir) })

	if filepath.Dir(res.TempPath) != res.ScratchDir {
		t.Fatalf("temp file %s not inside scratch dir %s", res.TempPath, res.ScratchDir)
	}
	if !strings.HasSuffix(res.TempPath, ".mp4") {
		t.Fatalf("temp file must carry the container extension: %s", res.TempPath)
	}
	if _, err := os.Stat(res.TempPath); err != nil {
		t.Fatalf("temp file missing: %v", err)
	}
	if len(enc.jobs) != 1 || enc.jobs[0].Output != res.TempPath {
		t.Fatalf("unexpected encoder jobs: %+v", enc.jobs)
	}
	// The destination itself is never written during render.
	if _, err := os.Stat(req.DestinationPath); !os.IsNotExist(err) {
		t.Fatalf("render stage wrote the destination directly")
	}
}

func TestRunMissingSource(t *testing.T) {
	req := request(t)
	req.SourcePath = filepath.Join(t.TempDir(), "nope.wav")
	enc := &fakeEncoder{}
	_, err := New(enc, nil).Run(context.Background(), req)
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
	if len(enc.jobs) != 0 {
		t.Fatalf("encoder must not run without a source")
	}
}

func TestRunCreatesDestinationDir(t *testing.T) {
	req := request(t)
	req.DestinationPath = filepath.Join(filepath.Dir(req.SourcePath), "deep", "nested", "podcast.mp4")
	res, err := New(&fakeEncoder{}, nil).Run(context.Background(), req)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(res.ScratchDir) })

	info, err := os.Stat(filepath.Dir(req.DestinationPath))
	if err != nil || !info.IsDir() {
		t.Fatalf("destination dir not created: %v", err)
	}
}

func TestRunDestinationDirCreateFails(t *testing.T) {
	req := request(t)
	// A regular file sits where a parent directory is needed, so MkdirAll
	// must fail with ENOTDIR.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	req.DestinationPath = filepath.Join(blocker, "sub", "podcast.mp4")

	enc := &fakeEncoder{}
	_, err := New(enc, nil).Run(context.Background(), req)
	if !errors.Is(err, ErrDirectoryCreate) {
		t.Fatalf("expected ErrDirectoryCreate, got %v", err)
	}
	if len(enc.jobs) != 0 {
		t.Fatalf("encoder must not run when the destination dir cannot be created")
	}
}

func TestRunEncoderFailureCleansScratch(t *testing.T) {
	req := request(t)
	enc := &fakeEncoder{err: errors.New("ffmpeg exploded")}
	_, err := New(enc, nil).Run(context.Background(), req)
	if !errors.Is(err, ErrEncode) {
		t.Fatalf("expected ErrEncode, got %v", err)
	}
	if len(enc.jobs) != 1 {
		t.Fatalf("expected one encode attempt, got %d", len(enc.jobs))
	}
	if _, statErr := os.Stat(filepath.Dir(enc.jobs[0].Output)); !os.IsNotExist(statErr) {
		t.Fatalf("scratch dir must be removed after a failed encode")
	}
}
