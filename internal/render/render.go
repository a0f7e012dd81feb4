package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/podcastpixels/podcastpixels/internal/ports"
	"github.com/podcastpixels/podcastpixels/internal/types"
)

var (
	ErrSourceNotFound  = errors.New("audio file not found")
	ErrDirectoryCreate = errors.New("could not create output directory")
	ErrEncode          = errors.New("encode failed")
)

type Stage struct {
	enc  ports.Encoder
	logf func(format string, args ...any)
}

func New(enc ports.Encoder, logf func(format string, args ...any)) *Stage {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Stage{enc: enc, logf: logf}
}

// Run renders the request into a fresh scratch directory and hands the result
// to the caller, who owns cleanup from then on (normally via finalize). The
// destination itself is never written here, but its parent directory is
// created up front so a bad destination fails before the encode starts.
func (s *Stage) Run(ctx context.Context, req types.RenderRequest) (types.RenderResult, error) {
	if _, err := os.Stat(req.SourcePath); err != nil {
		return types.RenderResult{}, fmt.Errorf("%w: %s", ErrSourceNotFound, req.SourcePath)
	}

	destDir := filepath.Dir(req.DestinationPath)
	if _, err := os.Stat(destDir); err != nil {
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return types.RenderResult{}, fmt.Errorf("%w: %v", ErrDirectoryCreate, err)
		}
		s.logf("created output directory: %s", destDir)
	}

	scratch := filepath.Join(os.TempDir(), "podcastpixels-"+uuid.NewString())
	if err := os.Mkdir(scratch, 0o700); err != nil {
		return types.RenderResult{}, fmt.Errorf("%w: %v", ErrDirectoryCreate, err)
	}
	temp := filepath.Join(scratch, "render"+req.Format.Ext())

	s.logf("creating video from audio: %s", req.SourcePath)
	err := s.enc.Encode(ctx, ports.EncodeJob{
		Source:  req.SourcePath,
		Output:  temp,
		Format:  req.Format,
		FPS:     req.FPS,
		Quality: req.Quality,
	})
	if err != nil {
		os.RemoveAll(scratch)
		return types.RenderResult{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return types.RenderResult{TempPath: temp, ScratchDir: scratch, Format: req.Format}, nil
}
