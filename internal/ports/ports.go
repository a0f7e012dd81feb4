package ports

import (
	"context"
	"time"

	"github.com/podcastpixels/podcastpixels/internal/types"
)

// EncodeJob is one synchronous encoder invocation: read the audio at Source,
// write a complete video file at Output. The encoder must have fully written
// and closed Output before returning.
type EncodeJob struct {
	Source  string
	Output  string
	Format  types.Format
	FPS     int
	Quality types.QualityParams
}

type Encoder interface {
	Encode(ctx context.Context, job EncodeJob) error
	ProbeDuration(ctx context.Context, path string) (time.Duration, error)
}

// Reporter receives coarse stage progress. Implementations must tolerate
// FinishStage without a matching StartStage.
type Reporter interface {
	StartStage(name string)
	FinishStage(name string)
}
