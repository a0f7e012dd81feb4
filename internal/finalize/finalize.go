package finalize

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/podcastpixels/podcastpixels/internal/types"
)

// Fallback outputs are written under this name (plus the container extension)
// so a user can find them after a permission failure on the requested path.
const fallbackBaseName = "podcastpixels_output"

var (
	// ErrCopy marks a non-permission I/O failure on the primary destination.
	// It skips the fallback chain: disk-full or invalid-path conditions
	// would fail everywhere, so retrying elsewhere only hides the cause.
	ErrCopy = errors.New("copy failed")

	// ErrAllLocationsFailed means the primary destination and every
	// fallback candidate rejected the write.
	ErrAllLocationsFailed = errors.New("could not write to any location: rerun with --output pointing at a writable directory")
)

// CopyFunc copies src to dst as a full-content copy, preserving mode and
// timestamps. Injected so tests can simulate permission and disk failures.
type CopyFunc func(src, dst string) error

type Stage struct {
	copy   CopyFunc
	logf   func(format string, args ...any)
	debugf func(format string, args ...any)
}

// New builds a finalize stage. A nil copyFn uses the real filesystem; nil
// log functions are replaced with no-ops.
func New(copyFn CopyFunc, logf, debugf func(format string, args ...any)) *Stage {
	if copyFn == nil {
		copyFn = CopyFile
	}
	nop := func(string, ...any) {}
	if logf == nil {
		logf = nop
	}
	if debugf == nil {
		debugf = nop
	}
	return &Stage{copy: copyFn, logf: logf, debugf: debugf}
}

// Run relocates the rendered temp file to destPath, falling back through
// fallbackDirs (in order) when the primary write hits a permission error.
// The scratch directory is removed on every exit path, so the result must
// not be reused after Run returns.
//
// Exactly one of three things happens: the file lands at destPath, the file
// lands at the first writable fallback, or Run returns a fatal error.
func (s *Stage) Run(res types.RenderResult, destPath string, fallbackDirs []string) (types.Outcome, error) {
	defer os.RemoveAll(res.ScratchDir)

	err := s.copy(res.TempPath, destPath)
	if err == nil {
		s.logf("video saved to: %s", destPath)
		return types.Outcome{FinalPath: destPath}, nil
	}
	if !errors.Is(err, fs.ErrPermission) {
		return types.Outcome{}, fmt.Errorf("%w: %s: %v", ErrCopy, destPath, err)
	}

	s.logf("permission denied when writing to %s, trying fallback locations", destPath)
	name := fallbackBaseName + res.Format.Ext()
	for _, dir := range fallbackDirs {
		candidate := filepath.Join(dir, name)
		if err := s.copy(res.TempPath, candidate); err != nil {
			s.debugf("fallback location %s failed: %v", candidate, err)
			continue
		}
		s.logf("video saved to fallback location: %s", candidate)
		return types.Outcome{FinalPath: candidate, UsedFallback: true}, nil
	}
	return types.Outcome{}, ErrAllLocationsFailed
}

// DefaultFallbackDirs is the fixed chain tried after a permission failure:
// home directory, platform temp directory, current working directory. Entries
// that cannot be resolved are dropped rather than aborting the chain.
func DefaultFallbackDirs() []string {
	dirs := make([]string, 0, 3)
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	dirs = append(dirs, os.TempDir())
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	return dirs
}

// CopyFile is the production CopyFunc: a full-content copy (the scratch dir
// may sit on a different volume than the destination, so rename is not an
// option) that carries over the source's mode and mtime.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
