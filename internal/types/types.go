package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is one of the supported output container formats. The output file
// extension is the format name itself.
type Format string

const (
	FormatMP4    Format = "mp4"
	FormatMOV    Format = "mov"
	FormatMPEG1  Format = "mpeg1"
	FormatMPEG2  Format = "mpeg2"
	FormatMPEG4  Format = "mpeg4"
	FormatMPG    Format = "mpg"
	FormatAVI    Format = "avi"
	FormatWMV    Format = "wmv"
	FormatMPEGPS Format = "mpegps"
	FormatFLV    Format = "flv"
	Format3GPP   Format = "3gpp"
	FormatWebM   Format = "webm"
)

// Formats lists every supported container in declaration order.
func Formats() []Format {
	return []Format{
		FormatMP4, FormatMOV, FormatMPEG1, FormatMPEG2, FormatMPEG4,
		FormatMPG, FormatAVI, FormatWMV, FormatMPEGPS, FormatFLV,
		Format3GPP, FormatWebM,
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (supported: %s)", s, formatNames())
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// SupportsFastStart reports whether the container is MOV-family, where
// -movflags +faststart relocates the moov atom.
func (f Format) SupportsFastStart() bool {
	switch f {
	case FormatMP4, FormatMOV, Format3GPP:
		return true
	}
	return false
}

func formatNames() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// QualityParams carries the encoder tuning knobs forwarded to ffmpeg.
type QualityParams struct {
	Preset       string // x264 preset, e.g. "faster"
	CRF          int    // constant rate factor, 0-51
	PixelFormat  string // e.g. "yuv420p"
	AudioBitrate string // AAC bitrate, e.g. "128k"
	Threads      int    // 0 = let ffmpeg decide
	FastStart    bool   // +faststart movflags on MOV-family containers
}

// RenderRequest describes one audio-to-video conversion. Built once by the
// pipeline and never mutated afterwards.
type RenderRequest struct {
	SourcePath      string
	DestinationPath string
	Format          Format
	FPS             int
	Quality         QualityParams
}

// RenderResult names the rendered file inside its scratch directory. The
// finalize stage owns both until it returns; the scratch directory never
// survives a finalize call.
type RenderResult struct {
	TempPath   string
	ScratchDir string
	Format     Format
}

// Outcome reports where the finalized video ended up. FinalPath differs from
// the requested destination only when UsedFallback is true.
type Outcome struct {
	FinalPath    string
	UsedFallback bool
}

// DefaultDestination places the output next to the source, swapping the
// extension for the chosen format's.
func DefaultDestination(sourcePath string, f Format) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return filepath.Join(filepath.Dir(sourcePath), base+f.Ext())
}
