package media

import "context"

// Media is the decode/encode collaborator backed by ffmpeg and ffprobe.
// The pipeline depends only on: query duration, convert to the canonical
// encoding, export a time-range slice.
type Media interface {
	// Duration returns the total duration of the input in seconds.
	Duration(ctx context.Context, path string) (float64, error)
	// ConvertToWAV re-encodes the input to canonical mono 16-bit PCM WAV.
	ConvertToWAV(ctx context.Context, inputPath, outputPath string) error
	// ExportRange writes the [offset, offset+length) slice of the input as
	// canonical WAV.
	ExportRange(ctx context.Context, inputPath, outputPath string, offset, length float64) error
}
