package media

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Duration probes the container duration in seconds via ffprobe.
func (m *implMedia) Duration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	out, err := m.executor.Execute(ctx, m.ffprobePath, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", strings.TrimSpace(out), err)
	}

	return seconds, nil
}

// ConvertToWAV re-encodes arbitrary input audio to mono 16-bit linear PCM at
// the configured sample rate, the encoding the speech recognizer expects.
func (m *implMedia) ConvertToWAV(ctx context.Context, inputPath, outputPath string) error {
	m.logger.Debug(ctx, "Converting to canonical WAV: %s -> %s", inputPath, outputPath)

	args := []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", inputPath,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(m.sampleRate),
		"-c:a", "pcm_s16le",
		outputPath,
	}

	if _, err := m.executor.Execute(ctx, m.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg convert to wav: %w", err)
	}

	return nil
}

// ExportRange writes one time slice of the input as canonical WAV.
func (m *implMedia) ExportRange(ctx context.Context, inputPath, outputPath string, offset, length float64) error {
	m.logger.Debug(ctx, "Exporting range %.3fs+%.3fs: %s -> %s", offset, length, inputPath, outputPath)

	args := []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-ss", formatSeconds(offset),
		"-t", formatSeconds(length),
		"-i", inputPath,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(m.sampleRate),
		"-c:a", "pcm_s16le",
		outputPath,
	}

	if _, err := m.executor.Execute(ctx, m.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg export range: %w", err)
	}

	return nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
