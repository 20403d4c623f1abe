package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"minutes-pipeline/internal/media"
)

// Transcribe probes the recording's duration and routes it to the short or
// long path. The threshold comparison is inclusive on the long side: a
// recording of exactly the threshold duration is chunked.
func (t *implTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	duration, err := t.media.Duration(ctx, path)
	if err != nil {
		return "", fmt.Errorf("probe duration: %w", err)
	}

	t.logger.Info(ctx, "Audio duration: %.1fs", duration)

	if duration >= t.longThreshold {
		return t.TranscribeLong(ctx, path)
	}
	return t.TranscribeShort(ctx, path)
}

// TranscribeShort sends the whole recording to the recognizer in one call
// and returns the newline-joined, trimmed segment transcripts.
func (t *implTranscriber) TranscribeShort(ctx context.Context, path string) (string, error) {
	wavPath, cleanup, err := t.ensureWAV(ctx, path)
	if err != nil {
		return "", err
	}
	defer cleanup()

	audio, err := os.ReadFile(wavPath)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}

	segments, err := t.recognizer.Recognize(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}

	return strings.TrimSpace(strings.Join(segments, "\n")), nil
}

// TranscribeLong converts the recording once, slices it into chunks, and
// transcribes them sequentially in order. A failing chunk contributes no
// text and does not abort the run; a single bad chunk must not void the
// whole transcript. Chunk files are removed as soon as their fragment is
// obtained, whether or not that succeeded.
func (t *implTranscriber) TranscribeLong(ctx context.Context, path string) (string, error) {
	wavPath, cleanup, err := t.ensureWAV(ctx, path)
	if err != nil {
		return "", err
	}
	defer cleanup()

	duration, err := t.media.Duration(ctx, wavPath)
	if err != nil {
		return "", fmt.Errorf("probe duration: %w", err)
	}

	chunks := media.Chunks(duration, t.chunkSeconds)
	t.logger.Info(ctx, "Transcribing %d chunks of up to %.0fs", len(chunks), t.chunkSeconds)

	chunkDir, err := os.MkdirTemp("", "minutes-chunks-*")
	if err != nil {
		return "", fmt.Errorf("create chunk dir: %w", err)
	}
	defer os.RemoveAll(chunkDir)

	var fragments []string
	for _, chunk := range chunks {
		chunkPath := filepath.Join(chunkDir, fmt.Sprintf("chunk_%d.wav", chunk.Index))

		text, err := t.transcribeChunk(ctx, wavPath, chunkPath, chunk.Offset, chunk.Length)
		if removeErr := os.Remove(chunkPath); removeErr != nil && !os.IsNotExist(removeErr) {
			t.logger.Warn(ctx, "Failed to remove chunk file %s: %v", chunkPath, removeErr)
		}
		if err != nil {
			t.logger.Warn(ctx, "Chunk %d transcription failed, continuing: %v", chunk.Index, err)
			continue
		}

		fragments = append(fragments, text)
	}

	return strings.TrimSpace(strings.Join(fragments, "\n")), nil
}

func (t *implTranscriber) transcribeChunk(ctx context.Context, wavPath, chunkPath string, offset, length float64) (string, error) {
	if err := t.media.ExportRange(ctx, wavPath, chunkPath, offset, length); err != nil {
		return "", fmt.Errorf("export chunk: %w", err)
	}

	audio, err := os.ReadFile(chunkPath)
	if err != nil {
		return "", fmt.Errorf("read chunk: %w", err)
	}

	segments, err := t.recognizer.Recognize(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("recognize chunk: %w", err)
	}

	return strings.TrimSpace(strings.Join(segments, "\n")), nil
}

// ensureWAV converts the input to canonical WAV unless it already carries
// the canonical extension. The returned cleanup removes any temporary
// conversion artifact.
func (t *implTranscriber) ensureWAV(ctx context.Context, path string) (string, func(), error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return path, func() {}, nil
	}

	tmpDir, err := os.MkdirTemp("", "minutes-wav-*")
	if err != nil {
		return "", nil, fmt.Errorf("create temp dir: %w", err)
	}

	wavPath := filepath.Join(tmpDir, "converted.wav")
	if err := t.media.ConvertToWAV(ctx, path, wavPath); err != nil {
		os.RemoveAll(tmpDir)
		return "", nil, fmt.Errorf("convert to wav: %w", err)
	}

	return wavPath, func() { os.RemoveAll(tmpDir) }, nil
}
