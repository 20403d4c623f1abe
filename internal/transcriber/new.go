package transcriber

import (
	"minutes-pipeline/internal/logger"
	"minutes-pipeline/internal/media"
)

type implTranscriber struct {
	media         media.Media
	recognizer    Recognizer
	logger        logger.Logger
	chunkSeconds  float64
	longThreshold float64
}

// New creates a Transcriber. chunkSeconds is the nominal chunk duration for
// the long path; recordings of longThreshold seconds or more take the
// chunked path.
func New(m media.Media, rec Recognizer, log logger.Logger, chunkSeconds, longThreshold float64) Transcriber {
	return &implTranscriber{
		media:         m,
		recognizer:    rec,
		logger:        log,
		chunkSeconds:  chunkSeconds,
		longThreshold: longThreshold,
	}
}
