package media

import (
	"minutes-pipeline/internal/logger"
	"minutes-pipeline/pkg/executor"
)

type implMedia struct {
	ffmpegPath  string
	ffprobePath string
	sampleRate  int
	executor    executor.Executor
	logger      logger.Logger
}

// New creates a Media instance shelling out to the given ffmpeg/ffprobe
// binaries.
func New(ffmpegPath, ffprobePath string, sampleRate int, exec executor.Executor, log logger.Logger) Media {
	return &implMedia{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		sampleRate:  sampleRate,
		executor:    exec,
		logger:      log,
	}
}
