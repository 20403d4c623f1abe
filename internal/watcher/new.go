package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"minutes-pipeline/internal/logger"
)

// New creates a new Watcher monitoring inputDir for meeting recordings and
// transcripts. Arrived files are handed to the handler, which is expected to
// bound its own concurrency.
func New(inputDir string, handler EventHandler, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(inputDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inputDir: inputDir,
		handler:  handler,
		logger:   log,
		watcher:  fsw,
	}, nil
}
