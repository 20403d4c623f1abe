package pipeline

import (
	"time"

	"minutes-pipeline/internal/docstore"
	"minutes-pipeline/internal/logger"
	"minutes-pipeline/internal/minutes"
	"minutes-pipeline/internal/notify"
	"minutes-pipeline/internal/transcriber"
)

type implOrchestrator struct {
	transcriber transcriber.Transcriber
	generator   minutes.Generator
	docs        docstore.Store
	notifier    notify.Notifier
	runs        RunStore
	pool        *workerPool
	logger      logger.Logger
	folderName  string
	now         func() time.Time
}

// New creates an Orchestrator executing at most maxConcurrent runs at once.
func New(
	t transcriber.Transcriber,
	g minutes.Generator,
	d docstore.Store,
	n notify.Notifier,
	runs RunStore,
	log logger.Logger,
	folderName string,
	maxConcurrent int,
) Orchestrator {
	return &implOrchestrator{
		transcriber: t,
		generator:   g,
		docs:        d,
		notifier:    n,
		runs:        runs,
		pool:        newWorkerPool(maxConcurrent),
		logger:      log,
		folderName:  folderName,
		now:         time.Now,
	}
}
