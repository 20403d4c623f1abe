package pipeline

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/google/uuid"
)

// Submit registers a run in the store and hands it to the worker pool.
func (o *implOrchestrator) Submit(ctx context.Context, inputPath string) string {
	id := o.newRun(inputPath)
	o.pool.submit(func() {
		o.execute(ctx, id, inputPath)
	})
	return id
}

// Process registers and executes a run synchronously.
func (o *implOrchestrator) Process(ctx context.Context, inputPath string) (Run, error) {
	id := o.newRun(inputPath)
	err := o.execute(ctx, id, inputPath)
	run, _ := o.runs.Get(id)
	return run, err
}

func (o *implOrchestrator) Status(id string) (Run, bool) {
	return o.runs.Get(id)
}

func (o *implOrchestrator) Wait() {
	o.pool.wait()
}

func (o *implOrchestrator) newRun(inputPath string) string {
	id := uuid.NewString()
	o.runs.Create(&Run{
		ID:        id,
		Status:    StatusProcessing,
		Stage:     StageTranscription,
		CreatedAt: o.now(),
	})
	o.logger.Info(context.Background(), "Run %s submitted: %s", id, inputPath)
	return id
}

// execute walks the four stages in order, advancing the run's stage after
// each successful call. The first failing stage terminates the run: its
// error is captured exactly once, here, and no later stage is attempted.
// Earlier stages' side effects are not rolled back.
func (o *implOrchestrator) execute(ctx context.Context, id, inputPath string) error {
	// Stage 1: transcription. Text input reads local content and never
	// touches the recognizer, but still occupies the transcription slot in
	// status reporting.
	transcript, err := o.transcribe(ctx, inputPath)
	if err != nil {
		return o.fail(ctx, id, fmt.Errorf("transcription: %w", err))
	}
	o.runs.Update(id, func(r *Run) {
		r.Transcript = transcript
		r.Stage = StageGeneratingMinutes
	})
	o.logger.Info(ctx, "Run %s: transcription done (%d chars)", id, len(transcript))

	// Stage 2: minutes generation.
	minutesDoc, err := o.generator.Generate(ctx, transcript)
	if err != nil {
		return o.fail(ctx, id, fmt.Errorf("generate minutes: %w", err))
	}
	o.runs.Update(id, func(r *Run) {
		r.Minutes = minutesDoc
		r.Stage = StageSavingToDocs
	})
	o.logger.Info(ctx, "Run %s: minutes generated", id)

	// Stage 3: document store.
	title := "minutes_" + o.now().Format("2006-01-02")

	folderID, err := o.docs.GetOrCreateFolder(ctx, o.folderName)
	if err != nil {
		return o.fail(ctx, id, fmt.Errorf("get or create folder: %w", err))
	}
	documentID, err := o.docs.CreateDocument(ctx, title, minutesDoc, folderID)
	if err != nil {
		return o.fail(ctx, id, fmt.Errorf("create document: %w", err))
	}
	url := o.docs.DocumentURL(documentID)
	o.runs.Update(id, func(r *Run) {
		r.DocumentTitle = title
		r.DocumentURL = url
		r.Stage = StageSendingSlack
	})
	o.logger.Info(ctx, "Run %s: document saved: %s", id, url)

	// Stage 4: notification. The only irrecoverable partial state is
	// "document created, notification not sent", which is accepted.
	if err := o.notifier.NotifyDocumentSaved(ctx, title, url, o.folderName); err != nil {
		return o.fail(ctx, id, fmt.Errorf("send notification: %w", err))
	}
	o.runs.Update(id, func(r *Run) {
		r.SlackMessage = fmt.Sprintf("Slackに通知を送信しました: %s", title)
		r.Status = StatusCompleted
		r.Stage = StageCompleted
	})
	o.logger.Info(ctx, "Run %s: completed", id)

	return nil
}

func (o *implOrchestrator) transcribe(ctx context.Context, inputPath string) (string, error) {
	if IsTextFile(inputPath) {
		content, err := os.ReadFile(inputPath)
		if err != nil {
			return "", fmt.Errorf("read text input: %w", err)
		}
		return string(content), nil
	}
	return o.transcriber.Transcribe(ctx, inputPath)
}

// fail records the stage failure on the run and stops the pipeline. The
// error is also returned so synchronous callers can propagate it.
func (o *implOrchestrator) fail(ctx context.Context, id string, err error) error {
	o.logger.Error(ctx, "Run %s failed: %v", id, err)
	o.runs.Update(id, func(r *Run) {
		r.Status = StatusError
		r.Error = err.Error()
		r.Trace = string(debug.Stack())
	})
	return err
}
