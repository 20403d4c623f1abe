package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minutes-pipeline/internal/logger"
)

type fakeTranscriber struct {
	calls   int
	result  string
	err     error
	started chan struct{} // closed when Transcribe is entered, if set
	release chan struct{} // Transcribe blocks on this, if set
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	f.calls++
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	return f.result, f.err
}

func (f *fakeTranscriber) TranscribeShort(ctx context.Context, path string) (string, error) {
	return f.Transcribe(ctx, path)
}

func (f *fakeTranscriber) TranscribeLong(ctx context.Context, path string) (string, error) {
	return f.Transcribe(ctx, path)
}

type fakeGenerator struct {
	calls int
	err   error
}

func (f *fakeGenerator) Generate(ctx context.Context, transcript string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "# 議事録\n\n## 決定事項\n" + transcript, nil
}

type fakeDocStore struct {
	folderCalls  int
	createCalls  int
	createdTitle string
	folderID     string
	err          error
}

func (f *fakeDocStore) GetOrCreateFolder(ctx context.Context, name string) (string, error) {
	f.folderCalls++
	if f.err != nil {
		return "", f.err
	}
	return "folder-1", nil
}

func (f *fakeDocStore) CreateDocument(ctx context.Context, title, content, folderID string) (string, error) {
	f.createCalls++
	f.createdTitle = title
	f.folderID = folderID
	if f.err != nil {
		return "", f.err
	}
	return "doc-1", nil
}

func (f *fakeDocStore) DocumentURL(documentID string) string {
	return "https://docs.google.com/document/d/" + documentID
}

type fakeNotifier struct {
	calls   int
	title   string
	url     string
	folder  string
	err     error
}

func (f *fakeNotifier) Notify(ctx context.Context, message, channel string) error {
	return nil
}

func (f *fakeNotifier) NotifyDocumentSaved(ctx context.Context, title, url, folderName string) error {
	f.calls++
	f.title = title
	f.url = url
	f.folder = folderName
	if f.err != nil {
		return f.err
	}
	return nil
}

type fixture struct {
	orch        Orchestrator
	transcriber *fakeTranscriber
	generator   *fakeGenerator
	docs        *fakeDocStore
	notifier    *fakeNotifier
	store       RunStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		transcriber: &fakeTranscriber{result: "議論の内容"},
		generator:   &fakeGenerator{},
		docs:        &fakeDocStore{},
		notifier:    &fakeNotifier{},
		store:       NewMemoryStore(),
	}
	f.orch = New(f.transcriber, f.generator, f.docs, f.notifier, f.store,
		logger.New("error"), "minutes_test", 2)
	f.orch.(*implOrchestrator).now = func() time.Time {
		return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	}
	return f
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestProcessHappyPath(t *testing.T) {
	f := newFixture(t)

	run, err := f.orch.Process(context.Background(), writeInput(t, "meeting.wav", "audio"))
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, run.Status)
	assert.Equal(t, StageCompleted, run.Stage)
	assert.Equal(t, "議論の内容", run.Transcript)
	assert.Contains(t, run.Minutes, "議論の内容")
	assert.Equal(t, "minutes_2026-08-28", run.DocumentTitle, "title carries today's date")
	assert.Equal(t, "https://docs.google.com/document/d/doc-1", run.DocumentURL)
	assert.Contains(t, run.SlackMessage, "minutes_2026-08-28")
	assert.Empty(t, run.Error)

	assert.Equal(t, "folder-1", f.docs.folderID, "document parented into the shared folder")
	assert.Equal(t, "minutes_2026-08-28", f.notifier.title)
	assert.Equal(t, run.DocumentURL, f.notifier.url)
	assert.Equal(t, "minutes_test", f.notifier.folder)
}

func TestProcessTextInputBypassesRecognizer(t *testing.T) {
	f := newFixture(t)

	run, err := f.orch.Process(context.Background(), writeInput(t, "notes.txt", "すでに文字起こし済み"))
	require.NoError(t, err)

	assert.Zero(t, f.transcriber.calls, "text input must never invoke the transcription collaborator")
	assert.Equal(t, "すでに文字起こし済み", run.Transcript)
	assert.Equal(t, StatusCompleted, run.Status)
}

func TestProcessGeneratorFailureStopsPipeline(t *testing.T) {
	f := newFixture(t)
	f.generator.err = fmt.Errorf("model overloaded")

	run, err := f.orch.Process(context.Background(), writeInput(t, "meeting.wav", "audio"))
	require.Error(t, err)

	assert.Equal(t, StatusError, run.Status)
	assert.Equal(t, StageGeneratingMinutes, run.Stage, "stage label stays at the failing stage")
	assert.Contains(t, run.Error, "model overloaded")
	assert.NotEmpty(t, run.Trace)

	// Later stages were never attempted.
	assert.Empty(t, run.DocumentURL)
	assert.Empty(t, run.SlackMessage)
	assert.Zero(t, f.docs.folderCalls)
	assert.Zero(t, f.notifier.calls)
}

func TestProcessNotifierFailureKeepsDocument(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = fmt.Errorf("channel_not_found")

	run, err := f.orch.Process(context.Background(), writeInput(t, "meeting.wav", "audio"))
	require.Error(t, err)

	assert.Equal(t, StatusError, run.Status)
	assert.Equal(t, StageSendingSlack, run.Stage)
	// The document already exists; that partial state is accepted.
	assert.NotEmpty(t, run.DocumentURL)
	assert.Empty(t, run.SlackMessage)
}

func TestSubmitIsObservableWhileRunning(t *testing.T) {
	f := newFixture(t)
	f.transcriber.started = make(chan struct{})
	f.transcriber.release = make(chan struct{})

	id := f.orch.Submit(context.Background(), writeInput(t, "meeting.wav", "audio"))

	// Polling never blocks and sees the intermediate state.
	<-f.transcriber.started
	run, ok := f.orch.Status(id)
	require.True(t, ok)
	assert.Equal(t, StatusProcessing, run.Status)
	assert.Equal(t, StageTranscription, run.Stage)

	close(f.transcriber.release)
	f.orch.Wait()

	run, ok = f.orch.Status(id)
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, run.Status)
}

func TestStatusUnknownRun(t *testing.T) {
	f := newFixture(t)
	_, ok := f.orch.Status("missing")
	assert.False(t, ok)
}

func TestConcurrentRunsAreIndependent(t *testing.T) {
	f := newFixture(t)

	idA := f.orch.Submit(context.Background(), writeInput(t, "a.txt", "会議A"))
	idB := f.orch.Submit(context.Background(), writeInput(t, "b.txt", "会議B"))
	f.orch.Wait()

	runA, _ := f.orch.Status(idA)
	runB, _ := f.orch.Status(idB)
	assert.Equal(t, "会議A", runA.Transcript)
	assert.Equal(t, "会議B", runB.Transcript)
	assert.NotEqual(t, runA.ID, runB.ID)
}
