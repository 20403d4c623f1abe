package pipeline

import (
	"path/filepath"
	"strings"
	"time"
)

// Status is the coarse lifecycle state of a run.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Stage names the pipeline step a run is currently in. Stages advance
// strictly in order; any stage may transition to the error status.
type Stage string

const (
	StageTranscription     Stage = "transcription"
	StageGeneratingMinutes Stage = "generating_minutes"
	StageSavingToDocs      Stage = "saving_to_docs"
	StageSendingSlack      Stage = "sending_slack"
	StageCompleted         Stage = "completed"
)

// Run is one end-to-end pipeline execution for one input. It is created at
// submission and mutated in place by its own worker only; external callers
// observe read-only snapshots.
type Run struct {
	ID            string    `json:"id"`
	Status        Status    `json:"status"`
	Stage         Stage     `json:"step"`
	Transcript    string    `json:"transcript,omitempty"`
	Minutes       string    `json:"minutes,omitempty"`
	DocumentURL   string    `json:"document_url,omitempty"`
	DocumentTitle string    `json:"document_title,omitempty"`
	SlackMessage  string    `json:"slack_message,omitempty"`
	Error         string    `json:"error,omitempty"`
	Trace         string    `json:"traceback,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// allowedExtensions is the upload allow-list shared by the HTTP surface and
// the watch-folder intake.
var allowedExtensions = map[string]bool{
	".mp4":  true,
	".m4a":  true,
	".wav":  true,
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".webm": true,
	".txt":  true,
	".md":   true,
}

// AllowedFile reports whether the filename's extension is accepted for
// submission.
func AllowedFile(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsTextFile reports whether the input is pre-transcribed text, which
// bypasses the transcription remote call.
func IsTextFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".txt" || ext == ".md"
}
