package transcriber

import "context"

// Transcriber converts meeting audio into transcript text.
type Transcriber interface {
	// Transcribe routes to the short or long path based on total duration.
	Transcribe(ctx context.Context, path string) (string, error)
	// TranscribeShort sends the whole audio to the recognizer in one call.
	TranscribeShort(ctx context.Context, path string) (string, error)
	// TranscribeLong splits the audio into chunks and transcribes them
	// sequentially. A failing chunk is logged and skipped, not fatal.
	TranscribeLong(ctx context.Context, path string) (string, error)
}

// Recognizer is the remote speech-to-text collaborator. It accepts
// canonical-encoding audio bytes and returns the best-guess transcript of
// each recognized segment, in order.
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte) ([]string, error)
}
