package transcriber

import (
	"context"
	"fmt"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"

	"minutes-pipeline/internal/config"
)

// googleRecognizer wraps the Google Cloud Speech-to-Text synchronous
// Recognize API.
type googleRecognizer struct {
	client     *speech.Client
	language   string
	sampleRate int
}

// NewGoogleRecognizer creates a Recognizer backed by Google Cloud
// Speech-to-Text, authenticated through the resolved credential provider.
func NewGoogleRecognizer(ctx context.Context, creds config.GoogleCredentials, language string, sampleRate int) (Recognizer, error) {
	if language == "" {
		return nil, fmt.Errorf("language code is required")
	}

	var opts []option.ClientOption
	switch {
	case len(creds.JSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(creds.JSON))
	case creds.File != "":
		opts = append(opts, option.WithCredentialsFile(creds.File))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}

	return &googleRecognizer{
		client:     client,
		language:   language,
		sampleRate: sampleRate,
	}, nil
}

// Recognize sends canonical LINEAR16 audio and returns the top alternative
// of each recognized segment in order.
func (g *googleRecognizer) Recognize(ctx context.Context, audio []byte) ([]string, error) {
	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: int32(g.sampleRate),
			LanguageCode:    g.language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("speech recognize: %w", err)
	}

	var segments []string
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		segments = append(segments, alts[0].GetTranscript())
	}

	return segments, nil
}
