package minutes

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"minutes-pipeline/internal/logger"
)

// geminiGenerator calls the Gemini API, rotating through the supplied API
// keys on quota errors. One instance is shared by all pipeline workers, so
// the key index is mutex-guarded.
type geminiGenerator struct {
	mu          sync.Mutex
	apiKeys     []string
	currentKey  int
	model       string
	temperature float64
	logger      logger.Logger
}

// NewGeminiGenerator creates a Generator backed by Gemini. At least one API
// key is required.
func NewGeminiGenerator(apiKeys []string, model string, temperature float64, log logger.Logger) (Generator, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	return &geminiGenerator{
		apiKeys:     apiKeys,
		model:       model,
		temperature: temperature,
		logger:      log,
	}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, transcript string) (string, error) {
	prompt := systemPrompt + "\n\n" + buildPrompt(transcript)

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		keyIndex, key := g.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(g.temperature)),
		})
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", keyIndex+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				text.WriteString(part.Text)
			}
			return text.String(), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiGenerator) activeKey() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

func (g *geminiGenerator) rotateKey() {
	g.mu.Lock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	g.mu.Unlock()
}
