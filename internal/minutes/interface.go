package minutes

import "context"

// Generator turns a meeting transcript into structured minutes.
type Generator interface {
	Generate(ctx context.Context, transcript string) (string, error)
}
