package embedding

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limited spaces out provider calls. Each Embed call takes one token
// regardless of batch size.
type Limited struct {
	Embedder
	limiter *rate.Limiter
}

func WithRateLimit(e Embedder, perSecond float64, burst int) *Limited {
	if burst < 1 {
		burst = 1
	}
	return &Limited{Embedder: e, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (l *Limited) Embed(texts []string) ([][]float32, error) {
	if err := l.limiter.Wait(context.Background()); err != nil {
		return nil, fmt.Errorf("embedding: rate limit: %w", err)
	}
	return l.Embedder.Embed(texts)
}
