package embedding

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/ehrlich-b/nameswipe/internal/logger"
	retry "github.com/sethvargo/go-retry"
)

// Retrying retries transient provider failures (429, 5xx, transport errors)
// with a Fibonacci backoff. Other errors are returned as is.
type Retrying struct {
	Embedder
	maxRetries uint64
	base       time.Duration
}

func WithRetry(e Embedder, maxRetries uint64, base time.Duration) *Retrying {
	return &Retrying{Embedder: e, maxRetries: maxRetries, base: base}
}

func (r *Retrying) Embed(texts []string) ([][]float32, error) {
	var out [][]float32
	b := retry.WithMaxRetries(r.maxRetries, retry.NewFibonacci(r.base))
	err := retry.Do(context.Background(), b, func(ctx context.Context) error {
		vecs, err := r.Embedder.Embed(texts)
		if err != nil {
			if temporary(err) {
				logger.Warn("embedding: transient failure, retrying", "embedder", r.Name(), "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		out = vecs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func temporary(err error) bool {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Temporary()
	}
	var ue *url.Error
	return errors.As(err, &ue)
}
