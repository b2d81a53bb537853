package embedding

import (
	"fmt"
	"sync"

	"github.com/ehrlich-b/nameswipe/internal/logger"
	"golang.org/x/sync/errgroup"
)

const warmBatchSize = 20

// VectorCache persists vectors between runs. LoadVector returns nil, nil on
// a miss.
type VectorCache interface {
	LoadVector(model, text string) ([]float32, error)
	SaveVector(model, text string, vec []float32) error
}

// Oracle turns an Embedder into a distance function: 1 - cosine similarity
// of the two texts' vectors. Vectors are memoized in memory and, when a
// cache is set, on disk.
type Oracle struct {
	emb   Embedder
	cache VectorCache

	mu  sync.RWMutex
	mem map[string][]float32
}

func NewOracle(emb Embedder, cache VectorCache) *Oracle {
	return &Oracle{
		emb:   emb,
		cache: cache,
		mem:   make(map[string][]float32),
	}
}

// Name is the underlying embedder's cache key.
func (o *Oracle) Name() string { return o.emb.Name() }

// Distance returns the cosine distance between a and b, in [0, 2].
func (o *Oracle) Distance(a, b string) (float64, error) {
	vecs, err := o.vectors([]string{a, b})
	if err != nil {
		return 0, err
	}
	return CosineDistance(vecs[0], vecs[1]), nil
}

// Embed returns vectors for texts, using and filling the cache.
func (o *Oracle) Embed(texts []string) ([][]float32, error) {
	return o.vectors(texts)
}

// Warm embeds texts ahead of time in batches, up to concurrency batches in
// flight at once.
func (o *Oracle) Warm(texts []string, concurrency int) error {
	var g errgroup.Group
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i := 0; i < len(texts); i += warmBatchSize {
		batch := texts[i:min(i+warmBatchSize, len(texts))]
		g.Go(func() error {
			_, err := o.vectors(batch)
			return err
		})
	}
	return g.Wait()
}

// vectors resolves texts in order, embedding only the ones not cached.
func (o *Oracle) vectors(texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	var missing []string
	pending := make(map[string][]int)

	for i, t := range texts {
		if v := o.lookup(t); v != nil {
			out[i] = v
			continue
		}
		if _, ok := pending[t]; !ok {
			missing = append(missing, t)
		}
		pending[t] = append(pending[t], i)
	}
	if len(missing) == 0 {
		return out, nil
	}

	vecs, err := o.emb.Embed(missing)
	if err != nil {
		return nil, fmt.Errorf("embed %d texts with %s: %w", len(missing), o.emb.Name(), err)
	}
	if len(vecs) != len(missing) {
		return nil, fmt.Errorf("embed: %s returned %d vectors for %d texts", o.emb.Name(), len(vecs), len(missing))
	}

	for i, t := range missing {
		o.remember(t, vecs[i])
		for _, j := range pending[t] {
			out[j] = vecs[i]
		}
	}
	return out, nil
}

func (o *Oracle) lookup(text string) []float32 {
	o.mu.RLock()
	v, ok := o.mem[text]
	o.mu.RUnlock()
	if ok {
		return v
	}
	if o.cache == nil {
		return nil
	}
	v, err := o.cache.LoadVector(o.emb.Name(), text)
	if err != nil {
		logger.Warn("embedding: vector cache read failed", "error", err)
		return nil
	}
	if v != nil {
		o.mu.Lock()
		o.mem[text] = v
		o.mu.Unlock()
	}
	return v
}

func (o *Oracle) remember(text string, vec []float32) {
	o.mu.Lock()
	o.mem[text] = vec
	o.mu.Unlock()
	if o.cache == nil {
		return
	}
	if err := o.cache.SaveVector(o.emb.Name(), text, vec); err != nil {
		logger.Warn("embedding: vector cache write failed", "error", err)
	}
}
