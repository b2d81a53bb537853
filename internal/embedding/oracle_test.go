package embedding

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// countingEmbedder returns deterministic vectors from a fixed table and
// counts how many texts it was asked to embed.
type countingEmbedder struct {
	mu    sync.Mutex
	table map[string][]float32
	texts int
	calls int
	failN int // fail this many calls first
	err   error
}

func (c *countingEmbedder) Name() string { return "counting-2" }
func (c *countingEmbedder) Dims() int    { return 2 }
func (c *countingEmbedder) Embed(texts []string) ([][]float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.failN > 0 {
		c.failN--
		return nil, c.err
	}
	c.texts += len(texts)
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := c.table[t]
		if !ok {
			v = []float32{1, 1}
		}
		out[i] = v
	}
	return out, nil
}

type memCache struct {
	mu   sync.Mutex
	vecs map[string][]float32
}

func (m *memCache) LoadVector(model, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vecs[model+"|"+text], nil
}

func (m *memCache) SaveVector(model, text string, vec []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vecs[model+"|"+text] = vec
	return nil
}

func TestOracleDistance(t *testing.T) {
	emb := &countingEmbedder{table: map[string][]float32{
		"a": {1, 0},
		"b": {0, 1},
	}}
	o := NewOracle(emb, nil)

	d, err := o.Distance("a", "b")
	if err != nil {
		t.Fatalf("distance: %v", err)
	}
	if !approx(float32(d), 1) {
		t.Fatalf("orthogonal: want 1, got %f", d)
	}
	d, err = o.Distance("a", "a")
	if err != nil {
		t.Fatalf("distance: %v", err)
	}
	if d != 0 {
		t.Fatalf("identical: want 0, got %f", d)
	}
	if emb.texts != 2 {
		t.Fatalf("embedded %d texts, want 2 (memoized)", emb.texts)
	}
}

func TestOracleUsesPersistentCache(t *testing.T) {
	cache := &memCache{vecs: map[string][]float32{}}
	emb := &countingEmbedder{}

	if _, err := NewOracle(emb, cache).Distance("x", "y"); err != nil {
		t.Fatalf("first distance: %v", err)
	}
	if len(cache.vecs) != 2 {
		t.Fatalf("cache holds %d vectors, want 2", len(cache.vecs))
	}

	// A fresh oracle should be served entirely from the cache.
	if _, err := NewOracle(emb, cache).Distance("y", "x"); err != nil {
		t.Fatalf("second distance: %v", err)
	}
	if emb.calls != 1 {
		t.Fatalf("embed calls = %d, want 1", emb.calls)
	}
}

func TestOracleWarm(t *testing.T) {
	emb := &countingEmbedder{}
	o := NewOracle(emb, nil)

	texts := make([]string, 45)
	for i := range texts {
		texts[i] = string(rune('A' + i))
	}
	if err := o.Warm(texts, 2); err != nil {
		t.Fatalf("warm: %v", err)
	}
	if emb.calls != 3 {
		t.Fatalf("embed calls = %d, want 3 batches", emb.calls)
	}
	if _, err := o.Distance(texts[0], texts[44]); err != nil {
		t.Fatalf("distance: %v", err)
	}
	if emb.calls != 3 {
		t.Fatal("warmed texts were embedded again")
	}
}

func TestOracleEmbedError(t *testing.T) {
	boom := errors.New("down")
	emb := &countingEmbedder{failN: 1, err: boom}
	if _, err := NewOracle(emb, nil).Distance("a", "b"); !errors.Is(err, boom) {
		t.Fatalf("want wrapped %v, got %v", boom, err)
	}
}

func TestRetryTransient(t *testing.T) {
	emb := &countingEmbedder{failN: 2, err: &HTTPError{Provider: "test", Status: 503}}
	r := WithRetry(emb, 3, time.Millisecond)

	vecs, err := r.Embed([]string{"a"})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(vecs) != 1 || emb.calls != 3 {
		t.Fatalf("vecs %d calls %d, want 1 and 3", len(vecs), emb.calls)
	}
	if r.Name() != "counting-2" {
		t.Fatalf("name not passed through: %q", r.Name())
	}
}

func TestRetryGivesUp(t *testing.T) {
	emb := &countingEmbedder{failN: 10, err: &HTTPError{Provider: "test", Status: 429}}
	_, err := WithRetry(emb, 2, time.Millisecond).Embed([]string{"a"})
	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("want *HTTPError after retries, got %v", err)
	}
	if emb.calls != 3 {
		t.Fatalf("calls = %d, want 1 + 2 retries", emb.calls)
	}
}

func TestRetrySkipsPermanent(t *testing.T) {
	emb := &countingEmbedder{failN: 10, err: &HTTPError{Provider: "test", Status: 400}}
	if _, err := WithRetry(emb, 3, time.Millisecond).Embed([]string{"a"}); err == nil {
		t.Fatal("expected error")
	}
	if emb.calls != 1 {
		t.Fatalf("calls = %d, want 1", emb.calls)
	}
}

func TestRateLimitPassesThrough(t *testing.T) {
	emb := &countingEmbedder{}
	l := WithRateLimit(emb, 1000, 0)
	for i := 0; i < 3; i++ {
		if _, err := l.Embed([]string{"a"}); err != nil {
			t.Fatalf("embed: %v", err)
		}
	}
	if emb.calls != 3 {
		t.Fatalf("calls = %d", emb.calls)
	}
}

func TestLexicalSharedWordsAreCloser(t *testing.T) {
	l := NewLexical()
	vecs, err := l.Embed([]string{
		"the cat sat on the mat",
		"the cat sat on a rug",
		"quarterly revenue projections",
	})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(vecs[0]) != l.Dims() {
		t.Fatalf("dims = %d", len(vecs[0]))
	}
	near := CosineDistance(vecs[0], vecs[1])
	far := CosineDistance(vecs[0], vecs[2])
	if near >= far {
		t.Fatalf("near %f should be below far %f", near, far)
	}
}

func TestVecBytes(t *testing.T) {
	v := []float32{0.25, -1.5, 3}
	got, err := BytesAsVec(VecAsBytes(v))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i := range v {
		if got[i] != v[i] {
			t.Fatalf("index %d: want %f, got %f", i, v[i], got[i])
		}
	}
	if _, err := BytesAsVec([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for odd blob length")
	}
}
