package embedding

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

// --- Cosine ---

func TestCosineIdentical(t *testing.T) {
	v := []float32{1, 2, 3}
	got := Cosine(v, v)
	if !approx(got, 1.0) {
		t.Fatalf("identical vectors: want 1.0, got %f", got)
	}
}

func TestCosineOrthogonal(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{0, 1, 0}
	got := Cosine(a, b)
	if !approx(got, 0.0) {
		t.Fatalf("orthogonal vectors: want 0.0, got %f", got)
	}
}

func TestCosineOpposite(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-1, -2, -3}
	got := Cosine(a, b)
	if !approx(got, -1.0) {
		t.Fatalf("opposite vectors: want -1.0, got %f", got)
	}
}

func TestCosineZeroVector(t *testing.T) {
	a := []float32{0, 0, 0}
	b := []float32{1, 2, 3}
	got := Cosine(a, b)
	if got != 0 {
		t.Fatalf("zero vector: want 0.0, got %f", got)
	}
}

func TestCosineDistance(t *testing.T) {
	v := []float32{0.3, 0.4, 0.5}
	if got := CosineDistance(v, v); got != 0 {
		t.Fatalf("identical: want 0, got %f", got)
	}
	if got := CosineDistance([]float32{1, 0}, []float32{0, 1}); math.Abs(got-1) > 1e-6 {
		t.Fatalf("orthogonal: want 1, got %f", got)
	}
	if got := CosineDistance([]float32{1, 0}, []float32{-1, 0}); math.Abs(got-2) > 1e-6 {
		t.Fatalf("opposite: want 2, got %f", got)
	}
}

// --- Normalize ---

func TestNormalize(t *testing.T) {
	v := []float32{3, 4}
	Normalize(v)
	length := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1])))
	if !approx(length, 1.0) {
		t.Fatalf("normalize: want unit length, got %f", length)
	}
	if !approx(v[0], 0.6) || !approx(v[1], 0.8) {
		t.Fatalf("normalize: want [0.6 0.8], got [%f %f]", v[0], v[1])
	}
}

func TestNormalizeZero(t *testing.T) {
	v := []float32{0, 0, 0}
	got := Normalize(v)
	for i, x := range got {
		if x != 0 {
			t.Fatalf("normalize zero: index %d want 0, got %f", i, x)
		}
	}
}

// --- OpenAI adapter (mock) ---

func TestOpenAIEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("openai: want POST, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("openai: want Bearer test-key, got %s", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("openai: want application/json, got %s", got)
		}

		var req openAIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("openai: decode request: %v", err)
		}
		if req.Model != openAIDefaultModel {
			t.Errorf("openai: want model %s, got %s", openAIDefaultModel, req.Model)
		}
		if req.Dimensions != openAIDims {
			t.Errorf("openai: want dims %d, got %d", openAIDims, req.Dimensions)
		}
		if len(req.Input) != 2 {
			t.Errorf("openai: want 2 inputs, got %d", len(req.Input))
		}

		// Return out of order to test index sorting
		resp := openAIResponse{
			Data: []openAIEmbedding{
				{Index: 1, Embedding: make([]float32, openAIDims)},
				{Index: 0, Embedding: make([]float32, openAIDims)},
			},
		}
		resp.Data[0].Embedding[0] = 0.2 // index 1
		resp.Data[1].Embedding[0] = 0.1 // index 0
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	o := NewOpenAI("test-key", "")
	o.endpoint = srv.URL

	vecs, err := o.Embed([]string{"hello", "world"})
	if err != nil {
		t.Fatalf("openai embed: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("openai: want 2 vecs, got %d", len(vecs))
	}
	// After sorting by index: vecs[0] should have 0.1, vecs[1] should have 0.2
	if vecs[0][0] != 0.1 {
		t.Errorf("openai: vecs[0][0] want 0.1, got %f", vecs[0][0])
	}
	if vecs[1][0] != 0.2 {
		t.Errorf("openai: vecs[1][0] want 0.2, got %f", vecs[1][0])
	}
	if o.Name() != "openai-text-embedding-3-small-512" {
		t.Errorf("openai: name = %q", o.Name())
	}
}

func TestOpenAIEmbedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	o := NewOpenAI("test-key", "")
	o.endpoint = srv.URL

	_, err := o.Embed([]string{"hello"})
	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("openai: want *HTTPError on 429, got %v", err)
	}
	if he.Status != http.StatusTooManyRequests || !he.Temporary() {
		t.Fatalf("openai: status %d temporary %v", he.Status, he.Temporary())
	}
}

// --- Ollama adapter (mock) ---

func TestOllamaEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("ollama: want POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/embed" {
			t.Errorf("ollama: want /api/embed, got %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("ollama: decode request: %v", err)
		}
		if req.Model != ollamaDefaultModel {
			t.Errorf("ollama: want model %s, got %s", ollamaDefaultModel, req.Model)
		}
		if len(req.Input) != 1 {
			t.Errorf("ollama: want 1 input, got %d", len(req.Input))
		}

		// Return 768-dim vector to test truncation
		vec := make([]float32, 768)
		vec[0] = 3
		vec[511] = 4
		vec[512] = 99 // should be truncated
		resp := ollamaResponse{Embeddings: [][]float32{vec}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	o := NewOllama("", srv.URL)
	vecs, err := o.Embed([]string{"hello"})
	if err != nil {
		t.Fatalf("ollama embed: %v", err)
	}
	if len(vecs) != 1 {
		t.Fatalf("ollama: want 1 vec, got %d", len(vecs))
	}
	if len(vecs[0]) != ollamaDims {
		t.Fatalf("ollama: want %d dims, got %d", ollamaDims, len(vecs[0]))
	}
	// Renormalized after truncation: [3, ..., 4] -> [0.6, ..., 0.8]
	if !approx(vecs[0][0], 0.6) {
		t.Errorf("ollama: vecs[0][0] want 0.6, got %f", vecs[0][0])
	}
	if !approx(vecs[0][511], 0.8) {
		t.Errorf("ollama: vecs[0][511] want 0.8, got %f", vecs[0][511])
	}
}

func TestOllamaEmbedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`model not found`))
	}))
	defer srv.Close()

	o := NewOllama("bad-model", srv.URL)
	_, err := o.Embed([]string{"hello"})
	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("ollama: want *HTTPError, got %v", err)
	}
	if he.Temporary() {
		t.Fatal("ollama: 404 should not be temporary")
	}
}

func TestOllamaVectorCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Embeddings: [][]float32{{1}}})
	}))
	defer srv.Close()

	if _, err := NewOllama("", srv.URL).Embed([]string{"a", "b"}); err == nil {
		t.Fatal("ollama: expected error on vector count mismatch")
	}
}

// --- Provider ---

func TestNewFromProvider(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := NewFromProvider("openai", "", ""); err == nil {
		t.Fatal("openai without key should fail")
	}
	if _, err := NewFromProvider("bogus", "", ""); err == nil {
		t.Fatal("unknown provider should fail")
	}
	e, err := NewFromProvider("lexical", "", "")
	if err != nil {
		t.Fatalf("lexical: %v", err)
	}
	if _, ok := e.(*Lexical); !ok {
		t.Fatalf("lexical: got %T", e)
	}
	if Remote(e, 5, 3) != e {
		t.Fatal("lexical embedder should not be wrapped")
	}

	t.Setenv("OPENAI_API_KEY", "k")
	e, err = NewFromProvider("openai", "text-embedding-3-large", "")
	if err != nil {
		t.Fatalf("openai: %v", err)
	}
	if e.Name() != "openai-text-embedding-3-large-512" {
		t.Fatalf("openai name = %q", e.Name())
	}
	if _, ok := Remote(e, 5, 3).(*Retrying); !ok {
		t.Fatal("remote embedder should be wrapped with retries")
	}
}

// --- helpers ---

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}
