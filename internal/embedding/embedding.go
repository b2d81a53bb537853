package embedding

import "fmt"

// Embedder produces vector embeddings from text.
type Embedder interface {
	Embed(texts []string) ([][]float32, error)
	Dims() int
	Name() string // unique key for caching, e.g. "openai-3small-512"
}

// HTTPError is a non-200 reply from a provider.
type HTTPError struct {
	Provider string
	Status   int
	Body     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("embedding: %s returned %d: %s", e.Provider, e.Status, e.Body)
}

// Temporary reports whether retrying the request may succeed.
func (e *HTTPError) Temporary() bool {
	return e.Status == 429 || e.Status >= 500
}
