package embedding

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

// NewFromProvider constructs an Embedder by provider name.
// "auto" (default) tries ollama first, falls back to openai, then lexical.
// "ollama": model and baseURL are optional (defaults apply).
// "openai": reads OPENAI_API_KEY from environment.
// "lexical": offline word-hash vectors, no server needed.
func NewFromProvider(provider, model, baseURL string) (Embedder, error) {
	switch provider {
	case "auto", "":
		if ollamaReachable(baseURL) {
			return NewOllama(model, baseURL), nil
		}
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return NewOpenAI(key, model), nil
		}
		return NewLexical(), nil
	case "ollama":
		return NewOllama(model, baseURL), nil
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return NewOpenAI(key, model), nil
	case "lexical":
		return NewLexical(), nil
	default:
		return nil, fmt.Errorf("unknown embedder provider %q (available: auto, ollama, openai, lexical)", provider)
	}
}

// Remote wraps a network embedder with rate limiting and retries. Local
// embedders are returned unchanged.
func Remote(e Embedder, perSecond float64, maxRetries int) Embedder {
	if _, ok := e.(*Lexical); ok {
		return e
	}
	if perSecond > 0 {
		e = WithRateLimit(e, perSecond, 1)
	}
	if maxRetries > 0 {
		e = WithRetry(e, uint64(maxRetries), 500*time.Millisecond)
	}
	return e
}

func ollamaReachable(baseURL string) bool {
	if baseURL == "" {
		baseURL = ollamaDefaultBaseURL
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/api/tags")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
