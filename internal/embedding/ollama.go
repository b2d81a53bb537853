package embedding

import (
	"net/http"
)

const (
	ollamaDefaultModel   = "mxbai-embed-large"
	ollamaDefaultBaseURL = "http://localhost:11434"
	ollamaDims           = 512
)

// Ollama embeds through a local Ollama server. Vectors longer than 512 are
// truncated, which Matryoshka-trained models tolerate.
type Ollama struct {
	model   string
	baseURL string
	client  *http.Client
}

func NewOllama(model, baseURL string) *Ollama {
	if model == "" {
		model = ollamaDefaultModel
	}
	if baseURL == "" {
		baseURL = ollamaDefaultBaseURL
	}
	return &Ollama{model: model, baseURL: baseURL, client: &http.Client{Timeout: requestTimeout}}
}

func (o *Ollama) Dims() int    { return ollamaDims }
func (o *Ollama) Name() string { return "ollama-" + o.model + "-512" }

func (o *Ollama) Embed(texts []string) ([][]float32, error) {
	var result ollamaResponse
	req := ollamaRequest{Model: o.model, Input: texts}
	if err := postJSON(o.client, "ollama", o.baseURL+"/api/embed", nil, req, &result); err != nil {
		return nil, err
	}
	if err := checkCount("ollama", len(result.Embeddings), len(texts)); err != nil {
		return nil, err
	}

	vecs := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		// Truncated vectors are no longer unit length.
		vecs[i] = Normalize(emb[:min(len(emb), ollamaDims)])
	}
	return vecs, nil
}

type ollamaRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}
