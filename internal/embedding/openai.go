package embedding

import (
	"fmt"
	"net/http"
	"sort"
)

const (
	openAIDefaultModel = "text-embedding-3-small"
	openAIDims         = 512
	openAIEndpoint     = "https://api.openai.com/v1/embeddings"
)

type OpenAI struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = openAIDefaultModel
	}
	return &OpenAI{
		apiKey:   apiKey,
		model:    model,
		endpoint: openAIEndpoint,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

func (o *OpenAI) Dims() int    { return openAIDims }
func (o *OpenAI) Name() string { return fmt.Sprintf("openai-%s-%d", o.model, openAIDims) }

// Embed asks for openAIDims-dimensional vectors directly; the API shortens
// and renormalizes them server side.
func (o *OpenAI) Embed(texts []string) ([][]float32, error) {
	var result openAIResponse
	header := http.Header{"Authorization": {"Bearer " + o.apiKey}}
	req := openAIRequest{Model: o.model, Input: texts, Dimensions: openAIDims}
	if err := postJSON(o.client, "openai", o.endpoint, header, req, &result); err != nil {
		return nil, err
	}
	if err := checkCount("openai", len(result.Data), len(texts)); err != nil {
		return nil, err
	}

	sort.Slice(result.Data, func(i, j int) bool {
		return result.Data[i].Index < result.Data[j].Index
	})
	vecs := make([][]float32, len(result.Data))
	for i, d := range result.Data {
		vecs[i] = d.Embedding
	}
	return vecs, nil
}

type openAIRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions"`
}

type openAIResponse struct {
	Data []openAIEmbedding `json:"data"`
}

type openAIEmbedding struct {
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}
