package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 30 * time.Second

// postJSON sends in as a JSON body to url and decodes a 200 response into
// out. Other statuses come back as *HTTPError so callers can decide whether
// to retry.
func postJSON(client *http.Client, provider, url string, header http.Header, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("embedding: marshal %s request: %w", provider, err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("embedding: create %s request: %w", provider, err)
	}
	for k, vs := range header {
		req.Header[k] = vs
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("embedding: %s request failed: %w", provider, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("embedding: read %s response: %w", provider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return &HTTPError{Provider: provider, Status: resp.StatusCode, Body: string(respBody)}
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("embedding: unmarshal %s response: %w", provider, err)
	}
	return nil
}

// checkCount guards against providers silently dropping inputs.
func checkCount(provider string, got, want int) error {
	if got != want {
		return fmt.Errorf("embedding: %s returned %d vectors for %d texts", provider, got, want)
	}
	return nil
}
