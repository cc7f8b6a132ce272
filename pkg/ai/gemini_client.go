// pkg/ai/gemini_client.go

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"minascan/pkg/apperr"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

type gemini struct {
	baseURL string
	key     string
	model   string
	httpc   *http.Client
}

// NewGemini calls the generateContent REST method. An empty baseURL uses the public endpoint.
func NewGemini(baseURL, key, model string) Client {
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	return &gemini{baseURL: strings.TrimRight(baseURL, "/"), key: key, model: model, httpc: &http.Client{Timeout: 60 * time.Second}}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

func (c *gemini) GenerateReport(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"contents": []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		"generationConfig": map[string]any{
			"temperature": 0.4,
		},
	})
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.key)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", apperr.ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: gemini status %d: %s", apperr.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out struct {
		Candidates []struct {
			Content geminiContent `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode gemini response: %v", apperr.ErrUpstream, err)
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("%w: gemini returned no candidates", apperr.ErrUpstream)
	}
	var text strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	content := strings.TrimSpace(text.String())
	if content == "" {
		return "", fmt.Errorf("%w: gemini returned empty text", apperr.ErrUpstream)
	}
	return content, nil
}
