package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"minascan/pkg/apperr"
)

type roboflow struct {
	endpoint  string
	key       string
	workspace string
	workflow  string
	httpc     *http.Client
}

func NewRoboflow(endpoint, key, workspace, workflow string) Detector {
	return &roboflow{
		endpoint:  strings.TrimRight(endpoint, "/"),
		key:       key,
		workspace: workspace,
		workflow:  workflow,
		httpc:     &http.Client{Timeout: 60 * time.Second},
	}
}

type workflowReq struct {
	APIKey   string                   `json:"api_key"`
	Inputs   map[string]workflowImage `json:"inputs"`
	UseCache bool                     `json:"use_cache"`
}

type workflowImage struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type workflowResp struct {
	Outputs []struct {
		DetectionPredictions struct {
			Predictions []Prediction `json:"predictions"`
		} `json:"detection_predictions"`
	} `json:"outputs"`
}

func (c *roboflow) url() string {
	return fmt.Sprintf("%s/%s/workflows/%s", c.endpoint, c.workspace, c.workflow)
}

func (c *roboflow) Detect(ctx context.Context, image []byte) ([]Prediction, error) {
	body, err := json.Marshal(workflowReq{
		APIKey:   c.key,
		Inputs:   map[string]workflowImage{"image": {Type: "base64", Value: base64.StdEncoding.EncodeToString(image)}},
		UseCache: true,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: inference request: %v", apperr.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: inference returned %d: %s", apperr.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out workflowResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode inference response: %v", apperr.ErrUpstream, err)
	}
	if len(out.Outputs) == 0 {
		return nil, fmt.Errorf("%w: inference returned no outputs", apperr.ErrUpstream)
	}
	return out.Outputs[0].DetectionPredictions.Predictions, nil
}
