// Package inference talks to the remote computer-vision workflow.
package inference

import "context"

// Prediction is one center-form box as returned by the workflow.
type Prediction struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

type Detector interface {
	Detect(ctx context.Context, image []byte) ([]Prediction, error)
}
