package inference

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
)

type mockDetector struct {
	fixed []Prediction
	err   error
}

// NewMock returns the given predictions, or one centered box when none are given.
func NewMock(preds ...Prediction) Detector { return &mockDetector{fixed: preds} }

// NewFailing always returns err.
func NewFailing(err error) Detector { return &mockDetector{err: err} }

func (m *mockDetector) Detect(ctx context.Context, img []byte) ([]Prediction, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.fixed) > 0 {
		return m.fixed, nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return []Prediction{}, nil
	}
	return []Prediction{{
		X: float64(cfg.Width) / 2, Y: float64(cfg.Height) / 2,
		Width: float64(cfg.Width) / 4, Height: float64(cfg.Height) / 4,
		Class: "mosca_blanca", Confidence: 0.9,
	}}, nil
}
