package service

import (
	"context"
	"io"

	"minascan/entities"
)

type DetectionService interface {
	Analyze(ctx context.Context, uid uint, in AnalyzeInput) (*AnalyzeResult, error)
	Save(uid uint, in SaveInput) (*entities.Detection, error)
	List(uid uint, fieldID *uint) ([]entities.Detection, error)
	Get(id, uid uint) (*entities.Detection, error)
	Delete(id, uid uint) error
	ExportXLSX(uid uint, w io.Writer) error
}

type AnalyzeInput struct {
	Image       []byte
	ContentType string
	ReturnImage bool
	// FieldID, when set, persists the result as a detection on that field.
	FieldID          *uint
	PlaguePercentage *float64
}

type AnalyzeResult struct {
	Success              bool                    `json:"success"`
	Message              string                  `json:"message"`
	Detections           []entities.DetectedPest `json:"detections"`
	ImageWidth           int                     `json:"image_width"`
	ImageHeight          int                     `json:"image_height"`
	ProcessedImageBase64 *string                 `json:"processed_image_base64"`
	DetectionID          *uint                   `json:"detection_id,omitempty"`
}

// SaveInput carries the raw form values; the service parses and validates them.
type SaveInput struct {
	FieldID          uint
	ImageID          *uint
	Result           string
	PredictionValue  string
	TimeInitial      string
	TimeFinal        string
	DateDetection    string
	PlaguePercentage float64
}

type SaveResponse struct {
	IDDetection     uint   `json:"idDetection"`
	Plaga           string `json:"plaga"`
	PredictionValue string `json:"prediction_value"`
}
