package service

import (
	"context"

	"minascan/entities"
)

type ReportService interface {
	Create(uid uint, in CreateInput) (*entities.Report, error)
	GenerateAI(ctx context.Context, uid uint, in GenerateInput) (*entities.Report, error)
	List(uid uint) ([]entities.Report, error)
	Get(id, uid uint) (*entities.Report, error)
	Update(id, uid uint, p ReportPatch) (*entities.Report, error)
	Delete(id, uid uint) error
	// ExportPDF renders the report to disk and returns the file path.
	ExportPDF(id, uid uint) (string, error)
	ListForUsers(uids []uint) ([]entities.Report, error)
}

type CreateInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	FieldID     uint   `json:"field_id" validate:"required"`
	DetectionID uint   `json:"detection_id" validate:"required"`
}

type GenerateInput struct {
	Title           string  `json:"title" validate:"required,max=200"`
	FieldID         uint    `json:"field_id" validate:"required"`
	DetectionID     uint    `json:"detection_id" validate:"required"`
	AdditionalNotes *string `json:"additional_notes"`
}

// ReportPatch applies only the non-nil fields.
type ReportPatch struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

// AIContentNote is stored as content for model-written reports.
const AIContentNote = "Reporte generado automáticamente por Gemini AI."
