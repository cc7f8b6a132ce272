package service

import (
	"context"

	"minascan/entities"
)

type ImageService interface {
	Upload(ctx context.Context, uid uint, in UploadInput) (*entities.Image, error)
	List(uid uint) ([]entities.Image, error)
	Get(id, uid uint) (*entities.Image, error)
	SetValidation(id, uid uint, p ValidationPatch) (*entities.Image, error)
	Delete(ctx context.Context, id, uid uint) error
}

type UploadInput struct {
	FileName         string
	ContentType      string
	Data             []byte
	PlaguePercentage float64
	DetectionID      *uint
}

type ValidationPatch struct {
	IsValidated     *bool `json:"is_validated"`
	IsFalsePositive *bool `json:"is_false_positive"`
}

// AllowedContentTypes are the upload types accepted by Upload.
var AllowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/jpg":  true,
}
