package entities

import "time"

type Image struct {
	ID          uint  `gorm:"primaryKey" json:"id_image"`
	UserID      uint  `gorm:"index;not null" json:"user_id"`
	DetectionID *uint `gorm:"index" json:"detection_id"` // cascade declared on Detection.Images

	ImagePath        string  `gorm:"size:512;not null" json:"image_path"`
	ObjectKey        string  `gorm:"size:255" json:"object_key"`
	ContentType      string  `gorm:"size:64" json:"content_type"`
	PlaguePercentage float64 `json:"porcentaje_plaga"`

	IsValidated     bool       `gorm:"not null;default:false" json:"is_validated"`
	IsFalsePositive bool       `gorm:"not null;default:false" json:"is_false_positive"`
	ValidatedAt     *time.Time `json:"validated_at"`

	CreatedAt time.Time `json:"created_at"`
}
