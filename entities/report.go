package entities

import "time"

type Report struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	User        *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	FieldID     uint       `gorm:"index;not null" json:"field_id"`
	Field       *Field     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	DetectionID uint       `gorm:"index;not null" json:"detection_id"`
	Detection   *Detection `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title       string     `gorm:"size:200;not null" json:"title"`

	// stored encrypted
	Content            string  `gorm:"type:text;serializer:encrypted" json:"content"`
	AIGeneratedContent *string `gorm:"type:text;serializer:encrypted" json:"ai_generated_content"`
	PDFPath            *string `gorm:"type:text;serializer:encrypted" json:"pdf_path"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
