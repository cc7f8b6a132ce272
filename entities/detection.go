package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// BoundingBox is in corner form, pixel units of the analysed image.
type BoundingBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

type DetectedPest struct {
	ClassName   string      `json:"class_name"`
	Confidence  float64     `json:"confidence"`
	BoundingBox BoundingBox `json:"bounding_box"`
}

type Detection struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	User    *User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	FieldID uint   `gorm:"index;not null" json:"field_id"`
	Field   *Field `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	DateDetection time.Time `json:"date_detection"`
	TimeInitial   string    `gorm:"size:8" json:"time_initial"` // HH:MM:SS
	TimeFinal     string    `gorm:"size:8" json:"time_final"`

	Result           string         `gorm:"size:255" json:"result"`
	PredictionValue  string         `gorm:"size:64" json:"prediction_value"`
	Confidence       float64        `json:"confidence"`
	PlaguePercentage float64        `json:"plague_percentage"`
	Boxes            datatypes.JSON `json:"boxes,omitempty"`

	Images []Image `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Detection) SetBoxes(pests []DetectedPest) error {
	if len(pests) == 0 {
		d.Boxes = nil
		return nil
	}
	b, err := json.Marshal(pests)
	if err != nil {
		return err
	}
	d.Boxes = datatypes.JSON(b)
	return nil
}

func (d *Detection) Pests() []DetectedPest {
	var out []DetectedPest
	if len(d.Boxes) == 0 {
		return out
	}
	_ = json.Unmarshal(d.Boxes, &out)
	return out
}
