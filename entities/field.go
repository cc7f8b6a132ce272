package entities

import "time"

type Field struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	UserID       uint    `gorm:"index;not null" json:"user_id"`
	User         *User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name         string  `gorm:"size:100;not null" json:"name"`
	SizeHectares float64 `json:"size_hectares"`
	CantPlants   int     `json:"cant_plants"`

	// stored encrypted
	Location    string  `gorm:"type:text;serializer:encrypted" json:"location"`
	Description *string `gorm:"type:text;serializer:encrypted" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
