package repository

import "minascan/entities"

type ImageRepository interface {
	Create(img *entities.Image) error
	Update(img *entities.Image) error
	FindByID(id uint) (*entities.Image, error)
	FindOwned(id, uid uint) (*entities.Image, error)
	ListByUser(uid uint) ([]entities.Image, error)
	// DetectionOwner returns the user id that owns the detection.
	DetectionOwner(detectionID uint) (uint, error)
	Delete(img *entities.Image) error
}
