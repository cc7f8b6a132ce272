package repository

import "minascan/entities"

type DetectionRepository interface {
	// Create stores d and, when imageID is set, attaches that image (which must belong to d.UserID).
	Create(d *entities.Detection, imageID *uint) error
	FindByID(id, uid uint) (*entities.Detection, error)
	List(uid uint, fieldID *uint) ([]entities.Detection, error)
	// ListWithFields is List plus the (decrypted) parent field of each row.
	ListWithFields(uid uint) ([]entities.Detection, error)
	Delete(d *entities.Detection) error
}
