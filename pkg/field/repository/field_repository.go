package repository

import "minascan/entities"

type FieldRepository interface {
	Create(f *entities.Field) error
	Update(f *entities.Field) error
	FindByID(id, uid uint) (*entities.Field, error)
	ListByUser(uid uint) ([]entities.Field, error)
	ListByUsers(uids []uint) ([]entities.Field, error)
	Delete(f *entities.Field) error
}
