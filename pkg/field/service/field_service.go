package service

import "minascan/entities"

type FieldService interface {
	Create(uid uint, in FieldInput) (*entities.Field, error)
	List(uid uint) ([]entities.Field, error)
	Get(id, uid uint) (*entities.Field, error)
	Update(id, uid uint, patch FieldPatch) (*entities.Field, error)
	Delete(id, uid uint) error
	ListForUsers(uids []uint) ([]entities.Field, error)
}

type FieldInput struct {
	Name         string  `json:"name" validate:"required,max=100"`
	SizeHectares float64 `json:"size_hectares" validate:"gte=0"`
	CantPlants   int     `json:"cant_plants" validate:"gte=0"`
	Location     string  `json:"location" validate:"required"`
	Description  *string `json:"description"`
}

// FieldPatch applies only the non-nil fields.
type FieldPatch struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=100"`
	SizeHectares *float64 `json:"size_hectares" validate:"omitempty,gte=0"`
	CantPlants   *int     `json:"cant_plants" validate:"omitempty,gte=0"`
	Location     *string  `json:"location" validate:"omitempty,min=1"`
	Description  *string  `json:"description"`
}
