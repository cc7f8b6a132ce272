package serviceImp

import (
	"strings"

	"minascan/entities"
	repo "minascan/pkg/field/repository"
	"minascan/pkg/field/service"
)

type fieldSvc struct{ r repo.FieldRepository }

func NewFieldService(r repo.FieldRepository) service.FieldService { return &fieldSvc{r} }

func (s *fieldSvc) Create(uid uint, in service.FieldInput) (*entities.Field, error) {
	f := &entities.Field{
		UserID:       uid,
		Name:         strings.TrimSpace(in.Name),
		SizeHectares: in.SizeHectares,
		CantPlants:   in.CantPlants,
		Location:     in.Location,
		Description:  in.Description,
	}
	if err := s.r.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *fieldSvc) List(uid uint) ([]entities.Field, error) { return s.r.ListByUser(uid) }

func (s *fieldSvc) Get(id, uid uint) (*entities.Field, error) { return s.r.FindByID(id, uid) }

func (s *fieldSvc) Update(id, uid uint, p service.FieldPatch) (*entities.Field, error) {
	cur, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		cur.Name = strings.TrimSpace(*p.Name)
	}
	if p.SizeHectares != nil {
		cur.SizeHectares = *p.SizeHectares
	}
	if p.CantPlants != nil {
		cur.CantPlants = *p.CantPlants
	}
	if p.Location != nil {
		cur.Location = *p.Location
	}
	if p.Description != nil {
		cur.Description = p.Description
	}
	return cur, s.r.Update(cur)
}

func (s *fieldSvc) Delete(id, uid uint) error {
	f, err := s.r.FindByID(id, uid)
	if err != nil {
		return err
	}
	return s.r.Delete(f)
}

func (s *fieldSvc) ListForUsers(uids []uint) ([]entities.Field, error) { return s.r.ListByUsers(uids) }
