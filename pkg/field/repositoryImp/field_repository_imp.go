package repositoryImp

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"minascan/entities"
	"minascan/pkg/apperr"
	"minascan/pkg/field/repository"
)

type fieldRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FieldRepository { return &fieldRepo{db} }

func (r *fieldRepo) Create(f *entities.Field) error { return r.db.Create(f).Error }

func (r *fieldRepo) Update(f *entities.Field) error { return r.db.Save(f).Error }

func (r *fieldRepo) FindByID(id, uid uint) (*entities.Field, error) {
	var f entities.Field
	if err := r.db.Where("id = ? AND user_id = ?", id, uid).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("field %w", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &f, nil
}

func (r *fieldRepo) ListByUser(uid uint) ([]entities.Field, error) {
	var out []entities.Field
	err := r.db.Where("user_id = ?", uid).Order("id asc").Find(&out).Error
	return out, err
}

func (r *fieldRepo) ListByUsers(uids []uint) ([]entities.Field, error) {
	out := []entities.Field{}
	if len(uids) == 0 {
		return out, nil
	}
	err := r.db.Where("user_id IN ?", uids).Order("user_id asc, id asc").Find(&out).Error
	return out, err
}

// Delete removes the field and everything hanging off it in one transaction.
func (r *fieldRepo) Delete(f *entities.Field) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		detIDs := tx.Model(&entities.Detection{}).Select("id").Where("field_id = ?", f.ID)
		if err := tx.Where("detection_id IN (?)", detIDs).Delete(&entities.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("field_id = ?", f.ID).Delete(&entities.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Where("field_id = ?", f.ID).Delete(&entities.Detection{}).Error; err != nil {
			return err
		}
		return tx.Delete(f).Error
	})
}
