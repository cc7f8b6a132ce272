package repositoryImp

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"minascan/entities"
	"minascan/pkg/apperr"
	"minascan/pkg/detection/repository"
)

type detectionRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.DetectionRepository { return &detectionRepo{db} }

func (r *detectionRepo) Create(d *entities.Detection, imageID *uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var img entities.Image
		if imageID != nil {
			if err := tx.Where("id = ? AND user_id = ?", *imageID, d.UserID).First(&img).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("image %w", apperr.ErrNotFound)
				}
				return err
			}
		}
		if err := tx.Create(d).Error; err != nil {
			return err
		}
		if imageID == nil {
			return nil
		}
		img.DetectionID = &d.ID
		if err := tx.Save(&img).Error; err != nil {
			return err
		}
		d.Images = []entities.Image{img}
		return nil
	})
}

func (r *detectionRepo) FindByID(id, uid uint) (*entities.Detection, error) {
	var d entities.Detection
	err := r.db.Preload("Images").Where("id = ? AND user_id = ?", id, uid).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("detection %w", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &d, nil
}

func (r *detectionRepo) List(uid uint, fieldID *uint) ([]entities.Detection, error) {
	q := r.db.Where("user_id = ?", uid)
	if fieldID != nil {
		q = q.Where("field_id = ?", *fieldID)
	}
	var out []entities.Detection
	return out, q.Order("date_detection desc, id desc").Find(&out).Error
}

func (r *detectionRepo) ListWithFields(uid uint) ([]entities.Detection, error) {
	var out []entities.Detection
	err := r.db.Preload("Field").Where("user_id = ?", uid).
		Order("date_detection desc, id desc").Find(&out).Error
	return out, err
}

func (r *detectionRepo) Delete(d *entities.Detection) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("detection_id = ?", d.ID).Delete(&entities.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("detection_id = ?", d.ID).Delete(&entities.Report{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Detection{}, d.ID).Error
	})
}
