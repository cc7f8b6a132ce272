package repositoryImp

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"minascan/entities"
	"minascan/pkg/apperr"
	"minascan/pkg/image/repository"
)

type imageRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ImageRepository { return &imageRepo{db} }

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, apperr.ErrNotFound)
	}
	return err
}

func (r *imageRepo) Create(img *entities.Image) error { return r.db.Create(img).Error }

func (r *imageRepo) Update(img *entities.Image) error { return r.db.Save(img).Error }

func (r *imageRepo) FindByID(id uint) (*entities.Image, error) {
	var img entities.Image
	if err := r.db.First(&img, id).Error; err != nil {
		return nil, notFound(err, "image")
	}
	return &img, nil
}

func (r *imageRepo) FindOwned(id, uid uint) (*entities.Image, error) {
	var img entities.Image
	if err := r.db.Where("id = ? AND user_id = ?", id, uid).First(&img).Error; err != nil {
		return nil, notFound(err, "image")
	}
	return &img, nil
}

func (r *imageRepo) ListByUser(uid uint) ([]entities.Image, error) {
	out := []entities.Image{}
	err := r.db.Where("user_id = ?", uid).Order("created_at desc, id desc").Find(&out).Error
	return out, err
}

func (r *imageRepo) DetectionOwner(detectionID uint) (uint, error) {
	var d entities.Detection
	if err := r.db.Select("id", "user_id").First(&d, detectionID).Error; err != nil {
		return 0, notFound(err, "detection")
	}
	return d.UserID, nil
}

func (r *imageRepo) Delete(img *entities.Image) error {
	return r.db.Delete(&entities.Image{}, img.ID).Error
}
