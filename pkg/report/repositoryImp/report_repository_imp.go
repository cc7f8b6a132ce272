package repositoryImp

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"minascan/entities"
	"minascan/pkg/apperr"
	"minascan/pkg/report/repository"
)

type reportRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ReportRepository { return &reportRepo{db} }

func (r *reportRepo) Create(rep *entities.Report) error { return r.db.Create(rep).Error }

func (r *reportRepo) Update(rep *entities.Report) error { return r.db.Save(rep).Error }

func (r *reportRepo) FindByID(id, uid uint) (*entities.Report, error) {
	var rep entities.Report
	if err := r.db.Where("id = ? AND user_id = ?", id, uid).First(&rep).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("report %w", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &rep, nil
}

func (r *reportRepo) ListByUser(uid uint) ([]entities.Report, error) {
	out := []entities.Report{}
	err := r.db.Where("user_id = ?", uid).Order("created_at desc, id desc").Find(&out).Error
	return out, err
}

func (r *reportRepo) ListByUsers(uids []uint) ([]entities.Report, error) {
	out := []entities.Report{}
	if len(uids) == 0 {
		return out, nil
	}
	err := r.db.Where("user_id IN ?", uids).Order("created_at desc, id desc").Find(&out).Error
	return out, err
}

func (r *reportRepo) Delete(rep *entities.Report) error {
	return r.db.Delete(&entities.Report{}, rep.ID).Error
}
