package repositoryImp

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"minascan/entities"
	"minascan/pkg/apperr"
	"minascan/pkg/auth/repository"
)

type userRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.UserRepository { return &userRepo{db} }

func (r *userRepo) Create(u *entities.User) error { return r.db.Create(u).Error }

func (r *userRepo) Update(u *entities.User) error { return r.db.Save(u).Error }

func (r *userRepo) FindByID(id uint) (*entities.User, error) {
	var u entities.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(email string) (*entities.User, error) {
	var u entities.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (r *userRepo) FindBossByCode(code string) (*entities.User, error) {
	var u entities.User
	err := r.db.Where("linking_code = ? AND role = ?", code, entities.RoleBoss).First(&u).Error
	if err != nil {
		return nil, notFound(err, "boss")
	}
	return &u, nil
}

func (r *userRepo) CodeExists(code string) (bool, error) {
	var n int64
	err := r.db.Model(&entities.User{}).Where("linking_code = ?", code).Count(&n).Error
	return n > 0, err
}

func (r *userRepo) ListEmployees(bossID uint) ([]entities.User, error) {
	var out []entities.User
	err := r.db.Where("boss_id = ? AND role = ?", bossID, entities.RoleEmployee).
		Order("id asc").Find(&out).Error
	return out, err
}

func (r *userRepo) EmployeeIDs(bossID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entities.User{}).
		Where("boss_id = ? AND role = ?", bossID, entities.RoleEmployee).
		Pluck("id", &ids).Error
	return ids, err
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, apperr.ErrNotFound)
	}
	return err
}
