package repository

import "minascan/entities"

type UserRepository interface {
	Create(u *entities.User) error
	Update(u *entities.User) error
	FindByID(id uint) (*entities.User, error)
	FindByEmail(email string) (*entities.User, error)
	FindBossByCode(code string) (*entities.User, error)
	CodeExists(code string) (bool, error)
	ListEmployees(bossID uint) ([]entities.User, error)
	EmployeeIDs(bossID uint) ([]uint, error)
}
