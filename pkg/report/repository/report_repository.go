package repository

import "minascan/entities"

type ReportRepository interface {
	Create(r *entities.Report) error
	Update(r *entities.Report) error
	FindByID(id, uid uint) (*entities.Report, error)
	ListByUser(uid uint) ([]entities.Report, error)
	ListByUsers(uids []uint) ([]entities.Report, error)
	Delete(r *entities.Report) error
}
