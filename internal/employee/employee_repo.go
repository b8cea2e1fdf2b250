package employee

import (
	"context"

	"gorm.io/gorm"
)

// Repository is the read-only directory lookup used by auth,
// attendance and leave.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindByCode(ctx context.Context, empCode string) (*Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).First(&emp, "id = ?", id).Error
	return &emp, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).First(&emp, "email = ?", email).Error
	return &emp, err
}

func (r *repository) FindByCode(ctx context.Context, empCode string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).First(&emp, "emp_code = ?", empCode).Error
	return &emp, err
}
