package auth

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindSuperadminByOfficeEmail(ctx context.Context, officeEmail string) (*Superadmin, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindSuperadminByOfficeEmail(ctx context.Context, officeEmail string) (*Superadmin, error) {
	var sa Superadmin
	err := r.db.WithContext(ctx).First(&sa, "office_email = ?", officeEmail).Error
	return &sa, err
}
